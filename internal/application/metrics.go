package application

import "expvar"

var (
	usersCreated = expvar.NewInt("users_created")
	usersDeleted = expvar.NewInt("users_deleted")
	ordersAdded  = expvar.NewInt("orders_added")
)

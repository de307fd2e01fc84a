package entity

// FullName is embedded in User
type FullName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Address is embedded in User
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// User is the aggregate root for the user domain. It owns its Orders outright.
// Password holds the bcrypt hash once persisted and is blanked by Sanitize
// before any value leaves the application layer.
type User struct {
	UserID   int64    `json:"userId"`
	UserName string   `json:"userName"`
	Password string   `json:"password"`
	FullName FullName `json:"fullName"`
	Age      int      `json:"age"`
	Email    string   `json:"email"`
	IsActive bool     `json:"isActivate"`
	Hobbies  []string `json:"hobbies"`
	Address  Address  `json:"address"`
	Orders   []Order  `json:"orders"`
}

// UserPatch carries the fields of a partial update. Nil means "leave as is".
type UserPatch struct {
	UserID   *int64
	UserName *string
	Password *string
	FullName *FullName
	Age      *int
	Email    *string
	IsActive *bool
	Hobbies  []string
	Address  *Address
	Orders   []Order
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.UserID == nil && p.UserName == nil && p.Password == nil && p.FullName == nil &&
		p.Age == nil && p.Email == nil && p.IsActive == nil && p.Hobbies == nil &&
		p.Address == nil && p.Orders == nil
}

// Sanitize returns a copy of the user with sensitive fields cleared.
func Sanitize(u User) User {
	u.Password = ""
	return u
}

// SanitizeAll applies Sanitize to every user.
func SanitizeAll(users []User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = Sanitize(u)
	}
	return out
}

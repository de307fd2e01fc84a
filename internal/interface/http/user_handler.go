package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/user-order-service/internal/application"
	"github.com/oksasatya/user-order-service/pkg/response"
	"github.com/oksasatya/user-order-service/pkg/validation"
)

const (
	msgCreateFailed     = "Failed to create user!"
	msgListFailed       = "Failed to fetch users!"
	msgGetFailed        = "Failed to fetch user!"
	msgUpdateFailed     = "Failed to update user!"
	msgDeleteFailed     = "Failed to delete user!"
	msgAddOrderFailed   = "Failed to add order!"
	msgOrdersFailed     = "Failed to fetch orders!"
	msgTotalPriceFailed = "Failed to calculate total price!"
	msgSearchFailed     = "Failed to search users!"
)

type UserHandler struct {
	Svc         *userapp.Service
	Logger      *logrus.Logger
	StoreDriver string
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger, storeDriver string) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, StoreDriver: storeDriver}
}

// parseUserID reads the :userId path segment. Anything that is not a positive integer is rejected.
func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// fail writes the 400 envelope every domain failure collapses to.
func (h *UserHandler) fail(c *gin.Context, message string, err error) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("path", c.FullPath()).Debug(message)
	}
	response.Error(c, http.StatusBadRequest, message, err)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, msgCreateFailed, validation.New(err))
		return
	}
	u, err := h.Svc.CreateUser(c.Request.Context(), req.toEntity())
	if err != nil {
		h.fail(c, msgCreateFailed, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "User created successfully!")
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, msgListFailed, err)
		return
	}
	response.Success(c, http.StatusOK, users, "Users fetched successfully!")
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		h.fail(c, msgGetFailed, userapp.ErrInvalidUserID)
		return
	}
	u, err := h.Svc.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, msgGetFailed, err)
		return
	}
	response.Success(c, http.StatusOK, u, "User fetched successfully!")
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		h.fail(c, msgUpdateFailed, userapp.ErrInvalidUserID)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, msgUpdateFailed, validation.New(err))
		return
	}
	u, err := h.Svc.UpdateUser(c.Request.Context(), id, req.toPatch())
	if err != nil {
		h.fail(c, msgUpdateFailed, err)
		return
	}
	response.Success(c, http.StatusOK, u, "User updated successfully!")
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		h.fail(c, msgDeleteFailed, userapp.ErrInvalidUserID)
		return
	}
	if _, err := h.Svc.DeleteUser(c.Request.Context(), id); err != nil {
		h.fail(c, msgDeleteFailed, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "User deleted successfully!")
}

func (h *UserHandler) AddOrder(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		h.fail(c, msgAddOrderFailed, userapp.ErrInvalidUserID)
		return
	}
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, msgAddOrderFailed, validation.New(err))
		return
	}
	if err := h.Svc.AddOrder(c.Request.Context(), id, req.toEntity()); err != nil {
		h.fail(c, msgAddOrderFailed, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Order added successfully!")
}

func (h *UserHandler) ListOrders(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		h.fail(c, msgOrdersFailed, userapp.ErrInvalidUserID)
		return
	}
	orders, err := h.Svc.ListOrders(c.Request.Context(), id)
	if err != nil {
		h.fail(c, msgOrdersFailed, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"orders": orders}, "Orders fetched successfully!")
}

func (h *UserHandler) TotalPrice(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		h.fail(c, msgTotalPriceFailed, userapp.ErrInvalidUserID)
		return
	}
	total, err := h.Svc.TotalPrice(c.Request.Context(), id)
	if err != nil {
		h.fail(c, msgTotalPriceFailed, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"totalPrice": total.StringFixed(2)}, "Total price calculated successfully!")
}

// SearchUsers handles GET /search/users?q=&size=
func (h *UserHandler) SearchUsers(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	res, err := h.Svc.SearchUsers(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		h.fail(c, msgSearchFailed, err)
		return
	}
	response.Success(c, http.StatusOK, res, "Users searched successfully!")
}

func (h *UserHandler) Health(c *gin.Context) {
	if err := h.Svc.Ping(c.Request.Context()); err != nil {
		response.Error(c, http.StatusServiceUnavailable, "Store unavailable", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"store": h.StoreDriver}, "OK")
}

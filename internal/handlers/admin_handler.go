package handlers

import (
	"errors"
	"net/http"
	"strings"

	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	consoleService      services.ConsoleService
	authService         services.AuthService
	orderService        services.OrderService
	notificationService services.NotificationService
}

func NewAdminHandler(
	consoleService services.ConsoleService,
	authService services.AuthService,
	orderService services.OrderService,
	notificationService services.NotificationService,
) *AdminHandler {
	return &AdminHandler{
		consoleService:      consoleService,
		authService:         authService,
		orderService:        orderService,
		notificationService: notificationService,
	}
}

// AuthRequired guards the admin routes with a Redis-backed session token.
func (h *AdminHandler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !h.authService.Validate(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	token, err := h.authService.Login(req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.authService.Logout(token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	search := c.Query("search")
	status := c.DefaultQuery("status", "all")

	orders := h.consoleService.List(search, status)
	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	order, ok := h.consoleService.Get(orderID)
	if !ok {
		// Snapshot may lag a just-created order; fall through to the store
		fresh, err := h.orderService.GetOrderByOrderID(orderID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		order = fresh
	}

	c.JSON(http.StatusOK, gin.H{
		"order":                order,
		"receipt":              h.consoleService.ResolveReceipt(order),
		"payment_option_label": order.PaymentOptionLabel(),
		"payment_status_label": order.PaymentStatusLabel(),
		"order_status_label":   order.OrderStatusLabel(),
	})
}

func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("order_id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.consoleService.UpdateStatus(orderID, req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": orderID,
		"status":   req.Status,
	})
}

func (h *AdminHandler) DeleteOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	// Deletion is irreversible; the operator confirms intent explicitly
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Deletion requires confirm=true"})
		return
	}

	if err := h.consoleService.Delete(orderID); err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, services.ErrBlockedByItems):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": orderID,
		"status":   "deleted",
	})
}

// ResendNotification re-sends either the admin alert (optionally to an
// override address) or the customer-copy document for manual forwarding.
func (h *AdminHandler) ResendNotification(c *gin.Context) {
	orderID := c.Param("order_id")

	var req struct {
		Variant string `json:"variant"`
		To      string `json:"to"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.orderService.GetOrderByOrderID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var result services.Result
	switch req.Variant {
	case "", "admin":
		result = h.notificationService.SendAdminNotification(order, req.To)
	case "customer_copy":
		result = h.notificationService.SendCustomerCopy(order, req.To)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown notification variant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

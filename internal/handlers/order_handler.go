package handlers

import (
	"errors"
	"net/http"

	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService        services.OrderService
	notificationService services.NotificationService
}

func NewOrderHandler(orderService services.OrderService, notificationService services.NotificationService) *OrderHandler {
	return &OrderHandler{
		orderService:        orderService,
		notificationService: notificationService,
	}
}

// CreateOrder handles checkout. Order persistence is the must-succeed path;
// email dispatch is best effort and its outcome is reported alongside the
// created order, never as a failure of it.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.orderService.Checkout(&req)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	emails := h.notificationService.SendOrderEmails(order, "")

	c.JSON(http.StatusCreated, gin.H{
		"id":       order.ID,
		"order_id": order.OrderID,
		"emails":   emails,
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	order, err := h.orderService.GetOrderByOrderID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func isValidationError(err error) bool {
	return errors.Is(err, services.ErrEmptyCart) ||
		errors.Is(err, services.ErrMissingCustomerInfo) ||
		errors.Is(err, services.ErrInvalidLineItem) ||
		errors.Is(err, services.ErrUnknownPaymentOption) ||
		errors.Is(err, services.ErrTotalBelowItems)
}

package models

import (
	"time"
)

type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	OrderID         string      `json:"order_id" gorm:"unique;not null"`
	CustomerName    string      `json:"customer_name" gorm:"not null"`
	CustomerEmail   string      `json:"customer_email" gorm:"not null"`
	CustomerPhone   string      `json:"customer_phone" gorm:"not null"`
	CustomerAddress string      `json:"customer_address" gorm:"not null"`
	CustomerCity    string      `json:"customer_city" gorm:"not null"`
	CustomerState   string      `json:"customer_state" gorm:"not null"`
	CustomerZip     string      `json:"customer_zip" gorm:"not null"`
	ReceiverName    string      `json:"receiver_name,omitempty"`
	ReceiverPhone   string      `json:"receiver_phone,omitempty"`
	ReceiverAddress string      `json:"receiver_address,omitempty"`
	ReceiverCity    string      `json:"receiver_city,omitempty"`
	ReceiverState   string      `json:"receiver_state,omitempty"`
	ReceiverZip     string      `json:"receiver_zip,omitempty"`
	TotalAmount     float64     `json:"total_amount" gorm:"not null"`
	PaymentOption   string      `json:"payment_option" gorm:"not null"` // full, deposit
	PaymentStatus   string      `json:"payment_status" gorm:"default:'pending'"`
	OrderStatus     string      `json:"order_status" gorm:"default:'pending'"` // pending, processing, completed, cancelled
	ReceiptURL      string      `json:"receipt_url,omitempty"`
	ReceiptFileName string      `json:"receipt_file_name,omitempty"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderRef;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

type PaymentOption string

const (
	PaymentFull    PaymentOption = "full"
	PaymentDeposit PaymentOption = "deposit"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// ValidOrderStatus reports whether s is one of the four known order states.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// HasReceiver reports whether the order ships to an address other than the
// customer's own.
func (o *Order) HasReceiver() bool {
	return o.ReceiverName != ""
}

// Display labels. Unrecognized values are returned verbatim so a bad row
// never breaks rendering.

func (o *Order) PaymentOptionLabel() string {
	switch PaymentOption(o.PaymentOption) {
	case PaymentFull:
		return "Full Payment"
	case PaymentDeposit:
		// Relabeled for operators
		return "Cash on Delivery"
	}
	return o.PaymentOption
}

func (o *Order) PaymentStatusLabel() string {
	switch PaymentStatus(o.PaymentStatus) {
	case PaymentPending:
		return "Pending"
	case PaymentPaid:
		return "Paid"
	case PaymentFailed:
		return "Failed"
	}
	return o.PaymentStatus
}

func (o *Order) OrderStatusLabel() string {
	switch OrderStatus(o.OrderStatus) {
	case OrderPending:
		return "Pending"
	case OrderProcessing:
		return "Processing"
	case OrderCompleted:
		return "Completed"
	case OrderCancelled:
		return "Cancelled"
	}
	return o.OrderStatus
}

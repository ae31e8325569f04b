package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingCustomerInfo  = errors.New("missing required customer information")
	ErrInvalidLineItem      = errors.New("cart item has non-positive price or quantity")
	ErrUnknownPaymentOption = errors.New("unknown payment option")
	ErrTotalBelowItems      = errors.New("total amount is below the sum of line totals")
)

type CartItem struct {
	ProductID        uint     `json:"product_id"`
	ProductName      string   `json:"product_name"`
	ProductImage     string   `json:"product_image"`
	Price            float64  `json:"price"`
	Quantity         int      `json:"quantity"`
	SelectedColor    string   `json:"selected_color"`
	SelectedFeatures []string `json:"selected_features"`
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

type ReceiverInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

type CheckoutRequest struct {
	Items           []CartItem    `json:"items"`
	Customer        CustomerInfo  `json:"customer"`
	Receiver        *ReceiverInfo `json:"receiver"`
	PaymentOption   string        `json:"payment_option"`
	TotalAmount     float64       `json:"total_amount"`
	ReceiptURL      string        `json:"receipt_url"`
	ReceiptFileName string        `json:"receipt_file_name"`
}

// ChangePublisher signals that the order set changed, so the admin console
// can refresh its snapshot.
type ChangePublisher interface {
	PublishOrdersChanged() error
}

type OrderService interface {
	Checkout(req *CheckoutRequest) (*models.Order, error)
	GetOrderByOrderID(orderID string) (*models.Order, error)
	GetAllOrders() ([]models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	publisher ChangePublisher
}

func NewOrderService(orderRepo repository.OrderRepository, publisher ChangePublisher) OrderService {
	return &orderService{orderRepo: orderRepo, publisher: publisher}
}

// DepositAmount is the upfront payment due for payment_option=deposit: 10%
// of the total, with a floor of 1 currency unit so a degenerate cart never
// produces a zero deposit.
func DepositAmount(total float64) float64 {
	return math.Max(1, math.Round(total*0.10))
}

func (s *orderService) Checkout(req *CheckoutRequest) (*models.Order, error) {
	// All validation happens before any persistence call
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := validateCustomer(&req.Customer); err != nil {
		return nil, err
	}
	switch models.PaymentOption(req.PaymentOption) {
	case models.PaymentFull, models.PaymentDeposit:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentOption, req.PaymentOption)
	}

	itemsTotal := 0.0
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, ci := range req.Items {
		if ci.Price <= 0 || ci.Quantity <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidLineItem, ci.ProductName)
		}
		item := models.OrderItem{
			ProductID:        ci.ProductID,
			ProductName:      ci.ProductName,
			ProductImage:     ci.ProductImage,
			Price:            ci.Price,
			Quantity:         ci.Quantity,
			SelectedColor:    ci.SelectedColor,
			SelectedFeatures: models.FeatureList(ci.SelectedFeatures),
		}
		itemsTotal += item.LineTotal()
		items = append(items, item)
	}

	// A client-supplied total may exceed the item sum (shipping, fees) but
	// never undercut it
	total := req.TotalAmount
	if total == 0 {
		total = itemsTotal
	} else if total < itemsTotal {
		return nil, ErrTotalBelowItems
	}

	order := &models.Order{
		OrderID:         NewOrderID(),
		CustomerName:    strings.TrimSpace(req.Customer.Name),
		CustomerEmail:   strings.TrimSpace(req.Customer.Email),
		CustomerPhone:   strings.TrimSpace(req.Customer.Phone),
		CustomerAddress: strings.TrimSpace(req.Customer.Address),
		CustomerCity:    strings.TrimSpace(req.Customer.City),
		CustomerState:   strings.TrimSpace(req.Customer.State),
		CustomerZip:     strings.TrimSpace(req.Customer.Zip),
		TotalAmount:     total,
		PaymentOption:   req.PaymentOption,
		PaymentStatus:   string(models.PaymentPending),
		OrderStatus:     string(models.OrderPending),
		ReceiptURL:      req.ReceiptURL,
		ReceiptFileName: req.ReceiptFileName,
		Items:           items,
	}
	if req.Receiver != nil && strings.TrimSpace(req.Receiver.Name) != "" {
		order.ReceiverName = strings.TrimSpace(req.Receiver.Name)
		order.ReceiverPhone = strings.TrimSpace(req.Receiver.Phone)
		order.ReceiverAddress = strings.TrimSpace(req.Receiver.Address)
		order.ReceiverCity = strings.TrimSpace(req.Receiver.City)
		order.ReceiverState = strings.TrimSpace(req.Receiver.State)
		order.ReceiverZip = strings.TrimSpace(req.Receiver.Zip)
	}

	if err := s.orderRepo.CreateWithItems(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrdersChanged(); err != nil {
			log.Printf("Warning: failed to publish order change: %v", err)
		}
	}

	return order, nil
}

func (s *orderService) GetOrderByOrderID(orderID string) (*models.Order, error) {
	return s.orderRepo.GetByOrderID(orderID)
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// NewOrderID generates the human-facing order id, e.g. "DT-3F29A1C4".
func NewOrderID() string {
	id := uuid.New()
	return "DT-" + strings.ToUpper(id.String()[:8])
}

func validateCustomer(c *CustomerInfo) error {
	required := []string{c.Name, c.Email, c.Phone, c.Address, c.City, c.State, c.Zip}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return ErrMissingCustomerInfo
		}
	}
	return nil
}

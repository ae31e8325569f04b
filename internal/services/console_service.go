package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/pkg/coalesce"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrBlockedByItems = errors.New("remove related data first")
)

type ReceiptKind string

const (
	ReceiptImage      ReceiptKind = "image"
	ReceiptDiagnostic ReceiptKind = "diagnostic"
	ReceiptNone       ReceiptKind = "none"
)

// ReceiptView tells the UI how to present an order's payment receipt: an
// image when the URL is usable, an inline diagnostic naming the stored file
// when it is not, never a broken image element.
type ReceiptView struct {
	Kind    ReceiptKind `json:"kind"`
	URL     string      `json:"url,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ConsoleService interface {
	Start(ctx context.Context, changes <-chan struct{})
	Refresh() error
	List(search, status string) []models.Order
	Get(orderID string) (*models.Order, bool)
	UpdateStatus(orderID, newStatus string) error
	Delete(orderID string) error
	ResolveReceipt(order *models.Order) ReceiptView
}

type consoleService struct {
	orderRepo    repository.OrderRepository
	itemRepo     repository.OrderItemRepository
	publisher    ChangePublisher
	refreshDelay time.Duration
	debouncer    *coalesce.Debouncer

	mu     sync.RWMutex
	orders []models.Order
}

func NewConsoleService(orderRepo repository.OrderRepository, itemRepo repository.OrderItemRepository, publisher ChangePublisher, refreshDelay, debounceWindow time.Duration) ConsoleService {
	s := &consoleService{
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		publisher:    publisher,
		refreshDelay: refreshDelay,
	}
	s.debouncer = coalesce.NewDebouncer(debounceWindow, func() {
		if err := s.Refresh(); err != nil {
			log.Printf("Warning: console refresh failed: %v", err)
		}
	})
	return s
}

// Start performs the delayed initial load and wires change notifications
// into the debounced refetch. Bursts of changes collapse into one refetch
// on the trailing edge of the window.
func (s *consoleService) Start(ctx context.Context, changes <-chan struct{}) {
	go func() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.refreshDelay):
		}
		if err := s.Refresh(); err != nil {
			log.Printf("Warning: initial console load failed: %v", err)
		}
		if changes == nil {
			return
		}
		for {
			select {
			case <-ctx.Done():
				s.debouncer.Stop()
				return
			case _, ok := <-changes:
				if !ok {
					s.debouncer.Stop()
					return
				}
				s.debouncer.Trigger()
			}
		}
	}()
}

// Refresh replaces the snapshot with a whole-table fetch. Incremental
// patching on change events was rejected in favor of refetch consistency.
func (s *consoleService) Refresh() error {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}
	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return nil
}

// List filters the snapshot. Search is a case-insensitive substring match
// over order id, customer name/email/phone and receiver name/phone. Status
// "all" or empty matches every state.
func (s *consoleService) List(search, status string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(search))
	filtered := make([]models.Order, 0, len(s.orders))
	for i := range s.orders {
		o := &s.orders[i]
		if status != "" && status != "all" && o.OrderStatus != status {
			continue
		}
		if needle != "" && !matchesSearch(o, needle) {
			continue
		}
		filtered = append(filtered, *o)
	}
	return filtered
}

func matchesSearch(o *models.Order, needle string) bool {
	fields := []string{
		o.OrderID,
		o.CustomerName,
		o.CustomerEmail,
		o.CustomerPhone,
		o.ReceiverName,
		o.ReceiverPhone,
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Get returns the order from the snapshot with its items attached. The list
// fetch carries orders only; items load lazily on the detail path.
func (s *consoleService) Get(orderID string) (*models.Order, bool) {
	s.mu.RLock()
	var found *models.Order
	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			o := s.orders[i]
			found = &o
			break
		}
	}
	s.mu.RUnlock()
	if found == nil {
		return nil, false
	}

	if s.itemRepo != nil && len(found.Items) == 0 {
		items, err := s.itemRepo.GetByOrderRef(found.ID)
		if err != nil {
			log.Printf("Warning: failed to load items for order %s: %v", orderID, err)
		} else {
			for _, item := range items {
				found.Items = append(found.Items, *item)
			}
		}
	}
	return found, true
}

// UpdateStatus persists first and patches the snapshot only after
// persistence confirms, so the operator never sees a state that did not
// actually stick. An id missing from the snapshot leaves it unchanged.
func (s *consoleService) UpdateStatus(orderID, newStatus string) error {
	if !models.ValidOrderStatus(newStatus) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	if err := s.orderRepo.UpdateStatus(orderID, newStatus); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to update order status: %w", err)
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			s.orders[i].OrderStatus = newStatus
			break
		}
	}
	s.mu.Unlock()

	s.notifyChanged()
	return nil
}

// Delete cascades to order items and drops the order from the snapshot.
func (s *consoleService) Delete(orderID string) error {
	if err := s.orderRepo.Delete(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		// Postgres foreign key violation surfaces as SQLSTATE 23503
		if strings.Contains(err.Error(), "23503") {
			return ErrBlockedByItems
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notifyChanged()
	return nil
}

func (s *consoleService) ResolveReceipt(order *models.Order) ReceiptView {
	if order.ReceiptURL != "" {
		return ReceiptView{Kind: ReceiptImage, URL: order.ReceiptURL}
	}
	if order.ReceiptFileName != "" {
		return ReceiptView{
			Kind:    ReceiptDiagnostic,
			Message: fmt.Sprintf("Receipt image could not be loaded. Stored file: %s", order.ReceiptFileName),
		}
	}
	return ReceiptView{Kind: ReceiptNone}
}

func (s *consoleService) notifyChanged() {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrdersChanged(); err != nil {
		log.Printf("Warning: failed to publish order change: %v", err)
	}
}

package repository

import (
	"storefront/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateWithItems(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderID(orderID string) (*models.Order, error)
	GetAll() ([]models.Order, error)
	UpdateStatus(orderID string, status string) error
	Delete(orderID string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithItems persists the order and all of its items in a single
// transaction, so a failed item insert never leaves a headless order behind.
func (r *orderRepository) CreateWithItems(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByOrderID(orderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("order_id = ?", orderID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetAll is the console's whole-table fetch. Items are loaded separately on
// the detail path, not here.
func (r *orderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(orderID string, status string) error {
	result := r.db.Model(&models.Order{}).Where("order_id = ?", orderID).Update("order_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the order and its items. Items go first so the cascade
// holds even when the schema-level constraint is missing.
func (r *orderRepository) Delete(orderID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("order_id = ?", orderID).First(&order).Error; err != nil {
			return err
		}
		if err := tx.Where("order_ref = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

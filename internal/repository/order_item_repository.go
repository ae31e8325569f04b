package repository

import (
	"storefront/internal/models"

	"gorm.io/gorm"
)

type OrderItemRepository interface {
	GetByOrderRef(orderRef uint) ([]*models.OrderItem, error)
	CountByOrderRef(orderRef uint) (int64, error)
}

type orderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) GetByOrderRef(orderRef uint) ([]*models.OrderItem, error) {
	var orderItems []*models.OrderItem
	err := r.db.Where("order_ref = ?", orderRef).Find(&orderItems).Error
	if err != nil {
		return nil, err
	}
	return orderItems, nil
}

func (r *orderItemRepository) CountByOrderRef(orderRef uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrderItem{}).Where("order_ref = ?", orderRef).Count(&count).Error
	return count, err
}

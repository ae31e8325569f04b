package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type OrderItem struct {
	ID               uint        `json:"id" gorm:"primaryKey"`
	OrderRef         uint        `json:"order_ref" gorm:"not null;index"`
	ProductID        uint        `json:"product_id" gorm:"not null"`
	ProductName      string      `json:"product_name" gorm:"not null"`
	ProductImage     string      `json:"product_image"`
	Price            float64     `json:"price" gorm:"not null"`
	Quantity         int         `json:"quantity" gorm:"not null"`
	SelectedColor    string      `json:"selected_color,omitempty"`
	SelectedFeatures FeatureList `json:"selected_features,omitempty" gorm:"type:text"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// LineTotal is always derived from the snapshot price and quantity; it is
// never persisted, so a stale stored value can never be trusted by mistake.
func (i OrderItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// FeatureList stores buyer-chosen product features as a JSON array in a
// single text column, preserving selection order.
type FeatureList []string

func (f FeatureList) Value() (driver.Value, error) {
	if len(f) == 0 {
		return nil, nil
	}
	return json.Marshal([]string(f))
}

func (f *FeatureList) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	}
	return fmt.Errorf("unsupported feature list type %T", value)
}

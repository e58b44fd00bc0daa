package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID         string          `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ExternalID string          `json:"external_id"`
	Email      *string         `json:"email"`
	Total      decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`
	Currency   string          `json:"currency" gorm:"default:USD"`
	PlacedAt   time.Time       `json:"placed_at"`
	LineItems  []OrderLineItem `json:"line_items" gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// OrderLineItem keeps the variant reference that makes a variant "protected"
// from deletion: any historical line item pointing at a variant blocks it.
type OrderLineItem struct {
	ID        string          `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID   string          `json:"order_id" gorm:"not null;index"`
	VariantID string          `json:"variant_id" gorm:"not null;index"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity" gorm:"default:1"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2)"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

func (li *OrderLineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == "" {
		li.ID = uuid.New().String()
	}
	return nil
}

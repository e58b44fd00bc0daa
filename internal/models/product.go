package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          string           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ExternalID  string           `json:"external_id"`
	Title       string           `json:"title" gorm:"not null"`
	Handle      string           `json:"handle" gorm:"unique;not null"`
	Description *string          `json:"description"`
	Price       decimal.Decimal  `json:"price" gorm:"type:decimal(10,2)"`
	Currency    string           `json:"currency" gorm:"default:USD"`
	Options     []ProductOption  `json:"options" gorm:"foreignKey:ProductID"`
	Variants    []ProductVariant `json:"variants" gorm:"foreignKey:ProductID"`
	Metadata    ProductMetadata  `json:"metadata" gorm:"type:jsonb"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProductOption is a product-scoped variation axis, e.g. "Color Options" on
// one specific product. Values are the strings permitted on this axis for
// this product only; the attribute catalog holds the storefront-wide set.
type ProductOption struct {
	ID        string     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID string     `json:"product_id" gorm:"not null;index"`
	Title     string     `json:"title" gorm:"not null"`
	Values    StringList `json:"values" gorm:"column:option_values;type:jsonb"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ProductVariant is one purchasable SKU. Selections maps a ProductOption id
// to the chosen value string, zero or one entry per option.
type ProductVariant struct {
	ID         string          `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID  string          `json:"product_id" gorm:"not null;index"`
	Title      string          `json:"title" gorm:"not null"`
	SKU        *string         `json:"sku" gorm:"unique"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Selections SelectionMap    `json:"selections" gorm:"type:jsonb"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (o *ProductOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

// Option returns the product option with the given id, if present.
func (p *Product) Option(id string) (*ProductOption, bool) {
	for i := range p.Options {
		if p.Options[i].ID == id {
			return &p.Options[i], true
		}
	}
	return nil, false
}

// StringList is a JSON-encoded string slice column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, (*[]string)(l))
}

// SelectionMap is a JSON-encoded map column of option id -> chosen value.
type SelectionMap map[string]string

func (m SelectionMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]string(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *SelectionMap) Scan(src interface{}) error {
	return scanJSON(src, (*map[string]string)(m))
}

func scanJSON(src, dst interface{}) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}

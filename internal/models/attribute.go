package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttributeKey is a storefront-wide classification axis, e.g. "Color Temperature".
// Keys are created by catalog import or admins; the reconciler only reads them
// and, exceptionally, appends values.
type AttributeKey struct {
	ID        string           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Label     string           `json:"label" gorm:"not null"`
	Handle    string           `json:"handle" gorm:"unique;not null"`
	Values    []AttributeValue `json:"values" gorm:"foreignKey:AttributeKeyID"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// AttributeValue is one permitted value under a key. (attribute_key_id, value)
// is unique; CreatedBy records whether the row came from import or from the
// reconciler discovering it.
type AttributeValue struct {
	ID             string    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AttributeKeyID string    `json:"attribute_key_id" gorm:"not null;uniqueIndex:idx_attribute_values_key_value"`
	Value          string    `json:"value" gorm:"not null;uniqueIndex:idx_attribute_values_key_value"`
	CreatedBy      string    `json:"created_by" gorm:"default:import"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (k *AttributeKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.New().String()
	}
	return nil
}

func (v *AttributeValue) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Dish struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	MenuID string `gorm:"size:36;index;not null" json:"menu_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:500" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`

	// Base64 data URL, stored inline.
	Image *string `gorm:"type:text" json:"image"`

	Options     []string `gorm:"serializer:json" json:"options"`
	IsAvailable bool     `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Dish) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Menu struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	RestaurantID string `gorm:"size:36;index;not null" json:"restaurant_id"`

	Name string `gorm:"size:100;not null" json:"name"`

	// Base64 PNG data URL encoding the public menu link. Rendered once at
	// creation, never on rename (the link only embeds the menu id).
	QRCode   string `gorm:"type:text" json:"qr_code"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Menu) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

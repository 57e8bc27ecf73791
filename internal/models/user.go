package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionInactive = "inactive"
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
)

type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	IsActive bool `gorm:"default:true" json:"is_active"`
	IsAdmin  bool `gorm:"default:false" json:"is_admin"`

	SubscriptionStatus    string  `gorm:"size:20;default:'inactive'" json:"subscription_status"`
	SubscriptionSessionID *string `gorm:"size:255" json:"subscription_session_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) IsSubscribed() bool {
	return u.SubscriptionStatus == SubscriptionActive
}

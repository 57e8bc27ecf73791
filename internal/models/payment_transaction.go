package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentExpired = "expired"
	PaymentFailed  = "failed"
)

// PaymentTransaction records one checkout session. Created exactly once when
// the session is opened, mutated only by reconciliation, never deleted.
type PaymentTransaction struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;index;not null" json:"user_id"`

	SessionID string  `gorm:"size:255;uniqueIndex;not null" json:"session_id"`
	Amount    float64 `gorm:"not null" json:"amount"`
	Currency  string  `gorm:"size:10;not null" json:"currency"`

	// Provider-defined vocabulary; locally we only distinguish paid.
	PaymentStatus string `gorm:"size:30;default:'pending'" json:"payment_status"`

	// Must carry user_id so the webhook path can correlate back to a user.
	Metadata map[string]string `gorm:"serializer:json" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *PaymentTransaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

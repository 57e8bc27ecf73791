package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/spaceqrpro/qrmenu-api/internal/models"
)

type BillingGormRepository struct {
	db *gorm.DB
}

func NewBillingGormRepository(db *gorm.DB) *BillingGormRepository {
	return &BillingGormRepository{db: db}
}

func (r *BillingGormRepository) CreateTransaction(
	ctx context.Context,
	tx *models.PaymentTransaction,
) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *BillingGormRepository) FindTransactionBySession(
	ctx context.Context,
	sessionID string,
) (*models.PaymentTransaction, error) {

	var tx models.PaymentTransaction
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&tx).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tx, nil
}

func (r *BillingGormRepository) UpdateTransactionStatus(
	ctx context.Context,
	sessionID string,
	status string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.PaymentTransaction{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]any{
			"payment_status": status,
			"updated_at":     time.Now(),
		}).Error
}

// ActivateSubscription is a per-document atomic update; it only ever
// promotes the user to active.
func (r *BillingGormRepository) ActivateSubscription(
	ctx context.Context,
	userID string,
	sessionID string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"subscription_status":     models.SubscriptionActive,
			"subscription_session_id": sessionID,
			"updated_at":              time.Now(),
		}).Error
}

package subscription

import (
	"context"
	"strings"

	"github.com/spaceqrpro/qrmenu-api/internal/config"
	"github.com/spaceqrpro/qrmenu-api/internal/domain/billing"
	"github.com/spaceqrpro/qrmenu-api/internal/httperr"
	"github.com/spaceqrpro/qrmenu-api/internal/models"
)

type CreateCheckout struct {
	repo     billing.Repository
	provider billing.Provider
}

func NewCreateCheckout(
	repo billing.Repository,
	provider billing.Provider,
) *CreateCheckout {
	return &CreateCheckout{
		repo:     repo,
		provider: provider,
	}
}

// Execute opens a hosted checkout session for the fixed subscription tier
// and persists the pending transaction before returning. The caller only
// needs an active account, not a subscription: this is how one is acquired.
func (uc *CreateCheckout) Execute(
	ctx context.Context,
	user *models.User,
	hostURL string,
) (*billing.CheckoutSession, error) {

	// There is exactly one tier and no renewal flow, a second checkout
	// for an active subscriber would only double-charge.
	if user.IsSubscribed() {
		return nil, httperr.ErrBusiness("already_subscribed")
	}

	if uc.provider == nil {
		return nil, billing.ErrProviderNotConfigured
	}

	host := strings.TrimRight(hostURL, "/")
	metadata := map[string]string{
		"user_id":           user.ID,
		"user_email":        user.Email,
		"subscription_type": config.SubscriptionType,
	}

	session, err := uc.provider.CreateCheckoutSession(ctx, billing.CreateSessionParams{
		AmountCents: config.SubscriptionPriceCents,
		Currency:    config.SubscriptionCurrency,
		SuccessURL:  host + "/dashboard?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   host + "/subscription",
		Metadata:    metadata,
	})
	if err != nil {
		return nil, err
	}

	tx := &models.PaymentTransaction{
		UserID:        user.ID,
		SessionID:     session.SessionID,
		Amount:        float64(config.SubscriptionPriceCents) / 100,
		Currency:      config.SubscriptionCurrency,
		PaymentStatus: models.PaymentPending,
		Metadata:      metadata,
	}
	if err := uc.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return session, nil
}

package subscription

import (
	"context"

	"github.com/spaceqrpro/qrmenu-api/internal/domain/billing"
	"github.com/spaceqrpro/qrmenu-api/internal/models"
)

type PollStatus struct {
	provider   billing.Provider
	reconciler *Reconciler
}

func NewPollStatus(
	provider billing.Provider,
	reconciler *Reconciler,
) *PollStatus {
	return &PollStatus{
		provider:   provider,
		reconciler: reconciler,
	}
}

// Execute fetches the provider's current view of a session, reconciles it
// against local state, and always returns the raw snapshot, even when no
// local transaction matched. The identity on the user update is the
// authenticated caller, this path has no webhook metadata.
func (uc *PollStatus) Execute(
	ctx context.Context,
	user *models.User,
	sessionID string,
) (*billing.CheckoutStatus, error) {

	if uc.provider == nil {
		return nil, billing.ErrProviderNotConfigured
	}

	status, err := uc.provider.GetCheckoutStatus(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := uc.reconciler.Reconcile(ctx, sessionID, status.PaymentStatus, user.ID); err != nil {
		return nil, err
	}

	return status, nil
}

package subscription

import (
	"context"
	"log"

	"github.com/spaceqrpro/qrmenu-api/internal/audit"
	"github.com/spaceqrpro/qrmenu-api/internal/domain/billing"
	"github.com/spaceqrpro/qrmenu-api/internal/models"
)

// Reconciler is the single primitive all three subscription triggers
// (checkout creation, status poll, webhook) funnel into. It is idempotent:
// replaying the same session/status pair converges on the same end state.
type Reconciler struct {
	repo  billing.Repository
	audit *audit.Dispatcher
}

func NewReconciler(repo billing.Repository, audit *audit.Dispatcher) *Reconciler {
	return &Reconciler{
		repo:  repo,
		audit: audit,
	}
}

// Reconcile applies a provider-reported status to the local transaction and,
// on "paid", to the user's subscription. Unknown sessions are a no-op, a
// record is never fabricated. userID may be empty (webhook without user_id
// metadata), in which case only the transaction is updated.
//
// The transaction update and the user update are two separate writes, the
// store offers no transaction spanning both. A crash in between leaves the
// transaction paid but the user inactive; the next poll or webhook
// redelivery converges it.
func (r *Reconciler) Reconcile(ctx context.Context, sessionID, reportedStatus, userID string) error {
	tx, err := r.repo.FindTransactionBySession(ctx, sessionID)
	if err != nil {
		return err
	}
	if tx == nil {
		log.Printf("reconcile: unknown session %s, ignoring", sessionID)
		return nil
	}

	if err := r.repo.UpdateTransactionStatus(ctx, sessionID, reportedStatus); err != nil {
		return err
	}

	if reportedStatus != models.PaymentPaid {
		// Non-paid statuses never touch the user record, so a user's
		// subscription is never demoted here.
		return nil
	}

	if userID == "" {
		log.Printf("reconcile: session %s paid but no user_id, skipping user update", sessionID)
		return nil
	}

	if err := r.repo.ActivateSubscription(ctx, userID, sessionID); err != nil {
		return err
	}

	r.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "subscription_activated",
		Entity:   "payment_transaction",
		EntityID: &tx.ID,
		Metadata: map[string]string{"session_id": sessionID},
	})

	return nil
}

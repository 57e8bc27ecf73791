package subscription

import (
	"context"
	"log"

	"github.com/spaceqrpro/qrmenu-api/internal/audit"
	"github.com/spaceqrpro/qrmenu-api/internal/domain/billing"
)

type HandleWebhook struct {
	provider   billing.Provider
	reconciler *Reconciler
	audit      *audit.Dispatcher
}

func NewHandleWebhook(
	provider billing.Provider,
	reconciler *Reconciler,
	audit *audit.Dispatcher,
) *HandleWebhook {
	return &HandleWebhook{
		provider:   provider,
		reconciler: reconciler,
		audit:      audit,
	}
}

// Execute verifies the event signature against the raw body, then
// reconciles completed checkouts. Soft misses (unknown session, absent
// user_id metadata) stay no-ops so the provider's retry policy is only
// triggered by signature rejection or store failure.
func (uc *HandleWebhook) Execute(ctx context.Context, payload []byte, signature string) error {
	if uc.provider == nil {
		return billing.ErrProviderNotConfigured
	}

	event, err := uc.provider.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}

	if event.Type != billing.EventCheckoutCompleted {
		// No cancellation or downgrade handling exists yet; unhandled
		// types are acknowledged and recorded for future extension.
		log.Printf("webhook: ignoring event type %s", event.Type)
		uc.audit.Dispatch(audit.Event{
			Action:   "webhook_event_ignored",
			Entity:   "webhook",
			Metadata: map[string]string{"event_type": event.Type},
		})
		return nil
	}

	userID := event.Metadata["user_id"]
	return uc.reconciler.Reconcile(ctx, event.SessionID, event.PaymentStatus, userID)
}

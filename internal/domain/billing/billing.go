// Package billing defines the contracts between the subscription usecases,
// the payment provider and the store.
package billing

import (
	"context"
	"errors"

	"github.com/spaceqrpro/qrmenu-api/internal/models"
)

var (
	// ErrProviderNotConfigured means no provider credential is present.
	ErrProviderNotConfigured = errors.New("payment provider not configured")

	// ErrInvalidSignature is the anti-forgery control on webhooks. It must
	// surface as a rejection, never as a silent no-op.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// EventCheckoutCompleted is the only event type that drives reconciliation.
const EventCheckoutCompleted = "checkout.session.completed"

type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CheckoutStatus is the provider's raw snapshot for one session. The poll
// endpoint returns it verbatim, whether or not a local transaction matched.
type CheckoutStatus struct {
	SessionID     string            `json:"session_id"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

type WebhookEvent struct {
	Type          string
	SessionID     string
	PaymentStatus string
	Metadata      map[string]string
}

type CreateSessionParams struct {
	AmountCents int64
	Currency    string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// Provider is the hosted checkout service. Calls carry the request context
// and a timeout; they are not retried here.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error)
	GetCheckoutStatus(ctx context.Context, sessionID string) (*CheckoutStatus, error)
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// Repository is the store surface of the reconciliation engine. Missing
// transactions are (nil, nil).
type Repository interface {
	CreateTransaction(ctx context.Context, tx *models.PaymentTransaction) error
	FindTransactionBySession(ctx context.Context, sessionID string) (*models.PaymentTransaction, error)
	UpdateTransactionStatus(ctx context.Context, sessionID, status string) error
	ActivateSubscription(ctx context.Context, userID, sessionID string) error
}

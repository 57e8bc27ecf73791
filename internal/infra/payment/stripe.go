// Package payment adapts Stripe hosted checkout to the billing contracts.
package payment

import (
	"context"
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/spaceqrpro/qrmenu-api/internal/domain/billing"
)

type StripeProvider struct {
	webhookSecret string
}

// NewStripeProvider returns nil when no API key is configured, which the
// usecases surface as billing.ErrProviderNotConfigured.
func NewStripeProvider(apiKey, webhookSecret string) *StripeProvider {
	if apiKey == "" {
		return nil
	}
	stripe.Key = apiKey
	return &StripeProvider{webhookSecret: webhookSecret}
}

func (p *StripeProvider) CreateCheckoutSession(
	ctx context.Context,
	params billing.CreateSessionParams,
) (*billing.CheckoutSession, error) {

	sessionParams := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(params.Currency),
					UnitAmount: stripe.Int64(params.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Monthly subscription"),
					},
				},
			},
		},
	}
	sessionParams.Context = ctx
	for k, v := range params.Metadata {
		sessionParams.AddMetadata(k, v)
	}

	s, err := session.New(sessionParams)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &billing.CheckoutSession{
		SessionID: s.ID,
		URL:       s.URL,
	}, nil
}

func (p *StripeProvider) GetCheckoutStatus(
	ctx context.Context,
	sessionID string,
) (*billing.CheckoutStatus, error) {

	getParams := &stripe.CheckoutSessionParams{}
	getParams.Context = ctx

	s, err := session.Get(sessionID, getParams)
	if err != nil {
		return nil, fmt.Errorf("get checkout session: %w", err)
	}

	return &billing.CheckoutStatus{
		SessionID:     s.ID,
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		Metadata:      s.Metadata,
	}, nil
}

// ParseWebhook verifies the Stripe-Signature header against the raw body.
// Stripe's own API version drift is tolerated, forged payloads are not.
func (p *StripeProvider) ParseWebhook(payload []byte, signature string) (*billing.WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrInvalidSignature, err)
	}

	out := &billing.WebhookEvent{Type: string(event.Type)}

	if out.Type == billing.EventCheckoutCompleted {
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			return nil, fmt.Errorf("decode checkout session event: %w", err)
		}
		out.SessionID = cs.ID
		out.PaymentStatus = string(cs.PaymentStatus)
		out.Metadata = cs.Metadata
	}

	return out, nil
}

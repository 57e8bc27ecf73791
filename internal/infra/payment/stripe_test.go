package payment

import (
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/spaceqrpro/qrmenu-api/internal/domain/billing"
)

const testWebhookSecret = "whsec_test_secret"

func signPayload(t *testing.T, payload []byte, secret string) string {
	t.Helper()
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))
}

func TestNewStripeProvider_NilWithoutKey(t *testing.T) {
	assert.Nil(t, NewStripeProvider("", "whsec"))
	assert.NotNil(t, NewStripeProvider("sk_test_123", "whsec"))
}

func TestParseWebhook_CheckoutCompleted(t *testing.T) {
	p := NewStripeProvider("sk_test_123", testWebhookSecret)

	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_1",
				"payment_status": "paid",
				"metadata": {"user_id": "user-1", "user_email": "owner@example.com"}
			}
		}
	}`)

	event, err := p.ParseWebhook(payload, signPayload(t, payload, testWebhookSecret))
	require.NoError(t, err)

	assert.Equal(t, billing.EventCheckoutCompleted, event.Type)
	assert.Equal(t, "cs_test_1", event.SessionID)
	assert.Equal(t, "paid", event.PaymentStatus)
	assert.Equal(t, "user-1", event.Metadata["user_id"])
}

func TestParseWebhook_OtherEventTypePassesThrough(t *testing.T) {
	p := NewStripeProvider("sk_test_123", testWebhookSecret)

	payload := []byte(`{
		"id": "evt_2",
		"type": "invoice.paid",
		"data": {"object": {"id": "in_1"}}
	}`)

	event, err := p.ParseWebhook(payload, signPayload(t, payload, testWebhookSecret))
	require.NoError(t, err)

	assert.Equal(t, "invoice.paid", event.Type)
	assert.Empty(t, event.SessionID)
}

func TestParseWebhook_RejectsBadSignature(t *testing.T) {
	p := NewStripeProvider("sk_test_123", testWebhookSecret)

	payload := []byte(`{"id": "evt_3", "type": "checkout.session.completed"}`)

	tests := []struct {
		name      string
		signature string
	}{
		{name: "empty header", signature: ""},
		{name: "garbage header", signature: "t=123,v1=deadbeef"},
		{name: "wrong secret", signature: signPayload(t, payload, "whsec_other_secret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := p.ParseWebhook(payload, tt.signature)
			assert.ErrorIs(t, err, billing.ErrInvalidSignature)
			assert.Nil(t, event)
		})
	}
}

func TestParseWebhook_RejectsTamperedPayload(t *testing.T) {
	p := NewStripeProvider("sk_test_123", testWebhookSecret)

	payload := []byte(`{"id": "evt_4", "type": "checkout.session.completed"}`)
	signature := signPayload(t, payload, testWebhookSecret)

	tampered := []byte(`{"id": "evt_4", "type": "checkout.session.expired"}`)
	event, err := p.ParseWebhook(tampered, signature)
	assert.ErrorIs(t, err, billing.ErrInvalidSignature)
	assert.Nil(t, event)
}

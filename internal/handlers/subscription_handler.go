package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spaceqrpro/qrmenu-api/internal/domain/billing"
	"github.com/spaceqrpro/qrmenu-api/internal/httperr"
	"github.com/spaceqrpro/qrmenu-api/internal/middleware"
	ucSubscription "github.com/spaceqrpro/qrmenu-api/internal/usecase/subscription"
)

type SubscriptionHandler struct {
	createCheckout *ucSubscription.CreateCheckout
	pollStatus     *ucSubscription.PollStatus
	handleWebhook  *ucSubscription.HandleWebhook
}

func NewSubscriptionHandler(
	createCheckout *ucSubscription.CreateCheckout,
	pollStatus *ucSubscription.PollStatus,
	handleWebhook *ucSubscription.HandleWebhook,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createCheckout: createCheckout,
		pollStatus:     pollStatus,
		handleWebhook:  handleWebhook,
	}
}

type CreateCheckoutRequest struct {
	HostURL string `json:"host_url" binding:"required,url"`
}

func (h *SubscriptionHandler) CreateCheckout(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	session, err := h.createCheckout.Execute(c.Request.Context(), user, req.HostURL)
	if err != nil {
		if httperr.IsBusiness(err, "already_subscribed") {
			httperr.Conflict(c, "already_subscribed", "Subscription is already active.")
			return
		}
		if errors.Is(err, billing.ErrProviderNotConfigured) {
			httperr.BadGateway(c, "payment_provider_unavailable", "Payment provider is not configured.")
			return
		}
		httperr.BadGateway(c, "payment_provider_unavailable", "Could not create checkout session.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checkout_url": session.URL,
		"session_id":   session.SessionID,
	})
}

func (h *SubscriptionHandler) Status(c *gin.Context) {
	user := middleware.CurrentUser(c)
	sessionID := c.Param("session_id")

	status, err := h.pollStatus.Execute(c.Request.Context(), user, sessionID)
	if err != nil {
		if errors.Is(err, billing.ErrProviderNotConfigured) {
			httperr.BadGateway(c, "payment_provider_unavailable", "Payment provider is not configured.")
			return
		}
		httperr.Internal(c, "failed_to_get_status", "Could not fetch checkout status.")
		return
	}

	c.JSON(http.StatusOK, status)
}

// Webhook is unauthenticated by design; the signature is the trust
// boundary. Once it verifies, soft reconciliation misses still return 200
// so the provider does not keep retrying.
func (h *SubscriptionHandler) Webhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		httperr.BadRequest(c, "invalid_body", "Could not read request body.")
		return
	}
	signature := c.GetHeader("Stripe-Signature")

	if err := h.handleWebhook.Execute(c.Request.Context(), body, signature); err != nil {
		if errors.Is(err, billing.ErrInvalidSignature) {
			httperr.BadRequest(c, "invalid_webhook_signature", "Webhook signature verification failed.")
			return
		}
		if errors.Is(err, billing.ErrProviderNotConfigured) {
			httperr.BadGateway(c, "payment_provider_unavailable", "Payment provider is not configured.")
			return
		}
		httperr.Internal(c, "webhook_processing_failed", "Could not process webhook event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

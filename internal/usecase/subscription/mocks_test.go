package subscription

import (
	"context"

	"github.com/spaceqrpro/qrmenu-api/internal/domain/billing"
	"github.com/spaceqrpro/qrmenu-api/internal/models"
)

type mockRepo struct {
	transactions map[string]*models.PaymentTransaction
	users        map[string]*models.User

	createErr   error
	findErr     error
	updateErr   error
	activateErr error

	updateCalls   int
	activateCalls int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		transactions: map[string]*models.PaymentTransaction{},
		users:        map[string]*models.User{},
	}
}

func (m *mockRepo) CreateTransaction(_ context.Context, tx *models.PaymentTransaction) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.transactions[tx.SessionID] = tx
	return nil
}

func (m *mockRepo) FindTransactionBySession(_ context.Context, sessionID string) (*models.PaymentTransaction, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.transactions[sessionID], nil
}

func (m *mockRepo) UpdateTransactionStatus(_ context.Context, sessionID, status string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updateCalls++
	if tx, ok := m.transactions[sessionID]; ok {
		tx.PaymentStatus = status
	}
	return nil
}

func (m *mockRepo) ActivateSubscription(_ context.Context, userID, sessionID string) error {
	if m.activateErr != nil {
		return m.activateErr
	}
	m.activateCalls++
	if u, ok := m.users[userID]; ok {
		u.SubscriptionStatus = models.SubscriptionActive
		u.SubscriptionSessionID = &sessionID
	}
	return nil
}

type mockProvider struct {
	createFunc func(ctx context.Context, params billing.CreateSessionParams) (*billing.CheckoutSession, error)
	statusFunc func(ctx context.Context, sessionID string) (*billing.CheckoutStatus, error)
	parseFunc  func(payload []byte, signature string) (*billing.WebhookEvent, error)
}

func (m *mockProvider) CreateCheckoutSession(ctx context.Context, params billing.CreateSessionParams) (*billing.CheckoutSession, error) {
	return m.createFunc(ctx, params)
}

func (m *mockProvider) GetCheckoutStatus(ctx context.Context, sessionID string) (*billing.CheckoutStatus, error) {
	return m.statusFunc(ctx, sessionID)
}

func (m *mockProvider) ParseWebhook(payload []byte, signature string) (*billing.WebhookEvent, error) {
	return m.parseFunc(payload, signature)
}

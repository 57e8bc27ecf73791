package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaceqrpro/qrmenu-api/internal/models"
	"github.com/spaceqrpro/qrmenu-api/internal/token"
)

type mockUserFinder struct {
	FindFunc func(ctx context.Context, email string) (*models.User, error)
}

func (m *mockUserFinder) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.FindFunc(ctx, email)
}

func setupRouter(maker *token.Maker, finder UserFinder, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{Auth(maker, finder)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": CurrentUser(c).Email})
	})
	r.GET("/protected", chain...)
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func activeUser() *models.User {
	return &models.User{
		ID:                 "user-1",
		Email:              "owner@example.com",
		IsActive:           true,
		SubscriptionStatus: models.SubscriptionInactive,
	}
}

func TestAuth(t *testing.T) {
	maker := token.NewMaker("test_secret")
	tok, err := maker.Issue("owner@example.com", time.Minute)
	require.NoError(t, err)

	t.Run("valid token resolves user", func(t *testing.T) {
		finder := &mockUserFinder{FindFunc: func(_ context.Context, email string) (*models.User, error) {
			require.Equal(t, "owner@example.com", email)
			return activeUser(), nil
		}}
		w := doRequest(setupRouter(maker, finder), "Bearer "+tok)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "owner@example.com")
	})

	t.Run("missing header", func(t *testing.T) {
		finder := &mockUserFinder{FindFunc: func(context.Context, string) (*models.User, error) {
			t.Fatal("FindUserByEmail should not be called")
			return nil, nil
		}}
		w := doRequest(setupRouter(maker, finder), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		finder := &mockUserFinder{FindFunc: func(context.Context, string) (*models.User, error) {
			return activeUser(), nil
		}}
		w := doRequest(setupRouter(maker, finder), "Token "+tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(setupRouter(maker, &mockUserFinder{FindFunc: func(context.Context, string) (*models.User, error) {
			return activeUser(), nil
		}}), "Bearer not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_token")
	})

	t.Run("token for deleted user fails like invalid token", func(t *testing.T) {
		finder := &mockUserFinder{FindFunc: func(context.Context, string) (*models.User, error) {
			return nil, nil
		}}
		w := doRequest(setupRouter(maker, finder), "Bearer "+tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_token")
	})
}

func TestRequireActive(t *testing.T) {
	maker := token.NewMaker("test_secret")
	tok, err := maker.Issue("owner@example.com", time.Minute)
	require.NoError(t, err)

	t.Run("inactive account rejected", func(t *testing.T) {
		user := activeUser()
		user.IsActive = false
		finder := &mockUserFinder{FindFunc: func(context.Context, string) (*models.User, error) {
			return user, nil
		}}
		w := doRequest(setupRouter(maker, finder, RequireActive()), "Bearer "+tok)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "inactive_account")
	})

	t.Run("active account passes", func(t *testing.T) {
		finder := &mockUserFinder{FindFunc: func(context.Context, string) (*models.User, error) {
			return activeUser(), nil
		}}
		w := doRequest(setupRouter(maker, finder, RequireActive()), "Bearer "+tok)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireSubscribed(t *testing.T) {
	maker := token.NewMaker("test_secret")
	tok, err := maker.Issue("owner@example.com", time.Minute)
	require.NoError(t, err)

	t.Run("unsubscribed rejected", func(t *testing.T) {
		finder := &mockUserFinder{FindFunc: func(context.Context, string) (*models.User, error) {
			return activeUser(), nil
		}}
		w := doRequest(setupRouter(maker, finder, RequireActive(), RequireSubscribed()), "Bearer "+tok)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "subscription_required")
	})

	t.Run("canceled rejected", func(t *testing.T) {
		user := activeUser()
		user.SubscriptionStatus = models.SubscriptionCanceled
		finder := &mockUserFinder{FindFunc: func(context.Context, string) (*models.User, error) {
			return user, nil
		}}
		w := doRequest(setupRouter(maker, finder, RequireActive(), RequireSubscribed()), "Bearer "+tok)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("active subscription passes", func(t *testing.T) {
		user := activeUser()
		user.SubscriptionStatus = models.SubscriptionActive
		finder := &mockUserFinder{FindFunc: func(context.Context, string) (*models.User, error) {
			return user, nil
		}}
		w := doRequest(setupRouter(maker, finder, RequireActive(), RequireSubscribed()), "Bearer "+tok)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	maker := token.NewMaker("test_secret")
	tok, err := maker.Issue("owner@example.com", time.Minute)
	require.NoError(t, err)

	t.Run("non-admin rejected", func(t *testing.T) {
		finder := &mockUserFinder{FindFunc: func(context.Context, string) (*models.User, error) {
			return activeUser(), nil
		}}
		w := doRequest(setupRouter(maker, finder, RequireActive(), RequireAdmin()), "Bearer "+tok)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "admin_required")
	})

	t.Run("admin passes", func(t *testing.T) {
		user := activeUser()
		user.IsAdmin = true
		finder := &mockUserFinder{FindFunc: func(context.Context, string) (*models.User, error) {
			return user, nil
		}}
		w := doRequest(setupRouter(maker, finder, RequireActive(), RequireAdmin()), "Bearer "+tok)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

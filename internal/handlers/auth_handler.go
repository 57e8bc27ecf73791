package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/spaceqrpro/qrmenu-api/internal/config"
	"github.com/spaceqrpro/qrmenu-api/internal/httperr"
	"github.com/spaceqrpro/qrmenu-api/internal/middleware"
	"github.com/spaceqrpro/qrmenu-api/internal/models"
	"github.com/spaceqrpro/qrmenu-api/internal/token"
	"github.com/spaceqrpro/qrmenu-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	maker  *token.Maker
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, maker *token.Maker, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, maker: maker, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.TrimSpace(req.Email)

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "email_already_registered", "Email already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process registration.")
		return
	}

	user := models.User{
		Email:              email,
		PasswordHash:       string(hashed),
		IsActive:           true,
		SubscriptionStatus: models.SubscriptionInactive,
	}

	if err := h.db.Create(&user).Error; err != nil {
		writeUserCreateError(c, err)
		return
	}

	accessToken, err := h.maker.Issue(user.Email, h.config.TokenTTL)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"access_token": accessToken,
		"token_type":   "bearer",
		"user":         user,
	})
}

// writeUserCreateError maps a failed user insert. The pre-insert count
// check races with concurrent registrations, the unique index on email is
// the real arbiter, so its violation still has to come back as 409.
func writeUserCreateError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		httperr.Conflict(c, "email_already_registered", "Email already registered.")
		return
	}
	httperr.Internal(c, "failed_to_create_user", "Could not create user.")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.TrimSpace(req.Email)

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same status and body as a bad password, unknown emails
			// must not be distinguishable.
			httperr.Unauthorized(c, "invalid_credentials", "Incorrect email or password.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not log in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Incorrect email or password.")
		return
	}

	accessToken, err := h.maker.Issue(user.Email, h.config.TokenTTL)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
		"token_type":   "bearer",
		"user":         user,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		httperr.Unauthorized(c, "user_not_in_context", "Could not validate credentials.")
		return
	}
	c.JSON(http.StatusOK, user)
}

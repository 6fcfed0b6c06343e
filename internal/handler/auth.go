package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/finance-ledger/internal/config"
	"github.com/iliyamo/finance-ledger/internal/middleware"
	"github.com/iliyamo/finance-ledger/internal/queue"
	"github.com/iliyamo/finance-ledger/internal/repository"
	queue_publisher "github.com/iliyamo/finance-ledger/internal/service"
	"github.com/iliyamo/finance-ledger/internal/utils"
)

// AuthHandler bundles dependencies for the account endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users repository.UserStore
	Cache *middleware.ListCache
}

func NewAuthHandler(cfg config.Config, users repository.UserStore, cache *middleware.ListCache) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Cache: cache}
}

// ----- DTOs -----

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordReq struct {
	OldPasswd string `json:"oldPasswd"`
	NewPasswd string `json:"newPasswd"`
}

// Register creates a user with a freshly hashed password. Duplicate
// usernames fail on the unique index, never on a prior read.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.Create(ctx, req.Username, hash); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "user already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	return c.String(http.StatusCreated, "user registered")
}

// Login verifies credentials and returns a fresh bearer token. The two
// failure branches answer 401 with different bodies, like the original
// API; the timing difference between them is an accepted
// username-enumeration vector.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, h.Cfg.TokenTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"token": access.Token})
}

// ChangePassword replaces the stored hash after verifying the old
// password. Tokens issued before the change stay valid until their own
// expiry; there is no server-side invalidation.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "token is missing"})
	}

	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.NewPasswd == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "new password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Token subject no longer exists (account deleted elsewhere).
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown account"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.OldPasswd) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	hash, err := utils.HashPassword(req.NewPasswd, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update password failed"})
	}
	if err := h.Users.UpdatePassword(ctx, uid, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update password failed"})
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteAccount removes the user row; the foreign key cascades the
// user's transactions away in the same statement. Outstanding tokens
// keep verifying until expiry, but from here on the subject id matches
// nothing.
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "token is missing"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown account"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Users.Delete(ctx, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown account"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete account failed"})
	}

	h.Cache.Invalidate(ctx, uid)

	if h.Cfg.QueueEnabled {
		ev := queue.AccountDeletedEvent{
			UserID:    u.ID,
			Username:  u.Username,
			DeletedAt: time.Now().UTC().Format(time.RFC3339),
		}
		// Best effort: the account is gone either way.
		go func() { _ = queue_publisher.PublishAccountDeleted(context.Background(), ev) }()
	}

	return c.NoContent(http.StatusNoContent)
}

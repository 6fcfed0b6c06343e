package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/finance-ledger/internal/config"
	"github.com/iliyamo/finance-ledger/internal/middleware"
	"github.com/iliyamo/finance-ledger/internal/model"
	"github.com/iliyamo/finance-ledger/internal/repository"
)

// TransactionHandler bundles dependencies for the bookkeeping
// endpoints. Every operation is scoped to the authenticated subject
// injected by the access gate; ownership itself is enforced inside the
// repository's statements.
type TransactionHandler struct {
	Cfg   config.Config
	Store repository.TransactionStore
	Cache *middleware.ListCache
}

func NewTransactionHandler(cfg config.Config, store repository.TransactionStore, cache *middleware.ListCache) *TransactionHandler {
	return &TransactionHandler{Cfg: cfg, Store: store, Cache: cache}
}

// ----- DTOs -----

type transactionReq struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

type transactionResp struct {
	ID          uint64          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	UserID      uint64          `json:"user_id"`
}

func toResponse(t model.Transaction) transactionResp {
	return transactionResp{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.FormattedDate(),
		UserID:      t.UserID,
	}
}

// dateLayouts are the accepted input formats for the date field. The
// DD-MM-YYYY form mirrors what list responses emit, so a client can
// echo a record back unchanged.
var dateLayouts = []string{"2006-01-02", time.RFC3339, model.DateLayout}

// parseDate keeps the calendar date as written: the day is taken in
// the input's own offset before normalizing to a UTC midnight, so a
// zoned RFC3339 timestamp never slips onto the neighboring UTC day.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			y, m, day := d.Date()
			return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.New("unrecognized date")
}

// validate applies the configurable validation hooks. The default is
// the permissive behavior of the original API; STRICT_VALIDATION turns
// on the type enum and positive-amount checks.
func (h *TransactionHandler) validate(req transactionReq) error {
	if !h.Cfg.StrictValidation {
		return nil
	}
	if !model.ValidType(req.Type) {
		return errors.New("type must be income or expense")
	}
	if !req.Amount.IsPositive() {
		return errors.New("amount must be positive")
	}
	return nil
}

// List returns all of the caller's transactions with DD-MM-YYYY dates,
// ordered by date then id.
func (h *TransactionHandler) List(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "token is missing"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Store.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	resp := make([]transactionResp, len(list))
	for i, t := range list {
		resp[i] = toResponse(t)
	}
	return c.JSON(http.StatusOK, resp)
}

// Create persists a new transaction owned by the caller and returns
// the created record including its generated id.
func (h *TransactionHandler) Create(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "token is missing"})
	}

	var req transactionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := model.Transaction{
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		UserID:      uid,
	}
	if err := h.Store.Create(ctx, &t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create transaction failed"})
	}

	h.Cache.Invalidate(ctx, uid)
	return c.JSON(http.StatusOK, toResponse(t))
}

// Update rewrites a transaction when, and only when, it belongs to the
// caller. A foreign or unknown id affects zero rows and answers 404;
// it never leaks or mutates another user's record.
func (h *TransactionHandler) Update(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "token is missing"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid transaction id"})
	}

	var req transactionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := model.Transaction{
		ID:          id,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		UserID:      uid,
	}
	if err := h.Store.Update(ctx, &t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "transaction not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update transaction failed"})
	}

	h.Cache.Invalidate(ctx, uid)
	return c.JSON(http.StatusOK, toResponse(t))
}

// Delete removes a transaction owned by the caller; unknown or foreign
// ids answer 404.
func (h *TransactionHandler) Delete(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "token is missing"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid transaction id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Delete(ctx, uid, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "transaction not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete transaction failed"})
	}

	h.Cache.Invalidate(ctx, uid)
	return c.NoContent(http.StatusNoContent)
}

package middleware

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/finance-ledger/internal/config"
)

// ListCache caches the JSON body of the transaction list per user in
// Redis. Entries are keyed by the authenticated subject id, expire
// after the configured TTL and are invalidated eagerly whenever the
// owner writes. A nil Redis client or a disabled config yields an
// inactive cache whose middleware passes requests straight through.
type ListCache struct {
	rdb *redis.Client
	cfg config.CacheConfig
}

func NewListCache(rdb *redis.Client, cfg config.CacheConfig) *ListCache {
	return &ListCache{rdb: rdb, cfg: cfg}
}

func (lc *ListCache) active() bool { return lc != nil && lc.rdb != nil && lc.cfg.Enabled }

func (lc *ListCache) key(userID uint64) string {
	return lc.cfg.Prefix + ":" + strconv.FormatUint(userID, 10)
}

// captureWriter mirrors the response body into a buffer while
// forwarding it to the client, so a successful list response can be
// stored after the handler ran.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// Middleware serves the cached list body when warm and captures the
// handler's response for the next request when cold. Cache failures
// are ignored; the store stays the source of truth.
func (lc *ListCache) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !lc.active() {
				return next(c)
			}
			uid, ok := UserID(c)
			if !ok {
				return next(c)
			}

			if body, err := lc.rdb.Get(c.Request().Context(), lc.key(uid)).Bytes(); err == nil {
				return c.JSONBlob(http.StatusOK, body)
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw

			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK {
				lc.rdb.Set(c.Request().Context(), lc.key(uid), cw.buf.Bytes(), lc.cfg.TTL)
			}
			return nil
		}
	}
}

// Invalidate drops the cached list for a user. Called after every
// write so readers never observe a list older than their own change.
func (lc *ListCache) Invalidate(ctx context.Context, userID uint64) {
	if !lc.active() {
		return
	}
	delCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	lc.rdb.Del(delCtx, lc.key(userID))
}

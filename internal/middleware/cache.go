package middleware

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/parkspot/booking-front/internal/config"
)

// captureWriter tees the handler's response body so a successful JSON
// payload can be stored in Redis after the handler returns.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// NewResponseCache caches successful GET responses in Redis.  Lot search
// results depend on the session's draft window as well as the query, so
// the key mixes the session id and the drafted date/time window with the
// route and raw query; confirming a new window therefore misses the old
// entries.  Misses and Redis errors fall through to the handler; the
// cache never changes observable behavior beyond latency.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			key := cacheKey(cfg.Prefix, c)
			ctx := c.Request().Context()

			if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if cw.status == http.StatusOK && cw.buf.Len() > 0 && cw.buf.Len() <= cfg.MaxBodyBytes {
				rdb.Set(ctx, key, cw.buf.Bytes(), cfg.TTL)
			}
			return nil
		}
	}
}

func cacheKey(prefix string, c echo.Context) string {
	sid, _ := c.Get("session_id").(string)
	window := ""
	if s, ok := SessionFrom(c); ok {
		d := s.Draft()
		window = d.Date.Format("2006-01-02") + "T" + d.StartTime + "-" + d.EndTime
	}
	sum := sha1.Sum([]byte(c.Request().URL.Path + "|" + c.Request().URL.RawQuery + "|" + sid + "|" + window))
	return prefix + ":" + hex.EncodeToString(sum[:])
}

package middleware

import (
	"bytes"
	"context"
	"encoding/binary"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-ticket-booking/internal/config"
)

// captureWriter copies the response body (up to limit bytes) while
// forwarding it to the client.
type captureWriter struct {
	http.ResponseWriter
	status   int
	buf      bytes.Buffer
	limit    int
	overflow bool
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if !cw.overflow {
		if cw.limit > 0 && cw.buf.Len()+len(b) > cw.limit {
			cw.overflow = true
			cw.buf.Reset()
		} else {
			cw.buf.Write(b)
		}
	}
	return cw.ResponseWriter.Write(b)
}

// encodePoster packs [2 bytes content-type length][content-type][body].
func encodePoster(contentType string, body []byte) []byte {
	out := make([]byte, 2+len(contentType)+len(body))
	binary.BigEndian.PutUint16(out[0:2], uint16(len(contentType)))
	copy(out[2:], contentType)
	copy(out[2+len(contentType):], body)
	return out
}

func decodePoster(bs []byte) (contentType string, body []byte, ok bool) {
	if len(bs) < 2 {
		return "", nil, false
	}
	n := int(binary.BigEndian.Uint16(bs[0:2]))
	if 2+n > len(bs) {
		return "", nil, false
	}
	return string(bs[2 : 2+n]), bs[2+n:], true
}

// NewFileCache caches successful poster responses in Redis, keyed by
// request path.  Posters are immutable once uploaded, so only TTL expiry
// removes them.  Rendered pages never pass through here.
func NewFileCache(cfg config.FileCacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := cfg.Prefix + ":" + c.Request().URL.Path

			if bs, err := rdb.Get(c.Request().Context(), key).Bytes(); err == nil {
				if ct, body, ok := decodePoster(bs); ok {
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(http.StatusOK, ct, body)
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK && !cw.overflow && cw.buf.Len() > 0 {
				payload := encodePoster(c.Response().Header().Get(echo.HeaderContentType), cw.buf.Bytes())
				_ = rdb.Set(context.Background(), key, payload, ttl).Err()
			}
			return nil
		}
	}
}

package showserver

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apierrors "github.com/Apurer/petshow-api/internal/shared/errors"
)

const (
	// HeaderRequestID carries the correlation id echoed on every response.
	HeaderRequestID = "X-Request-ID"
	// HeaderOwnerID identifies the acting owner. Authentication sits in front of this API.
	HeaderOwnerID = "X-Owner-ID"
	// HeaderIdempotencyKey lets clients retry a registration safely.
	HeaderIdempotencyKey = "Idempotency-Key"
)

// RequestID reuses the caller's request id or mints one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(apierrors.RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger writes one line per request. Server errors include the causes attached by the responder.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("request.id", c.GetString(apierrors.RequestIDKey)),
		}
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
			if len(c.Errors) > 0 {
				attrs = append(attrs, slog.String("error", c.Errors.String()))
			}
		}
		logger.LogAttrs(c.Request.Context(), level, "http request", attrs...)
	}
}

// actingOwner reads the owner id header. It answers 401 and returns false when absent or malformed.
func actingOwner(c *gin.Context) (int64, bool) {
	raw := strings.TrimSpace(c.GetHeader(HeaderOwnerID))
	id, err := strconv.ParseInt(raw, 10, 64)
	if raw == "" || err != nil || id <= 0 {
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail(HeaderOwnerID+" header must carry a positive owner id"))
		return 0, false
	}
	return id, true
}

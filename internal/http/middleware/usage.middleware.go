package middleware

import (
	"time"

	"github.com/datamaphq/datamap/internal/appcontext"
	"github.com/datamaphq/datamap/internal/entity"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UsageTrackingMiddleware writes one ApiUsageRecord per inbound call after
// the handler has answered. Recording failures are logged, never surfaced.
func UsageTrackingMiddleware(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}

		record := entity.ApiUsageRecord{
			Endpoint:   endpoint,
			Method:     c.Request.Method,
			StatusCode: c.Writer.Status(),
			ErrorType:  errorTypeForStatus(c.Writer.Status()),
			QuotaUsed:  1,
			Timestamp:  time.Now().UTC(),
		}

		if err := ctx.DB.Create(&record).Error; err != nil {
			ctx.Logger.Warn("Failed to record API usage", zap.Error(err))
		}
	}
}

func errorTypeForStatus(status int) string {
	switch {
	case status < 400:
		return ""
	case status == 400:
		return "validation"
	case status == 401:
		return "unauthorized"
	case status == 404:
		return "not_found"
	case status == 409:
		return "conflict"
	case status < 500:
		return "client_error"
	default:
		return "server_error"
	}
}

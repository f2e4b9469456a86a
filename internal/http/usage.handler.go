package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/datamaphq/datamap/internal/appcontext"
	"github.com/datamaphq/datamap/internal/entity"
	"github.com/datamaphq/datamap/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const usageStatsCacheTTL = 60 * time.Second

type usageStatsResponse struct {
	Summary     utils.UsageSummary  `json:"summary"`
	HourlyUsage []utils.HourlyUsage `json:"hourlyUsage"`
}

// GetUsageStats aggregates API usage for the requested timeframe. Summaries
// are cached in Redis for a minute when a client is configured; the cache is
// read-through, a miss or a Redis failure falls back to the database.
func GetUsageStats(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		timeframe := c.DefaultQuery("timeframe", "day")

		since, err := utils.TimeframeWindow(timeframe, time.Now().UTC())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timeframe, expected day, week or month"})
			return
		}

		cacheKey := "usage_stats:" + timeframe
		if ctx.RedisClient != nil {
			cached, err := ctx.RedisClient.Get(context.Background(), cacheKey).Result()
			if err == nil {
				var response usageStatsResponse
				if err := json.Unmarshal([]byte(cached), &response); err == nil {
					c.JSON(http.StatusOK, response)
					return
				}
			}
		}

		var records []entity.ApiUsageRecord
		if err := ctx.DB.Where("timestamp >= ?", since).Order("timestamp ASC").Find(&records).Error; err != nil {
			ctx.Logger.Error("Failed to get usage records", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get usage records"})
			return
		}

		summary, hourly := utils.AggregateUsage(records)
		response := usageStatsResponse{Summary: summary, HourlyUsage: hourly}

		if ctx.RedisClient != nil {
			if payload, err := json.Marshal(response); err == nil {
				if err := ctx.RedisClient.Set(context.Background(), cacheKey, payload, usageStatsCacheTTL).Err(); err != nil {
					ctx.Logger.Warn("Failed to cache usage stats", zap.Error(err))
				}
			}
		}

		c.JSON(http.StatusOK, response)
	}
}

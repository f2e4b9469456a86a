package utils

import (
	"fmt"
	"sort"
	"time"

	"github.com/datamaphq/datamap/internal/entity"
)

type UsageSummary struct {
	TotalRequests      int `json:"totalRequests"`
	SuccessfulRequests int `json:"successfulRequests"`
	TotalQuotaUsed     int `json:"totalQuotaUsed"`
	ErrorTypes         int `json:"errorTypes"`
}

type HourlyUsage struct {
	Hour               time.Time `json:"hour"`
	TotalRequests      int       `json:"totalRequests"`
	SuccessfulRequests int       `json:"successfulRequests"`
}

// TimeframeWindow returns the window start for a timeframe selector relative
// to now: day=24h, week=7d, month=30d.
func TimeframeWindow(timeframe string, now time.Time) (time.Time, error) {
	switch timeframe {
	case "day":
		return now.Add(-24 * time.Hour), nil
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "month":
		return now.AddDate(0, 0, -30), nil
	}
	return time.Time{}, fmt.Errorf("invalid timeframe %q", timeframe)
}

// AggregateUsage folds usage records into the summary and the hourly series.
// The series contains only hours with traffic, truncated to the hour and
// ordered ascending. Zero records yield a zero summary and an empty series;
// callers deriving a success percentage must guard the division themselves.
func AggregateUsage(records []entity.ApiUsageRecord) (UsageSummary, []HourlyUsage) {
	var summary UsageSummary
	errorTypes := make(map[string]bool)
	buckets := make(map[time.Time]*HourlyUsage)

	for _, record := range records {
		summary.TotalRequests++
		summary.TotalQuotaUsed += record.QuotaUsed
		if record.IsSuccessful() {
			summary.SuccessfulRequests++
		}
		if record.ErrorType != "" {
			errorTypes[record.ErrorType] = true
		}

		hour := record.Timestamp.UTC().Truncate(time.Hour)
		bucket, ok := buckets[hour]
		if !ok {
			bucket = &HourlyUsage{Hour: hour}
			buckets[hour] = bucket
		}
		bucket.TotalRequests++
		if record.IsSuccessful() {
			bucket.SuccessfulRequests++
		}
	}
	summary.ErrorTypes = len(errorTypes)

	series := make([]HourlyUsage, 0, len(buckets))
	for _, bucket := range buckets {
		series = append(series, *bucket)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Hour.Before(series[j].Hour)
	})

	return summary, series
}

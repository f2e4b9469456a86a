package utils

import (
	"testing"
	"time"

	"github.com/datamaphq/datamap/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeframeWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	start, err := TimeframeWindow("day", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-24*time.Hour), start)

	start, err = TimeframeWindow("week", now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -7), start)

	start, err = TimeframeWindow("month", now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -30), start)

	_, err = TimeframeWindow("year", now)
	assert.Error(t, err)

	_, err = TimeframeWindow("", now)
	assert.Error(t, err)
}

func TestAggregateUsageEmpty(t *testing.T) {
	summary, series := AggregateUsage(nil)
	assert.Equal(t, UsageSummary{}, summary)
	assert.Empty(t, series)
}

func TestAggregateUsage(t *testing.T) {
	base := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	records := []entity.ApiUsageRecord{
		{Endpoint: "/api/data-products", StatusCode: 200, QuotaUsed: 1, Timestamp: base.Add(5 * time.Minute)},
		{Endpoint: "/api/data-products", StatusCode: 200, QuotaUsed: 1, Timestamp: base.Add(40 * time.Minute)},
		{Endpoint: "/api/search", StatusCode: 400, ErrorType: "validation", QuotaUsed: 1, Timestamp: base.Add(50 * time.Minute)},
		{Endpoint: "/api/metadata/x", StatusCode: 404, ErrorType: "not_found", QuotaUsed: 1, Timestamp: base.Add(90 * time.Minute)},
		{Endpoint: "/api/search", StatusCode: 400, ErrorType: "validation", QuotaUsed: 1, Timestamp: base.Add(100 * time.Minute)},
	}

	summary, series := AggregateUsage(records)

	assert.Equal(t, 5, summary.TotalRequests)
	assert.Equal(t, 2, summary.SuccessfulRequests)
	assert.Equal(t, 5, summary.TotalQuotaUsed)
	// validation and not_found, counted once each
	assert.Equal(t, 2, summary.ErrorTypes)
	assert.LessOrEqual(t, summary.SuccessfulRequests, summary.TotalRequests)

	require.Len(t, series, 2)
	assert.Equal(t, base, series[0].Hour)
	assert.Equal(t, 3, series[0].TotalRequests)
	assert.Equal(t, 2, series[0].SuccessfulRequests)
	assert.Equal(t, base.Add(time.Hour), series[1].Hour)
	assert.Equal(t, 2, series[1].TotalRequests)
	assert.Equal(t, 0, series[1].SuccessfulRequests)

	for i := 1; i < len(series); i++ {
		assert.True(t, series[i-1].Hour.Before(series[i].Hour))
	}
}

func TestAggregateUsageTruncatesToHour(t *testing.T) {
	ts := time.Date(2025, 6, 15, 9, 59, 59, 999_000_000, time.UTC)
	_, series := AggregateUsage([]entity.ApiUsageRecord{
		{Endpoint: "/api/search", StatusCode: 200, QuotaUsed: 1, Timestamp: ts},
	})

	require.Len(t, series, 1)
	assert.Equal(t, time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC), series[0].Hour)
}

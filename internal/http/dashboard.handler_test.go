package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStatistics(t *testing.T) {
	service, _ := newTestService(t)

	product := createTestProduct(t, service, "orders_daily", nil)
	createTestProduct(t, service, "customer_360", nil)
	createTestDefinition(t, service, product.ID, "orders completeness")

	recorder := doRequest(t, service, "POST", "/api/data-products/"+product.ID.String()+"/comments", gin.H{
		"content": "Looks complete.",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = doRequest(t, service, "GET", "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var stats struct {
		TotalProductCount    int64 `json:"totalProductCount"`
		TotalDefinitionCount int64 `json:"totalDefinitionCount"`
		TotalCommentCount    int64 `json:"totalCommentCount"`
		DomainCounts         struct {
			Domains       []string `json:"domains"`
			ProductCounts []int64  `json:"productCounts"`
		} `json:"domainCounts"`
		MetricTypeDistribution []struct {
			ID    int    `json:"id"`
			Label string `json:"label"`
			Value int64  `json:"value"`
		} `json:"metricTypeDistribution"`
		CurrentMonthCommentCount int64 `json:"currentMonthCommentCount"`
	}
	decodeJSON(t, recorder, &stats)

	assert.Equal(t, int64(2), stats.TotalProductCount)
	assert.Equal(t, int64(1), stats.TotalDefinitionCount)
	assert.Equal(t, int64(1), stats.TotalCommentCount)
	require.Len(t, stats.DomainCounts.Domains, 1)
	assert.Equal(t, "commerce", stats.DomainCounts.Domains[0])
	assert.Equal(t, int64(2), stats.DomainCounts.ProductCounts[0])
	require.Len(t, stats.MetricTypeDistribution, 1)
	assert.Equal(t, int64(1), stats.MetricTypeDistribution[0].Value)
	assert.Equal(t, int64(1), stats.CurrentMonthCommentCount)
}

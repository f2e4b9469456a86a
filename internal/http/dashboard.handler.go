package http

import (
	"net/http"
	"time"

	"github.com/datamaphq/datamap/internal/appcontext"
	"github.com/datamaphq/datamap/internal/entity"
	"github.com/gin-gonic/gin"
)

// GetDashboardStatistics aggregates catalog-wide counts for the landing
// dashboard, including month-over-month deltas for comments and
// observations.
func GetDashboardStatistics(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		currentMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		pastMonthStart := currentMonthStart.AddDate(0, -1, 0)

		var totalProductCount int64
		ctx.DB.Model(&entity.DataProduct{}).Count(&totalProductCount)

		var totalNodeCount int64
		ctx.DB.Model(&entity.LineageNode{}).Count(&totalNodeCount)

		var totalDefinitionCount int64
		ctx.DB.Model(&entity.MetricDefinition{}).Count(&totalDefinitionCount)

		var totalObservationCount int64
		ctx.DB.Model(&entity.QualityMetric{}).Count(&totalObservationCount)

		var totalCommentCount int64
		ctx.DB.Model(&entity.Comment{}).Count(&totalCommentCount)

		var domainCountsRaw []struct {
			Domain string
			Count  int64
		}
		ctx.DB.Model(&entity.DataProduct{}).
			Select("domain, COUNT(*) as count").
			Group("domain").
			Scan(&domainCountsRaw)

		domainCountsResponse := struct {
			Domains       []string `json:"domains"`
			ProductCounts []int64  `json:"productCounts"`
		}{}
		for _, item := range domainCountsRaw {
			domainCountsResponse.Domains = append(domainCountsResponse.Domains, item.Domain)
			domainCountsResponse.ProductCounts = append(domainCountsResponse.ProductCounts, item.Count)
		}

		var metricTypeDistributionRaw []struct {
			Type  string
			Count int64
		}
		ctx.DB.Model(&entity.MetricDefinition{}).
			Select("type, COUNT(*) as count").
			Group("type").
			Scan(&metricTypeDistributionRaw)

		metricTypeDistribution := []struct {
			ID    int    `json:"id"`
			Label string `json:"label"`
			Value int64  `json:"value"`
		}{}
		for i, item := range metricTypeDistributionRaw {
			metricTypeDistribution = append(metricTypeDistribution, struct {
				ID    int    `json:"id"`
				Label string `json:"label"`
				Value int64  `json:"value"`
			}{
				ID:    i + 1,
				Label: item.Type,
				Value: item.Count,
			})
		}

		var currentMonthCommentCount int64
		ctx.DB.Model(&entity.Comment{}).Where("created_at >= ?", currentMonthStart).Count(&currentMonthCommentCount)

		var pastMonthCommentCount int64
		ctx.DB.Model(&entity.Comment{}).Where("created_at >= ? AND created_at < ?", pastMonthStart, currentMonthStart).Count(&pastMonthCommentCount)

		var currentMonthObservationCount int64
		ctx.DB.Model(&entity.QualityMetric{}).Where("timestamp >= ?", currentMonthStart).Count(&currentMonthObservationCount)

		var pastMonthObservationCount int64
		ctx.DB.Model(&entity.QualityMetric{}).Where("timestamp >= ? AND timestamp < ?", pastMonthStart, currentMonthStart).Count(&pastMonthObservationCount)

		c.JSON(http.StatusOK, gin.H{
			"totalProductCount":            totalProductCount,
			"totalNodeCount":               totalNodeCount,
			"totalDefinitionCount":         totalDefinitionCount,
			"totalObservationCount":        totalObservationCount,
			"totalCommentCount":            totalCommentCount,
			"domainCounts":                 domainCountsResponse,
			"metricTypeDistribution":       metricTypeDistribution,
			"currentMonthCommentCount":     currentMonthCommentCount,
			"pastMonthCommentCount":        pastMonthCommentCount,
			"currentMonthObservationCount": currentMonthObservationCount,
			"pastMonthObservationCount":    pastMonthObservationCount,
		})
	}
}

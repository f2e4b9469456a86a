package http

import (
	"net/http"
	"testing"

	"github.com/datamaphq/datamap/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stewardshipResponse struct {
	ReputationScore int `json:"reputationScore"`
	Level           int `json:"level"`
	Counts          struct {
		HelpfulComments  int `json:"helpfulComments"`
		Badges           int `json:"badges"`
		ImprovedProducts int `json:"improvedProducts"`
		ManagedProducts  int `json:"managedProducts"`
	} `json:"counts"`
	Badges []struct {
		Type        string `json:"type"`
		Description string `json:"description"`
	} `json:"badges"`
	RecentActivity []struct {
		Content     string `json:"content"`
		ImpactScore int    `json:"impact_score"`
	} `json:"recentActivity"`
}

func TestStewardshipMetricsEmpty(t *testing.T) {
	service, _ := newTestService(t)

	recorder := doRequest(t, service, "GET", "/api/stewardship/metrics", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response stewardshipResponse
	decodeJSON(t, recorder, &response)
	assert.Equal(t, 0, response.ReputationScore)
	assert.Equal(t, 1, response.Level)
	assert.Empty(t, response.Badges)
	assert.Empty(t, response.RecentActivity)
}

func TestStewardshipMetrics(t *testing.T) {
	service, ctx := newTestService(t)
	product := createTestProduct(t, service, "orders_daily", nil)

	// a comment by the current user that someone found helpful
	recorder := doRequest(t, service, "POST", "/api/data-products/"+product.ID.String()+"/comments", gin.H{
		"content": "Documented the SLA.",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	var comment entity.Comment
	decodeJSON(t, recorder, &comment)

	recorder = doRequest(t, service, "POST", "/api/comments/"+comment.ID.String()+"/reactions", gin.H{
		"type": "helpful",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	badge := entity.CommentBadge{CommentID: comment.ID, Type: entity.BadgeTypeQuality}
	require.NoError(t, ctx.DB.Create(&badge).Error)

	// a rising quality series on the owned product
	definition := createTestDefinition(t, service, product.ID, "orders completeness")
	for _, value := range []float64{90.0, 94.0} {
		recorder = doRequest(t, service, "POST", "/api/quality-metrics/"+product.ID.String(), gin.H{
			"metric_definition_id": definition.ID.String(),
			"value":                value,
		})
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	recorder = doRequest(t, service, "GET", "/api/stewardship/metrics", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response stewardshipResponse
	decodeJSON(t, recorder, &response)

	assert.Equal(t, 1, response.Counts.HelpfulComments)
	assert.Equal(t, 1, response.Counts.Badges)
	assert.Equal(t, 1, response.Counts.ImprovedProducts)
	assert.Equal(t, 1, response.Counts.ManagedProducts)

	// 10 + 20 + 15 + 25
	assert.Equal(t, 70, response.ReputationScore)
	assert.Equal(t, 1, response.Level)

	require.Len(t, response.Badges, 1)
	assert.Equal(t, entity.BadgeTypeQuality, response.Badges[0].Type)
	assert.NotEmpty(t, response.Badges[0].Description)

	require.Len(t, response.RecentActivity, 1)
	assert.Equal(t, "Documented the SLA.", response.RecentActivity[0].Content)
	assert.Equal(t, 10, response.RecentActivity[0].ImpactScore)
}

package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/datamaphq/datamap/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDefinition(t *testing.T, service *APIService, productID uuid.UUID, name string) entity.MetricDefinition {
	t.Helper()

	recorder := doRequest(t, service, "POST", "/api/metric-definitions", gin.H{
		"dataProductId": productID.String(),
		"name":          name,
		"type":          entity.MetricTypeCompleteness,
		"query":         "100 * count(non_null_rows) / count(rows)",
		"threshold":     95.0,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var definition entity.MetricDefinition
	decodeJSON(t, recorder, &definition)
	return definition
}

func TestCreateMetricDefinition(t *testing.T) {
	service, _ := newTestService(t)
	product := createTestProduct(t, service, "orders_daily", nil)

	definition := createTestDefinition(t, service, product.ID, "orders completeness")
	assert.Equal(t, product.ID, definition.DataProductID)
	assert.Equal(t, "orders completeness", definition.Name)
	assert.Equal(t, 95.0, definition.Threshold)

	recorder := doRequest(t, service, "GET", "/api/metric-definitions/"+product.ID.String(), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var definitions []entity.MetricDefinition
	decodeJSON(t, recorder, &definitions)
	require.Len(t, definitions, 1)
	assert.Equal(t, definition.ID, definitions[0].ID)
}

func TestCreateMetricDefinitionValidation(t *testing.T) {
	service, _ := newTestService(t)

	recorder := doRequest(t, service, "POST", "/api/metric-definitions", gin.H{
		"name": "incomplete",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doRequest(t, service, "POST", "/api/metric-definitions", gin.H{
		"dataProductId": uuid.NewString(),
		"name":          "orphan",
		"query":         "select 1",
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestRecordAndReadQualityMetrics(t *testing.T) {
	service, _ := newTestService(t)
	product := createTestProduct(t, service, "orders_daily", nil)
	definition := createTestDefinition(t, service, product.ID, "orders completeness")

	for _, value := range []float64{91.0, 93.5} {
		recorder := doRequest(t, service, "POST", "/api/quality-metrics/"+product.ID.String(), gin.H{
			"metric_definition_id": definition.ID.String(),
			"value":                value,
		})
		require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	}

	recorder := doRequest(t, service, "GET", "/api/quality-metrics/"+product.ID.String(), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Current []struct {
			MetricDefinitionID uuid.UUID `json:"metric_definition_id"`
			Value              float64   `json:"value"`
			Threshold          float64   `json:"threshold"`
		} `json:"current"`
		History []struct {
			Name      string    `json:"name"`
			Value     float64   `json:"value"`
			Timestamp time.Time `json:"timestamp"`
		} `json:"history"`
		Definitions []entity.MetricDefinition `json:"definitions"`
	}
	decodeJSON(t, recorder, &response)

	require.Len(t, response.Current, 1)
	assert.Equal(t, definition.ID, response.Current[0].MetricDefinitionID)
	assert.Equal(t, 93.5, response.Current[0].Value)
	assert.Equal(t, 95.0, response.Current[0].Threshold)

	require.Len(t, response.History, 2)
	assert.Equal(t, 91.0, response.History[0].Value)
	assert.Equal(t, 93.5, response.History[1].Value)
	assert.True(t, !response.History[1].Timestamp.Before(response.History[0].Timestamp))
	assert.Equal(t, "orders completeness", response.History[0].Name)

	require.Len(t, response.Definitions, 1)
	assert.Equal(t, "orders completeness", response.Definitions[0].Name)
	assert.Equal(t, definition.Query, response.Definitions[0].Query)
	assert.Equal(t, 95.0, response.Definitions[0].Threshold)
}

func TestQualityMetricsCurrentOutlivesHistoryWindow(t *testing.T) {
	service, ctx := newTestService(t)
	product := createTestProduct(t, service, "orders_daily", nil)
	definition := createTestDefinition(t, service, product.ID, "orders completeness")

	// sole observation predates the 30-day history window
	old := entity.QualityMetric{
		DataProductID:      product.ID,
		MetricDefinitionID: definition.ID,
		Value:              88.0,
		Timestamp:          time.Now().UTC().AddDate(0, 0, -40),
	}
	require.NoError(t, ctx.DB.Create(&old).Error)

	recorder := doRequest(t, service, "GET", "/api/quality-metrics/"+product.ID.String(), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Current []struct {
			MetricDefinitionID uuid.UUID `json:"metric_definition_id"`
			Value              float64   `json:"value"`
		} `json:"current"`
		History []struct {
			Value float64 `json:"value"`
		} `json:"history"`
	}
	decodeJSON(t, recorder, &response)

	// the latest value stays current no matter how old it is
	require.Len(t, response.Current, 1)
	assert.Equal(t, definition.ID, response.Current[0].MetricDefinitionID)
	assert.Equal(t, 88.0, response.Current[0].Value)

	// history stays windowed
	assert.Empty(t, response.History)
}

func TestRecordQualityMetricValidation(t *testing.T) {
	service, _ := newTestService(t)
	product := createTestProduct(t, service, "orders_daily", nil)
	other := createTestProduct(t, service, "web_events", nil)
	definition := createTestDefinition(t, service, product.ID, "orders completeness")

	// value is required even when zero would be meaningful
	recorder := doRequest(t, service, "POST", "/api/quality-metrics/"+product.ID.String(), gin.H{
		"metric_definition_id": definition.ID.String(),
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// definition must belong to the product in the path
	recorder = doRequest(t, service, "POST", "/api/quality-metrics/"+other.ID.String(), gin.H{
		"metric_definition_id": definition.ID.String(),
		"value":                90.0,
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestQualityMetricsUnknownProduct(t *testing.T) {
	service, _ := newTestService(t)

	recorder := doRequest(t, service, "GET", "/api/quality-metrics/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

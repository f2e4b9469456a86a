package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/datamaphq/datamap/internal/appcontext"
	"github.com/datamaphq/datamap/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type currentMetric struct {
	MetricDefinitionID uuid.UUID `json:"metric_definition_id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	Value              float64   `json:"value"`
	Threshold          float64   `json:"threshold"`
	Timestamp          time.Time `json:"timestamp"`
}

type historyPoint struct {
	MetricDefinitionID uuid.UUID `json:"metric_definition_id"`
	Name               string    `json:"name"`
	Value              float64   `json:"value"`
	Timestamp          time.Time `json:"timestamp"`
}

// GetQualityMetrics answers the latest value per definition plus the
// persisted history of the last 30 days, ordered ascending. The latest value
// is taken over all observations regardless of age; only history is
// windowed. History is never synthesized; only recorded observations appear.
func GetQualityMetrics(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data product ID"})
			return
		}

		var product entity.DataProduct
		if err := ctx.DB.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Data product not found"})
				return
			}
			ctx.Logger.Error("Failed to get data product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get data product"})
			return
		}

		var definitions []entity.MetricDefinition
		if err := ctx.DB.Where("data_product_id = ?", productID).Find(&definitions).Error; err != nil {
			ctx.Logger.Error("Failed to get metric definitions", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get metric definitions"})
			return
		}

		var observations []entity.QualityMetric
		if err := ctx.DB.Where("data_product_id = ?", productID).
			Order("timestamp ASC").
			Find(&observations).Error; err != nil {
			ctx.Logger.Error("Failed to get quality observations", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get quality observations"})
			return
		}

		definitionByID := make(map[uuid.UUID]entity.MetricDefinition, len(definitions))
		for _, def := range definitions {
			definitionByID[def.ID] = def
		}

		current := make([]currentMetric, 0, len(definitions))
		latest := make(map[uuid.UUID]entity.QualityMetric)
		for _, obs := range observations {
			latest[obs.MetricDefinitionID] = obs
		}
		for _, def := range definitions {
			obs, ok := latest[def.ID]
			if !ok {
				continue
			}
			current = append(current, currentMetric{
				MetricDefinitionID: def.ID,
				Name:               def.Name,
				Type:               def.Type,
				Value:              obs.Value,
				Threshold:          def.Threshold,
				Timestamp:          obs.Timestamp,
			})
		}

		since := time.Now().UTC().AddDate(0, 0, -30)
		history := make([]historyPoint, 0, len(observations))
		for _, obs := range observations {
			if obs.Timestamp.Before(since) {
				continue
			}
			point := historyPoint{
				MetricDefinitionID: obs.MetricDefinitionID,
				Value:              obs.Value,
				Timestamp:          obs.Timestamp,
			}
			if def, ok := definitionByID[obs.MetricDefinitionID]; ok {
				point.Name = def.Name
			}
			history = append(history, point)
		}

		c.JSON(http.StatusOK, gin.H{
			"current":     current,
			"history":     history,
			"definitions": definitions,
		})
	}
}

func RecordQualityMetric(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data product ID"})
			return
		}

		type recordMetricRequest struct {
			MetricDefinitionID string   `json:"metric_definition_id" binding:"required"`
			Value              *float64 `json:"value" binding:"required"`
		}

		var request recordMetricRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing metric_definition_id or value"})
			return
		}

		definitionID, err := uuid.Parse(request.MetricDefinitionID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid metric definition ID"})
			return
		}

		var definition entity.MetricDefinition
		if err := ctx.DB.Where("id = ? AND data_product_id = ?", definitionID, productID).First(&definition).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Metric definition not found"})
			return
		}

		observation := entity.QualityMetric{
			DataProductID:      productID,
			MetricDefinitionID: definitionID,
			Value:              *request.Value,
			Timestamp:          time.Now().UTC(),
		}

		if err := ctx.DB.Create(&observation).Error; err != nil {
			ctx.Logger.Error("Failed to record quality observation", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record quality observation"})
			return
		}

		c.JSON(http.StatusCreated, observation)
	}
}

func CreateMetricDefinition(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createDefinitionRequest struct {
			DataProductID string  `json:"dataProductId"`
			Name          string  `json:"name"`
			Type          string  `json:"type"`
			Query         string  `json:"query"`
			Threshold     float64 `json:"threshold"`
			TemplateID    string  `json:"template_id"`
		}

		var request createDefinitionRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		if request.DataProductID == "" || request.Name == "" || request.Query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dataProductId, name and query are required"})
			return
		}

		productID, err := uuid.Parse(request.DataProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data product ID"})
			return
		}

		var product entity.DataProduct
		if err := ctx.DB.First(&product, "id = ?", productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Data product not found"})
			return
		}

		definition := entity.MetricDefinition{
			DataProductID: productID,
			Name:          request.Name,
			Type:          request.Type,
			Query:         request.Query,
			Threshold:     request.Threshold,
		}

		if request.TemplateID != "" {
			templateID, err := uuid.Parse(request.TemplateID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
				return
			}
			var template entity.MetricTemplate
			if err := ctx.DB.First(&template, "id = ?", templateID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Metric template not found"})
				return
			}
			definition.TemplateID = &template.ID
			if definition.Type == "" {
				definition.Type = template.Type
			}
		}

		if err := ctx.DB.Create(&definition).Error; err != nil {
			ctx.Logger.Error("Failed to create metric definition", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create metric definition"})
			return
		}

		c.JSON(http.StatusCreated, definition)
	}
}

func GetMetricDefinitions(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data product ID"})
			return
		}

		var definitions []entity.MetricDefinition
		if err := ctx.DB.Where("data_product_id = ?", productID).Order("created_at").Find(&definitions).Error; err != nil {
			ctx.Logger.Error("Failed to get metric definitions", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get metric definitions"})
			return
		}

		c.JSON(http.StatusOK, definitions)
	}
}

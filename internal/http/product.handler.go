package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/datamaphq/datamap/internal/appcontext"
	"github.com/datamaphq/datamap/internal/entity"
	"github.com/datamaphq/datamap/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func GetDataProducts(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []entity.DataProduct
		if err := ctx.DB.Preload("Columns").Order("name").Find(&products).Error; err != nil {
			ctx.Logger.Error("Failed to list data products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list data products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

func GetDataProductMetadata(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data product ID"})
			return
		}

		var product entity.DataProduct
		if err := ctx.DB.Preload("Columns").First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Data product not found"})
				return
			}
			ctx.Logger.Error("Failed to get data product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get data product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

func CreateDataProduct(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createProductRequest struct {
			Name            string   `json:"name" binding:"required"`
			Description     string   `json:"description"`
			Domain          string   `json:"domain"`
			Tags            []string `json:"tags"`
			SLA             string   `json:"sla"`
			UpdateFrequency string   `json:"update_frequency"`
			WarehouseTable  string   `json:"warehouse_table"`
		}

		var request createProductRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: name"})
			return
		}

		user, err := utils.CurrentUser(ctx, c)
		if err != nil {
			ctx.Logger.Error("Failed to resolve current user", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		tags, err := tagsToJSON(request.Tags)
		if err != nil {
			ctx.Logger.Error("Failed to encode tags", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode tags"})
			return
		}

		product := entity.DataProduct{
			Name:            request.Name,
			Description:     request.Description,
			Owner:           user.Name,
			OwnerID:         &user.ID,
			Domain:          request.Domain,
			Tags:            tags,
			SLA:             request.SLA,
			UpdateFrequency: request.UpdateFrequency,
			WarehouseTable:  request.WarehouseTable,
		}

		if err := ctx.DB.Create(&product).Error; err != nil {
			ctx.Logger.Error("Failed to create data product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create data product"})
			return
		}

		if err := utils.IndexProduct(ctx, &product); err != nil {
			ctx.Logger.Warn("Failed to index data product", zap.Error(err))
		}

		c.JSON(http.StatusCreated, product)
	}
}

func UpdateDataProduct(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data product ID"})
			return
		}

		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if !utils.UserManagesProduct(ctx, userID, productID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "User does not manage this data product"})
			return
		}

		type updateProductRequest struct {
			Description     *string  `json:"description"`
			Domain          *string  `json:"domain"`
			Tags            []string `json:"tags"`
			SLA             *string  `json:"sla"`
			UpdateFrequency *string  `json:"update_frequency"`
			WarehouseTable  *string  `json:"warehouse_table"`
		}

		var request updateProductRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		updates := map[string]interface{}{}
		if request.Description != nil {
			updates["description"] = *request.Description
		}
		if request.Domain != nil {
			updates["domain"] = *request.Domain
		}
		if request.Tags != nil {
			tags, err := tagsToJSON(request.Tags)
			if err != nil {
				ctx.Logger.Error("Failed to encode tags", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode tags"})
				return
			}
			updates["tags"] = tags
		}
		if request.SLA != nil {
			updates["sla"] = *request.SLA
		}
		if request.UpdateFrequency != nil {
			updates["update_frequency"] = *request.UpdateFrequency
		}
		if request.WarehouseTable != nil {
			updates["warehouse_table"] = *request.WarehouseTable
		}

		var product entity.DataProduct
		if err := ctx.DB.First(&product, "id = ?", productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Data product not found"})
			return
		}

		if len(updates) > 0 {
			if err := ctx.DB.Model(&product).Updates(updates).Error; err != nil {
				ctx.Logger.Error("Failed to update data product", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update data product"})
				return
			}
		}

		if err := utils.IndexProduct(ctx, &product); err != nil {
			ctx.Logger.Warn("Failed to reindex data product", zap.Error(err))
		}

		c.JSON(http.StatusOK, product)
	}
}

func tagsToJSON(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

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

func GetLineage(ctx *appcontext.Context) gin.HandlerFunc {
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

		var nodes []entity.LineageNode
		if err := ctx.DB.Where("data_product_id = ?", productID).Order("created_at").Find(&nodes).Error; err != nil {
			ctx.Logger.Error("Failed to get lineage nodes", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get lineage nodes"})
			return
		}

		var edges []entity.LineageEdge
		if err := ctx.DB.Where("data_product_id = ?", productID).Order("created_at").Find(&edges).Error; err != nil {
			ctx.Logger.Error("Failed to get lineage edges", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get lineage edges"})
			return
		}

		c.JSON(http.StatusOK, utils.BuildGraphView(nodes, edges))
	}
}

// SaveLineage replaces the product graph and appends a LineageVersion row
// holding the full snapshot. The version counter is monotonic per product.
func SaveLineage(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data product ID"})
			return
		}

		user, err := utils.CurrentUser(ctx, c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		type nodeRequest struct {
			Type    string                 `json:"type" binding:"required"`
			Label   string                 `json:"label"`
			Details map[string]interface{} `json:"details"`
			Ref     string                 `json:"ref"`
		}
		type edgeRequest struct {
			Source              string `json:"source" binding:"required"`
			Target              string `json:"target" binding:"required"`
			TransformationLogic string `json:"transformation_logic"`
		}
		type saveLineageRequest struct {
			Nodes         []nodeRequest `json:"nodes" binding:"required"`
			Edges         []edgeRequest `json:"edges"`
			ChangeMessage string        `json:"change_message"`
		}

		var request saveLineageRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		var product entity.DataProduct
		if err := ctx.DB.First(&product, "id = ?", productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Data product not found"})
			return
		}

		nodes := make([]entity.LineageNode, 0, len(request.Nodes))
		nodeByRef := make(map[string]uuid.UUID)
		for _, n := range request.Nodes {
			var details datatypes.JSON
			if n.Details != nil {
				raw, err := json.Marshal(n.Details)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid node details"})
					return
				}
				details = datatypes.JSON(raw)
			}
			node := entity.LineageNode{
				ID:            uuid.New(),
				DataProductID: productID,
				Type:          n.Type,
				Label:         n.Label,
				Details:       details,
			}
			nodes = append(nodes, node)
			if n.Ref != "" {
				nodeByRef[n.Ref] = node.ID
			}
		}

		edges := make([]entity.LineageEdge, 0, len(request.Edges))
		for _, e := range request.Edges {
			sourceID, ok := nodeByRef[e.Source]
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Edge references unknown source node"})
				return
			}
			targetID, ok := nodeByRef[e.Target]
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Edge references unknown target node"})
				return
			}
			edges = append(edges, entity.LineageEdge{
				ID:                  uuid.New(),
				DataProductID:       productID,
				SourceID:            sourceID,
				TargetID:            targetID,
				TransformationLogic: e.TransformationLogic,
			})
		}

		err = ctx.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Unscoped().Where("data_product_id = ?", productID).Delete(&entity.LineageEdge{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("data_product_id = ?", productID).Delete(&entity.LineageNode{}).Error; err != nil {
				return err
			}
			if len(nodes) > 0 {
				if err := tx.Create(&nodes).Error; err != nil {
					return err
				}
			}
			if len(edges) > 0 {
				if err := tx.Create(&edges).Error; err != nil {
					return err
				}
			}

			var lastVersion int
			if err := tx.Model(&entity.LineageVersion{}).
				Where("data_product_id = ?", productID).
				Select("COALESCE(MAX(version), 0)").
				Scan(&lastVersion).Error; err != nil {
				return err
			}

			snapshot, err := json.Marshal(utils.BuildGraphView(nodes, edges))
			if err != nil {
				return err
			}

			version := entity.LineageVersion{
				DataProductID: productID,
				Version:       lastVersion + 1,
				Snapshot:      datatypes.JSON(snapshot),
				ChangeMessage: request.ChangeMessage,
				CreatedBy:     user.Name,
			}
			return tx.Create(&version).Error
		})
		if err != nil {
			ctx.Logger.Error("Failed to save lineage", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save lineage"})
			return
		}

		c.JSON(http.StatusOK, utils.BuildGraphView(nodes, edges))
	}
}

func GetLineageVersions(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data product ID"})
			return
		}

		var versions []entity.LineageVersion
		if err := ctx.DB.Where("data_product_id = ?", productID).Order("version DESC").Find(&versions).Error; err != nil {
			ctx.Logger.Error("Failed to get lineage versions", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get lineage versions"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"versions": versions})
	}
}

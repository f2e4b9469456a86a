package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"cloud.google.com/go/bigquery"
	"github.com/datamaphq/datamap/internal/appcontext"
	"github.com/datamaphq/datamap/internal/entity"
	"github.com/datamaphq/datamap/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

type ServiceAccountKey struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
}

// ImportWarehouseSchema refreshes a product's declared schema from its
// warehouse table. The column set is replaced in one transaction and every
// difference is appended to the schema-change audit.
func ImportWarehouseSchema(ctx *appcontext.Context) gin.HandlerFunc {
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

		var product entity.DataProduct
		if err := ctx.DB.First(&product, "id = ?", productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Data product not found"})
			return
		}

		if product.WarehouseTable == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Data product has no warehouse table configured"})
			return
		}
		parts := strings.SplitN(product.WarehouseTable, ".", 2)
		if len(parts) != 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Warehouse table must be in dataset.table form"})
			return
		}

		if ctx.GCSClient == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Key file storage is not configured"})
			return
		}

		rc, err := ctx.GCSClient.Bucket(ctx.GCSBucketName).Object(productID.String() + "/sa_key").NewReader(context.Background())
		if err != nil {
			ctx.Logger.Error("Failed to fetch key file from GCS", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch key file from GCS"})
			return
		}
		defer rc.Close()

		keyFileBytes, err := io.ReadAll(rc)
		if err != nil {
			ctx.Logger.Error("Failed to read key file from GCS", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read key file from GCS"})
			return
		}

		var key ServiceAccountKey
		if err := json.Unmarshal(keyFileBytes, &key); err != nil {
			ctx.Logger.Error("Failed to unmarshal key file", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unmarshal key file"})
			return
		}

		conf, err := google.JWTConfigFromJSON(keyFileBytes, bigquery.Scope)
		if err != nil {
			ctx.Logger.Error("Failed to parse key file", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse key file"})
			return
		}

		client, err := bigquery.NewClient(context.Background(), key.ProjectID, option.WithTokenSource(conf.TokenSource(context.Background())))
		if err != nil {
			ctx.Logger.Error("Failed to create BigQuery client", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create BigQuery client"})
			return
		}
		defer client.Close()

		meta, err := client.Dataset(parts[0]).Table(parts[1]).Metadata(context.Background())
		if err != nil {
			ctx.Logger.Error("Failed to fetch table metadata", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch table metadata"})
			return
		}

		newColumns := make([]entity.SchemaColumn, 0, len(meta.Schema))
		for _, field := range meta.Schema {
			newColumns = append(newColumns, entity.SchemaColumn{
				DataProductID: productID,
				Name:          field.Name,
				Type:          string(field.Type),
				Description:   field.Description,
			})
		}

		var oldColumns []entity.SchemaColumn
		if err := ctx.DB.Where("data_product_id = ?", productID).Find(&oldColumns).Error; err != nil {
			ctx.Logger.Error("Failed to fetch current columns", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch current columns"})
			return
		}

		err = ctx.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Unscoped().Where("data_product_id = ?", productID).Delete(&entity.SchemaColumn{}).Error; err != nil {
				return err
			}
			if len(newColumns) > 0 {
				if err := tx.Create(&newColumns).Error; err != nil {
					return err
				}
			}
			return utils.RecordSchemaChanges(tx, productID, oldColumns, newColumns)
		})
		if err != nil {
			ctx.Logger.Error("Failed to store imported schema", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store imported schema"})
			return
		}

		if err := utils.IndexProduct(ctx, &product); err != nil {
			ctx.Logger.Warn("Failed to reindex data product", zap.Error(err))
		}

		c.JSON(http.StatusOK, gin.H{"message": "Schema imported successfully", "columns": newColumns})
	}
}

func GetSchemaChanges(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data product ID"})
			return
		}

		var changes []entity.SchemaChange
		if err := ctx.DB.Where("data_product_id = ?", productID).Order("created_at DESC").Find(&changes).Error; err != nil {
			ctx.Logger.Error("Failed to get schema changes", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get schema changes"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"changes": changes})
	}
}

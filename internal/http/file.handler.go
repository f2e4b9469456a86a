package http

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/datamaphq/datamap/internal/appcontext"
	"github.com/datamaphq/datamap/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadWarehouseKey stores the service-account key file for a product's
// warehouse table in GCS at <productID>/sa_key. The schema import reads it
// back from the same object path.
func UploadWarehouseKey(ctx *appcontext.Context) gin.HandlerFunc {
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

		if ctx.GCSClient == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Key file storage is not configured"})
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to get file from request"})
			return
		}

		if !isJSONFile(file) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type, only JSON files are allowed"})
			return
		}

		src, err := file.Open()
		if err != nil {
			ctx.Logger.Error("Failed to open file", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
			return
		}
		defer src.Close()

		objectPath := productID.String() + "/sa_key"

		w := ctx.GCSClient.Bucket(ctx.GCSBucketName).Object(objectPath).NewWriter(context.Background())

		if _, err := io.Copy(w, src); err != nil {
			ctx.Logger.Error("Failed to upload file to GCS", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file to GCS"})
			return
		}

		if err := w.Close(); err != nil {
			ctx.Logger.Error("Failed to close GCS writer", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close GCS writer"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Key file uploaded successfully"})
	}
}

func isJSONFile(file *multipart.FileHeader) bool {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".json" {
		return false
	}

	mimeType := file.Header.Get("Content-Type")
	return mimeType == "application/json" || mimeType == "application/octet-stream"
}

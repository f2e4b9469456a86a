package http

import (
	"net/http"

	"github.com/datamaphq/datamap/internal/appcontext"
	"github.com/datamaphq/datamap/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

// SearchDataProducts answers a case-insensitive substring match on product
// name and tags. When a Meilisearch index is configured it serves the query;
// otherwise the filter runs directly against the database.
func SearchDataProducts(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search query"})
			return
		}

		if ctx.MeilisearchClient != nil {
			searchResult, err := ctx.MeilisearchClient.Index("products").Search(query, &meilisearch.SearchRequest{})
			if err != nil {
				ctx.Logger.Error("Failed to perform search", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to perform search"})
				return
			}
			c.JSON(http.StatusOK, searchResult.Hits)
			return
		}

		pattern := "%" + query + "%"
		var products []entity.DataProduct
		if err := ctx.DB.Preload("Columns").
			Where("LOWER(name) LIKE LOWER(?) OR LOWER(CAST(tags AS TEXT)) LIKE LOWER(?)", pattern, pattern).
			Order("name").
			Find(&products).Error; err != nil {
			ctx.Logger.Error("Failed to search data products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search data products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

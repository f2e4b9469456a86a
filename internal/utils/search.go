package utils

import (
	"encoding/json"
	"fmt"

	"github.com/datamaphq/datamap/internal/appcontext"
	"github.com/datamaphq/datamap/internal/entity"
)

func ProductToDocument(product *entity.DataProduct) map[string]interface{} {
	var tags []string
	if len(product.Tags) > 0 {
		_ = json.Unmarshal(product.Tags, &tags)
	}

	return map[string]interface{}{
		"id":          product.ID.String(),
		"name":        product.Name,
		"description": product.Description,
		"domain":      product.Domain,
		"owner":       product.Owner,
		"tags":        tags,
	}
}

// IndexProduct pushes the product document into the search index. A nil
// Meilisearch client is a no-op.
func IndexProduct(ctx *appcontext.Context, product *entity.DataProduct) error {
	if ctx.MeilisearchClient == nil {
		return nil
	}

	document := ProductToDocument(product)
	if _, err := ctx.MeilisearchClient.Index("products").AddDocuments([]map[string]interface{}{document}); err != nil {
		return fmt.Errorf("failed to index product: %w", err)
	}
	return nil
}

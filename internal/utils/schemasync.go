package utils

import (
	"github.com/datamaphq/datamap/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecordSchemaChanges diffs the column sets of a product before and after a
// warehouse import and appends one SchemaChange row per difference. Columns
// are keyed by name; the unique index on (data_product_id, name) makes the
// name a stable identity within a product.
func RecordSchemaChanges(db *gorm.DB, productID uuid.UUID, oldColumns, newColumns []entity.SchemaColumn) error {
	oldByName := make(map[string]entity.SchemaColumn)
	newByName := make(map[string]entity.SchemaColumn)
	for _, col := range oldColumns {
		oldByName[col.Name] = col
	}
	for _, col := range newColumns {
		newByName[col.Name] = col
	}

	var changes []entity.SchemaChange

	for name, newCol := range newByName {
		oldCol, exists := oldByName[name]
		if !exists {
			changes = append(changes, entity.SchemaChange{
				DataProductID: productID,
				ChangeType:    "insert",
				ColumnName:    name,
				NewValue:      newCol.Type,
			})
			continue
		}
		if oldCol.Type != newCol.Type {
			changes = append(changes, entity.SchemaChange{
				DataProductID: productID,
				ChangeType:    "update",
				ColumnName:    name,
				FieldName:     "type",
				OldValue:      oldCol.Type,
				NewValue:      newCol.Type,
			})
		}
		if oldCol.Description != newCol.Description {
			changes = append(changes, entity.SchemaChange{
				DataProductID: productID,
				ChangeType:    "update",
				ColumnName:    name,
				FieldName:     "description",
				OldValue:      oldCol.Description,
				NewValue:      newCol.Description,
			})
		}
	}

	for name, oldCol := range oldByName {
		if _, exists := newByName[name]; !exists {
			changes = append(changes, entity.SchemaChange{
				DataProductID: productID,
				ChangeType:    "delete",
				ColumnName:    name,
				OldValue:      oldCol.Type,
			})
		}
	}

	if len(changes) == 0 {
		return nil
	}
	return db.Create(&changes).Error
}

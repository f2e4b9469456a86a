package utils

import (
	"fmt"
	"testing"

	"github.com/datamaphq/datamap/internal/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSchemaChangeDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.SchemaChange{}))
	return db
}

func TestRecordSchemaChanges(t *testing.T) {
	db := newSchemaChangeDB(t)
	productID := uuid.New()

	oldColumns := []entity.SchemaColumn{
		{Name: "order_id", Type: "STRING"},
		{Name: "amount", Type: "INTEGER", Description: "gross amount"},
		{Name: "legacy_flag", Type: "BOOLEAN"},
	}
	newColumns := []entity.SchemaColumn{
		{Name: "order_id", Type: "STRING"},
		{Name: "amount", Type: "NUMERIC", Description: "gross amount"},
		{Name: "created_at", Type: "TIMESTAMP"},
	}

	require.NoError(t, RecordSchemaChanges(db, productID, oldColumns, newColumns))

	var changes []entity.SchemaChange
	require.NoError(t, db.Where("data_product_id = ?", productID).Find(&changes).Error)
	require.Len(t, changes, 3)

	byColumn := make(map[string]entity.SchemaChange)
	for _, change := range changes {
		byColumn[change.ColumnName] = change
	}

	assert.Equal(t, "insert", byColumn["created_at"].ChangeType)
	assert.Equal(t, "TIMESTAMP", byColumn["created_at"].NewValue)

	assert.Equal(t, "update", byColumn["amount"].ChangeType)
	assert.Equal(t, "type", byColumn["amount"].FieldName)
	assert.Equal(t, "INTEGER", byColumn["amount"].OldValue)
	assert.Equal(t, "NUMERIC", byColumn["amount"].NewValue)

	assert.Equal(t, "delete", byColumn["legacy_flag"].ChangeType)
	assert.Equal(t, "BOOLEAN", byColumn["legacy_flag"].OldValue)
}

func TestRecordSchemaChangesNoDiff(t *testing.T) {
	db := newSchemaChangeDB(t)
	productID := uuid.New()

	columns := []entity.SchemaColumn{{Name: "order_id", Type: "STRING"}}
	require.NoError(t, RecordSchemaChanges(db, productID, columns, columns))

	var count int64
	require.NoError(t, db.Model(&entity.SchemaChange{}).Count(&count).Error)
	assert.Zero(t, count)
}

package utils

import (
	"testing"

	"github.com/datamaphq/datamap/internal/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGraphViewEmpty(t *testing.T) {
	view := BuildGraphView(nil, nil)
	assert.NotNil(t, view.Nodes)
	assert.NotNil(t, view.Links)
	assert.Empty(t, view.Nodes)
	assert.Empty(t, view.Links)
}

func TestBuildGraphView(t *testing.T) {
	productID := uuid.New()
	source := entity.LineageNode{ID: uuid.New(), DataProductID: productID, Type: entity.NodeTypeSource, Label: "raw"}
	target := entity.LineageNode{ID: uuid.New(), DataProductID: productID, Type: entity.NodeTypeTarget, Label: "mart"}
	edge := entity.LineageEdge{ID: uuid.New(), DataProductID: productID, SourceID: source.ID, TargetID: target.ID}

	view := BuildGraphView([]entity.LineageNode{source, target}, []entity.LineageEdge{edge})

	require.Len(t, view.Nodes, 2)
	assert.Equal(t, source.ID.String(), view.Nodes[0].ID)
	assert.Equal(t, entity.NodeTypeSource, view.Nodes[0].Type)
	assert.Equal(t, "raw", view.Nodes[0].Label)

	require.Len(t, view.Links, 1)
	assert.Equal(t, source.ID.String(), view.Links[0].Source)
	assert.Equal(t, target.ID.String(), view.Links[0].Target)
}

func TestDefaultLineageChain(t *testing.T) {
	product := entity.DataProduct{ID: uuid.New(), Name: "orders_daily"}
	nodes, edges := DefaultLineageChain(product)

	require.Len(t, nodes, 3)
	require.Len(t, edges, 2)

	assert.Equal(t, entity.NodeTypeSource, nodes[0].Type)
	assert.Equal(t, entity.NodeTypeTransformation, nodes[1].Type)
	assert.Equal(t, entity.NodeTypeTarget, nodes[2].Type)
	assert.Equal(t, "orders_daily", nodes[2].Label)

	for _, node := range nodes {
		assert.Equal(t, product.ID, node.DataProductID)
		assert.NotEqual(t, uuid.Nil, node.ID)
	}

	// source -> transformation -> target
	assert.Equal(t, nodes[0].ID, edges[0].SourceID)
	assert.Equal(t, nodes[1].ID, edges[0].TargetID)
	assert.Equal(t, nodes[1].ID, edges[1].SourceID)
	assert.Equal(t, nodes[2].ID, edges[1].TargetID)
	for _, edge := range edges {
		assert.Equal(t, product.ID, edge.DataProductID)
	}
}

package utils

import (
	"github.com/datamaphq/datamap/internal/entity"
	"github.com/google/uuid"
)

type GraphNode struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type GraphView struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// BuildGraphView renders node and edge rows into the transport shape, with
// ids coerced to strings. Edges keep storage order; there is no cycle
// detection or topological guarantee.
func BuildGraphView(nodes []entity.LineageNode, edges []entity.LineageEdge) GraphView {
	view := GraphView{
		Nodes: make([]GraphNode, 0, len(nodes)),
		Links: make([]GraphLink, 0, len(edges)),
	}

	for _, node := range nodes {
		view.Nodes = append(view.Nodes, GraphNode{
			ID:    node.ID.String(),
			Type:  node.Type,
			Label: node.Label,
		})
	}
	for _, edge := range edges {
		view.Links = append(view.Links, GraphLink{
			Source: edge.SourceID.String(),
			Target: edge.TargetID.String(),
		})
	}

	return view
}

// DefaultLineageChain builds the demo 3-node chain for a product:
// source -> transformation -> target with two edges. Used by the
// provisioning step, never by read handlers.
func DefaultLineageChain(product entity.DataProduct) ([]entity.LineageNode, []entity.LineageEdge) {
	source := entity.LineageNode{
		ID:            uuid.New(),
		DataProductID: product.ID,
		Type:          entity.NodeTypeSource,
		Label:         product.Name + " source",
	}
	transformation := entity.LineageNode{
		ID:            uuid.New(),
		DataProductID: product.ID,
		Type:          entity.NodeTypeTransformation,
		Label:         product.Name + " transformation",
	}
	target := entity.LineageNode{
		ID:            uuid.New(),
		DataProductID: product.ID,
		Type:          entity.NodeTypeTarget,
		Label:         product.Name,
	}

	edges := []entity.LineageEdge{
		{
			ID:            uuid.New(),
			DataProductID: product.ID,
			SourceID:      source.ID,
			TargetID:      transformation.ID,
		},
		{
			ID:            uuid.New(),
			DataProductID: product.ID,
			SourceID:      transformation.ID,
			TargetID:      target.ID,
		},
	}

	return []entity.LineageNode{source, transformation, target}, edges
}

// Package report renders a netgraph.Graph into the canonical trace_results
// JSON document (component E), in either the columnar "plain" layout or
// the per-node-object "object" layout the annotation pass round-trips.
package report

import (
	"encoding/json"
	"fmt"

	"clustrace/internal/netgraph"
)

// Format selects the output layout.
type Format int

const (
	Plain Format = iota
	Object
)

// ParseFormat maps a CLI/host-supplied string to a Format. The empty
// string defaults to Plain.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "plain":
		return Plain, nil
	case "object":
		return Object, nil
	default:
		return 0, fmt.Errorf("unknown format %q (want %q or %q)", s, "plain", "object")
	}
}

type networkSummary struct {
	Nodes    int `json:"Nodes"`
	Edges    int `json:"Edges"`
	Clusters int `json:"Clusters"`
}

type settings struct {
	Threshold float64 `json:"threshold"`
}

type edgeDoc struct {
	Source   int     `json:"source"`
	Target   int     `json:"target"`
	Distance float64 `json:"distance"`
}

// plainNodes is the columnar Nodes layout. Cluster has no omitempty: a
// singleton is emitted as an explicit null, not an absent element, since
// arrays must stay index-aligned with id.
type plainNodes struct {
	ID      []string `json:"id"`
	Cluster []*int   `json:"cluster"`
}

type plainBody struct {
	NetworkSummary networkSummary `json:"Network Summary"`
	ClusterSizes   []int          `json:"Cluster sizes"`
	Nodes          plainNodes     `json:"Nodes"`
	Edges          []edgeDoc      `json:"Edges"`
	Settings       settings       `json:"Settings"`
}

type plainDoc struct {
	TraceResults plainBody `json:"trace_results"`
}

// objectNode is the per-node-object layout. Cluster uses omitempty: a
// singleton's node object simply omits the key.
type objectNode struct {
	ID      string `json:"id"`
	Cluster *int   `json:"cluster,omitempty"`
}

type objectBody struct {
	NetworkSummary networkSummary `json:"Network Summary"`
	ClusterSizes   []int          `json:"Cluster sizes"`
	Nodes          []objectNode   `json:"Nodes"`
	Edges          []edgeDoc      `json:"Edges"`
	Settings       settings       `json:"Settings"`
}

type objectDoc struct {
	TraceResults objectBody `json:"trace_results"`
}

// Render serializes g as the canonical trace_results document in the
// requested layout.
func Render(g *netgraph.Graph, format Format) (string, error) {
	sizes := g.ClusterSizes()
	summary := networkSummary{
		Nodes:    g.NodeCount(),
		Edges:    g.EdgeCount(),
		Clusters: len(sizes),
	}
	edges := edgeDocs(g)
	sett := settings{Threshold: g.Threshold()}

	var out any
	switch format {
	case Object:
		nodes := make([]objectNode, g.NodeCount())
		for _, n := range g.Nodes() {
			nodes[n.Index] = objectNode{ID: n.ID, Cluster: clusterPtr(n.Cluster)}
		}
		out = objectDoc{TraceResults: objectBody{
			NetworkSummary: summary,
			ClusterSizes:   sizes,
			Nodes:          nodes,
			Edges:          edges,
			Settings:       sett,
		}}
	default:
		ids := make([]string, g.NodeCount())
		clusters := make([]*int, g.NodeCount())
		for _, n := range g.Nodes() {
			ids[n.Index] = n.ID
			clusters[n.Index] = clusterPtr(n.Cluster)
		}
		out = plainDoc{TraceResults: plainBody{
			NetworkSummary: summary,
			ClusterSizes:   sizes,
			Nodes:          plainNodes{ID: ids, Cluster: clusters},
			Edges:          edges,
			Settings:       sett,
		}}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("rendering network document: %w", err)
	}
	return string(data), nil
}

func edgeDocs(g *netgraph.Graph) []edgeDoc {
	src := g.Edges()
	out := make([]edgeDoc, len(src))
	for i, e := range src {
		out[i] = edgeDoc{Source: e.Source, Target: e.Target, Distance: e.Distance}
	}
	return out
}

// clusterPtr returns nil for an unlabelled (singleton) node, or a pointer
// to its label otherwise.
func clusterPtr(cluster int) *int {
	if cluster == 0 {
		return nil
	}
	c := cluster
	return &c
}

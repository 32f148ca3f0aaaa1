package netgraph

import "testing"

func buildGraph(t *testing.T, threshold float64, pairs [][3]any) *Graph {
	t.Helper()
	g, err := New(threshold)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, p := range pairs {
		ia, err := g.Intern(p[0].(string))
		if err != nil {
			t.Fatalf("Intern(%v): %v", p[0], err)
		}
		ib, err := g.Intern(p[1].(string))
		if err != nil {
			t.Fatalf("Intern(%v): %v", p[1], err)
		}
		g.AddEdge(ia, ib, p[2].(float64))
	}
	g.Freeze()
	return g
}

func TestNewRejectsInvalidThreshold(t *testing.T) {
	tests := []float64{-1, -0.0001}
	for _, th := range tests {
		if _, err := New(th); err == nil {
			t.Errorf("New(%v): expected error, got nil", th)
		}
	}
}

func TestAddEdgeNormalizesOrientation(t *testing.T) {
	g, _ := New(1.0)
	ib, _ := g.Intern("B")
	ia, _ := g.Intern("A")
	g.AddEdge(ib, ia, 0.1)
	g.Freeze()

	if got := g.EdgeCount(); got != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", got)
	}
	e := g.Edges()[0]
	if e.Source >= e.Target {
		t.Errorf("edge not normalized: source=%d target=%d", e.Source, e.Target)
	}
}

func TestAddEdgeDedupKeepsMinimumDistance(t *testing.T) {
	g, _ := New(1.0)
	a, _ := g.Intern("A")
	b, _ := g.Intern("B")
	g.AddEdge(a, b, 0.02)
	g.AddEdge(b, a, 0.01)
	g.Freeze()

	if got := g.EdgeCount(); got != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", got)
	}
	if got := g.Edges()[0].Distance; got != 0.01 {
		t.Errorf("Distance = %v, want 0.01", got)
	}
}

func TestAddEdgeDedupTieKeepsFirstSeen(t *testing.T) {
	g, _ := New(1.0)
	a, _ := g.Intern("A")
	b, _ := g.Intern("B")
	g.AddEdge(a, b, 0.01)
	g.AddEdge(a, b, 0.01)
	g.Freeze()

	if got := g.EdgeCount(); got != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", got)
	}
}

func TestClusterLabelling(t *testing.T) {
	// A-B-C-D chain/diamond, E-F pair, G-H pair, mirrors spec scenario 1.
	g := buildGraph(t, 0.03, [][3]any{
		{"A", "B", 0.01},
		{"A", "C", 0.02},
		{"B", "D", 0.015},
		{"C", "D", 0.01},
		{"E", "F", 0.025},
		{"G", "H", 0.01},
	})

	if got := g.NodeCount(); got != 8 {
		t.Fatalf("NodeCount() = %d, want 8", got)
	}
	if got := g.EdgeCount(); got != 6 {
		t.Fatalf("EdgeCount() = %d, want 6", got)
	}
	if got := g.ClusterCount(); got != 3 {
		t.Fatalf("ClusterCount() = %d, want 3", got)
	}
	sizes := g.ClusterSizes()
	want := []int{4, 2, 2}
	if len(sizes) != len(want) {
		t.Fatalf("ClusterSizes() = %v, want %v", sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("ClusterSizes()[%d] = %d, want %d", i, sizes[i], want[i])
		}
	}
}

func TestSingletonsGetNoClusterLabel(t *testing.T) {
	g, _ := New(1.0)
	lone, _ := g.Intern("LONELY")
	a, _ := g.Intern("A")
	b, _ := g.Intern("B")
	g.AddEdge(a, b, 0.1)
	g.Freeze()

	if got := g.Cluster(lone); got != 0 {
		t.Errorf("Cluster(lone) = %d, want 0", got)
	}
	if got := g.Cluster(a); got == 0 {
		t.Errorf("Cluster(a) = 0, want a nonzero label")
	}
}

func TestNeighborsAreSorted(t *testing.T) {
	g, _ := New(1.0)
	a, _ := g.Intern("A")
	c, _ := g.Intern("C")
	b, _ := g.Intern("B")
	g.AddEdge(a, c, 0.1)
	g.AddEdge(a, b, 0.1)
	g.Freeze()

	neighbors := g.Neighbors(a)
	for i := 1; i < len(neighbors); i++ {
		if neighbors[i-1] > neighbors[i] {
			t.Errorf("Neighbors(a) = %v, not sorted", neighbors)
		}
	}
}

func TestAddEdgeSelfLoopPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on self-loop AddEdge")
		}
	}()
	g, _ := New(1.0)
	a, _ := g.Intern("A")
	g.AddEdge(a, a, 0.1)
}

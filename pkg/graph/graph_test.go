package graph_test

import (
	"testing"

	"github.com/storageproofs/sdr-porep/pkg/graph"
)

func TestBaseParentsBelowNodeAndNoSelfReference(t *testing.T) {
	g := graph.NewBucketGraph(64, 4, 6, 1)
	for node := uint64(1); node < 64; node++ {
		for _, p := range g.BaseParents(node) {
			if p >= node {
				t.Fatalf("node %d has base parent %d, which is not strictly lower", node, p)
			}
		}
	}
}

func TestBaseParentsEmptyAtNodeZero(t *testing.T) {
	g := graph.NewBucketGraph(64, 4, 6, 1)
	if got := g.BaseParents(0); len(got) != 0 {
		t.Fatalf("BaseParents(0) = %v, want empty", got)
	}
}

func TestDeterministicAcrossInstances(t *testing.T) {
	a := graph.NewBucketGraph(128, 5, 7, 42)
	b := graph.NewBucketGraph(128, 5, 7, 42)

	for node := uint64(10); node < 20; node++ {
		ap, bp := a.Parents(node), b.Parents(node)
		if len(ap) != len(bp) {
			t.Fatalf("node %d: parent count differs: %d vs %d", node, len(ap), len(bp))
		}
		for i := range ap {
			if ap[i] != bp[i] {
				t.Fatalf("node %d: parents differ at %d: %d vs %d", node, i, ap[i], bp[i])
			}
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := graph.NewBucketGraph(256, 6, 8, 1)
	b := graph.NewBucketGraph(256, 6, 8, 2)

	same := true
	for node := uint64(50); node < 60; node++ {
		ap, bp := a.Parents(node), b.Parents(node)
		for i := range ap {
			if i < len(bp) && ap[i] != bp[i] {
				same = false
			}
		}
	}
	if same {
		t.Fatal("two different seeds produced identical parent sets across a ten-node sample")
	}
}

func TestExpanderParentsEmptyWhenDegreeZero(t *testing.T) {
	g := graph.NewBucketGraph(32, 4, 0, 7)
	if got := g.ExpanderParents(5); len(got) != 0 {
		t.Fatalf("ExpanderParents with degree 0 = %v, want empty", got)
	}
}

func TestParentsOrderingIsBaseThenExpander(t *testing.T) {
	g := graph.NewBucketGraph(64, 3, 5, 9)
	node := uint64(20)
	base := g.BaseParents(node)
	exp := g.ExpanderParents(node)
	all := g.Parents(node)

	if len(all) != len(base)+len(exp) {
		t.Fatalf("Parents length = %d, want %d", len(all), len(base)+len(exp))
	}
	for i, p := range base {
		if all[i] != p {
			t.Fatalf("Parents[%d] = %d, want base parent %d", i, all[i], p)
		}
	}
	for i, p := range exp {
		if all[len(base)+i] != p {
			t.Fatalf("Parents[%d] = %d, want expander parent %d", len(base)+i, all[len(base)+i], p)
		}
	}
}

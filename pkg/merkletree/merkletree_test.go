package merkletree_test

import (
	"testing"

	"github.com/storageproofs/sdr-porep/pkg/merkletree"
)

func leaves(n int) []merkletree.Digest {
	out := make([]merkletree.Digest, n)
	for i := range out {
		out[i][0] = byte(i + 1)
	}
	return out
}

func TestBuildRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := merkletree.Build(leaves(3)); err == nil {
		t.Fatal("Build with 3 leaves should have failed, a non-power-of-two")
	}
}

func TestBuildRejectsEmpty(t *testing.T) {
	if _, err := merkletree.Build(nil); err == nil {
		t.Fatal("Build with no leaves should have failed")
	}
}

func TestSingleLeafTreeRootIsTheLeaf(t *testing.T) {
	ls := leaves(1)
	tree, err := merkletree.Build(ls)
	if err != nil {
		t.Fatal(err)
	}
	if tree.Root() != ls[0] {
		t.Fatalf("single-leaf tree root = %x, want leaf %x", tree.Root(), ls[0])
	}
}

func TestProveVerifyAllLeaves(t *testing.T) {
	ls := leaves(16)
	tree, err := merkletree.Build(ls)
	if err != nil {
		t.Fatal(err)
	}
	for i := range ls {
		proof, err := tree.Prove(i)
		if err != nil {
			t.Fatalf("Prove(%d): %v", i, err)
		}
		if !merkletree.Verify(proof, tree.Root()) {
			t.Fatalf("Verify failed for leaf %d", i)
		}
	}
}

func TestVerifyRejectsWrongRoot(t *testing.T) {
	ls := leaves(8)
	tree, err := merkletree.Build(ls)
	if err != nil {
		t.Fatal(err)
	}
	proof, err := tree.Prove(3)
	if err != nil {
		t.Fatal(err)
	}
	var wrongRoot merkletree.Digest
	wrongRoot[0] = 0xEE
	if merkletree.Verify(proof, wrongRoot) {
		t.Fatal("Verify accepted a proof against the wrong root")
	}
}

func TestVerifyRejectsTamperedLeaf(t *testing.T) {
	ls := leaves(8)
	tree, err := merkletree.Build(ls)
	if err != nil {
		t.Fatal(err)
	}
	proof, err := tree.Prove(2)
	if err != nil {
		t.Fatal(err)
	}
	proof.Leaf[0] ^= 0xFF
	if merkletree.Verify(proof, tree.Root()) {
		t.Fatal("Verify accepted a tampered leaf")
	}
}

func TestProveOutOfRangeErrors(t *testing.T) {
	tree, err := merkletree.Build(leaves(4))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tree.Prove(4); err == nil {
		t.Fatal("Prove(4) on a 4-leaf tree should have failed")
	}
	if _, err := tree.Prove(-1); err == nil {
		t.Fatal("Prove(-1) should have failed")
	}
}

func TestDepthAndNumLeaves(t *testing.T) {
	tree, err := merkletree.Build(leaves(8))
	if err != nil {
		t.Fatal(err)
	}
	if tree.NumLeaves() != 8 {
		t.Fatalf("NumLeaves() = %d, want 8", tree.NumLeaves())
	}
	if tree.Depth() != 3 {
		t.Fatalf("Depth() = %d, want 3", tree.Depth())
	}
}

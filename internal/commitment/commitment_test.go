package commitment_test

import (
	"testing"

	"github.com/storageproofs/sdr-porep/internal/commitment"
)

func TestHashDeterministic(t *testing.T) {
	var l, r [32]byte
	l[0], r[0] = 1, 2

	a := commitment.Hash(l, r)
	b := commitment.Hash(l, r)
	if a != b {
		t.Fatalf("Hash not deterministic: %x != %x", a, b)
	}
}

func TestHashSensitiveToOrder(t *testing.T) {
	var l, r [32]byte
	l[0], r[0] = 1, 2

	if commitment.Hash(l, r) == commitment.Hash(r, l) {
		t.Fatal("Hash(l, r) == Hash(r, l), want order to matter")
	}
}

func TestCombineMatchesHash(t *testing.T) {
	var commC, commRLast [32]byte
	commC[0], commRLast[0] = 3, 4

	if commitment.Combine(commC, commRLast) != commitment.Hash(commC, commRLast) {
		t.Fatal("Combine should equal Hash(commC, commRLast)")
	}
}

func TestOfEmptyAndSingle(t *testing.T) {
	empty := commitment.Of()
	var zero [32]byte
	if empty == zero {
		t.Fatal("Of() with no parts unexpectedly hashed to all zero bytes")
	}

	var part [32]byte
	part[0] = 9
	single := commitment.Of(part)
	if single == empty {
		t.Fatal("Of(part) collided with Of()")
	}
}

func TestOfFoldsAllParts(t *testing.T) {
	var a, b, c [32]byte
	a[0], b[0], c[0] = 1, 2, 3

	abc := commitment.Of(a, b, c)
	ab := commitment.Of(a, b)
	if abc == ab {
		t.Fatal("Of(a,b,c) should differ from Of(a,b)")
	}
}

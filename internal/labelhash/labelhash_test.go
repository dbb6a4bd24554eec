package labelhash_test

import (
	"testing"

	"github.com/storageproofs/sdr-porep/internal/labelhash"
)

func digest(backend labelhash.Backend, replicaID [32]byte, node uint64, parents ...[32]byte) [32]byte {
	hc := labelhash.New(backend)
	hc.WriteReplicaID(replicaID)
	hc.WriteNodeIndex(node)
	for _, p := range parents {
		hc.WriteParentLabel(p)
	}
	return hc.Finalize()
}

func TestHashCoreDeterministic(t *testing.T) {
	var replicaID [32]byte
	replicaID[0] = 7
	var parent [32]byte
	parent[1] = 9

	for _, backend := range []labelhash.Backend{labelhash.SHA256, labelhash.Blake2s256} {
		a := digest(backend, replicaID, 3, parent)
		b := digest(backend, replicaID, 3, parent)
		if a != b {
			t.Fatalf("backend %d: HashCore not deterministic: %x != %x", backend, a, b)
		}
	}
}

func TestHashCoreDistinguishesBackends(t *testing.T) {
	var replicaID [32]byte
	sha := digest(labelhash.SHA256, replicaID, 1)
	blake := digest(labelhash.Blake2s256, replicaID, 1)
	if sha == blake {
		t.Fatal("SHA256 and Blake2s256 backends produced the same digest")
	}
}

func TestHashCoreSensitiveToNodeIndex(t *testing.T) {
	var replicaID [32]byte
	a := digest(labelhash.SHA256, replicaID, 1)
	b := digest(labelhash.SHA256, replicaID, 2)
	if a == b {
		t.Fatal("digest did not change with node index")
	}
}

func TestHashCoreSensitiveToParentOrder(t *testing.T) {
	var replicaID [32]byte
	var p1, p2 [32]byte
	p1[0] = 1
	p2[0] = 2

	a := digest(labelhash.SHA256, replicaID, 0, p1, p2)
	b := digest(labelhash.SHA256, replicaID, 0, p2, p1)
	if a == b {
		t.Fatal("digest did not depend on parent label order")
	}
}

func TestHashCoreReusableAfterFinalize(t *testing.T) {
	var replicaID [32]byte
	hc := labelhash.New(labelhash.SHA256)
	hc.WriteReplicaID(replicaID)
	hc.WriteNodeIndex(5)
	first := hc.Finalize()

	hc.Reset()
	hc.WriteReplicaID(replicaID)
	hc.WriteNodeIndex(5)
	second := hc.Finalize()

	if first != second {
		t.Fatalf("reused HashCore produced different digest: %x != %x", first, second)
	}
}

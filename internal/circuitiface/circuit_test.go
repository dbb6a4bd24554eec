package circuitiface_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"

	"github.com/storageproofs/sdr-porep/internal/circuitiface"
	"github.com/storageproofs/sdr-porep/pkg/setup"
)

// columnDigest reproduces ColumnCircuit.Define's in-circuit hash
// (hash.NewMerkleDamgardHasher over c.Labels[k]) outside the circuit, the
// way the teacher's pkg/merkle.HashNodes reproduces its own circuit's
// Merkle step for witness preparation.
func columnDigest(values []*big.Int) *big.Int {
	h := poseidon2.NewMerkleDamgardHasher()
	for _, v := range values {
		var e bn254fr.Element
		e.SetBigInt(v)
		b := e.Bytes()
		h.Write(b[:])
	}
	return new(big.Int).SetBytes(h.Sum(nil))
}

// randomColumnValues returns LabelsPerColumn packed field-element values for
// one column opening, produced the same way a real caller would via
// PackLabels over raw 32-byte layer labels.
func randomColumnValues(t *testing.T) []*big.Int {
	t.Helper()
	labels := make([][32]byte, circuitiface.LabelsPerColumn)
	for i := range labels {
		if _, err := rand.Read(labels[i][:]); err != nil {
			t.Fatalf("generate random label: %v", err)
		}
	}
	packed := circuitiface.PackLabels(labels)
	values := make([]*big.Int, len(packed))
	for i, p := range packed {
		v, ok := p.(*big.Int)
		if !ok {
			t.Fatalf("PackLabels[%d] is %T, want *big.Int", i, p)
		}
		values[i] = v
	}

	// PackLabels/UnpackLabels must round-trip the ElementSize-byte prefix
	// field.Bytes2Field actually packed from each label.
	unpacked := circuitiface.UnpackLabels(packed)
	for i, u := range unpacked {
		var wantBytes [circuitiface.ElementSize]byte
		copy(wantBytes[:], labels[i][:circuitiface.ElementSize])
		if u != wantBytes {
			t.Fatalf("UnpackLabels[%d] = %x, want %x", i, u, wantBytes)
		}
	}

	return values
}

// buildAssignment produces a ColumnCircuit witness where every opening's
// column digest equals CommC directly (a zero-depth opening: every
// MerkleOpeningCircuit proof path and direction is zero, so the circuit's
// running hash never advances past the leaf, and the leaf must equal the
// root as asserted).
func buildAssignment(t *testing.T) *circuitiface.ColumnCircuit {
	t.Helper()
	c := circuitiface.NewColumnCircuit()

	values := randomColumnValues(t)
	digest := columnDigest(values)
	c.CommC = digest

	for k := 0; k < circuitiface.OpeningsCount; k++ {
		labels := make([]frontend.Variable, len(values))
		for i, v := range values {
			labels[i] = v
		}
		opening := circuitiface.MerkleOpeningCircuit{
			RootHash:  digest,
			LeafValue: digest,
		}
		for i := range opening.ProofPath {
			opening.ProofPath[i] = big.NewInt(0)
			opening.Directions[i] = big.NewInt(0)
		}
		c.Labels[k] = labels
		c.Openings[k] = opening
	}
	return c
}

// TestColumnCircuitEndToEnd compiles ColumnCircuit, performs a dev Groth16
// setup, builds a valid witness, and proves and verifies it — the same
// compile/setup/prove/verify shape as the teacher's poi_test.go.
func TestColumnCircuitEndToEnd(t *testing.T) {
	ccs, err := setup.CompileCircuit(circuitiface.NewColumnCircuit())
	if err != nil {
		t.Fatalf("compile circuit: %v", err)
	}

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		t.Fatalf("groth16 setup: %v", err)
	}

	assignment := buildAssignment(t)

	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		t.Fatalf("create witness: %v", err)
	}
	publicWitness, err := witness.Public()
	if err != nil {
		t.Fatalf("extract public witness: %v", err)
	}

	proof, err := groth16.Prove(ccs, pk, witness)
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	if err := groth16.Verify(proof, vk, publicWitness); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

// TestColumnCircuitRejectsWrongCommC checks that a CommC not matching the
// recomputed column digests fails witness assignment against the compiled
// circuit's constraints.
func TestColumnCircuitRejectsWrongCommC(t *testing.T) {
	ccs, err := setup.CompileCircuit(circuitiface.NewColumnCircuit())
	if err != nil {
		t.Fatalf("compile circuit: %v", err)
	}
	pk, _, err := groth16.Setup(ccs)
	if err != nil {
		t.Fatalf("groth16 setup: %v", err)
	}

	assignment := buildAssignment(t)
	assignment.CommC = new(big.Int).Add(assignment.CommC.(*big.Int), big.NewInt(1))

	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		t.Fatalf("create witness: %v", err)
	}
	if _, err := groth16.Prove(ccs, pk, witness); err == nil {
		t.Fatal("prove with mismatched CommC should have failed")
	}
}

// Package commitment models the external commitment-hash collaborator
// (H_pedersen in the design notes) as a field-friendly Poseidon2 sponge, the
// same substitution the teacher's own pkg/crypto and pkg/merkle make for
// their Pedersen-hash-shaped commitments. It also implements the
// CommitmentCombiner: CommR = H(CommC || CommR_last).
package commitment

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
)

// Hash combines two 32-byte node digests into their parent digest, used by
// merkletree for every internal node of TreeD, TreeC, and TreeR_last.
// Inputs are canonicalized through fr.Element so a zero operand hashes as
// 32 zero bytes, matching the teacher's pkg/merkle.HashNodes.
func Hash(left, right [32]byte) [32]byte {
	h := poseidon2.NewMerkleDamgardHasher()

	var l, r fr.Element
	l.SetBytes(left[:])
	r.SetBytes(right[:])
	lb := l.Bytes()
	rb := r.Bytes()
	h.Write(lb[:])
	h.Write(rb[:])

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Combine implements the CommitmentCombiner: CommR = H(CommC || CommR_last).
func Combine(commC, commRLast [32]byte) [32]byte {
	return Hash(commC, commRLast)
}

// Of hashes an arbitrary ordered sequence of 32-byte digests into one, used
// by columnhash to fold a node's per-layer labels into its column digest:
// H(label_1 || ... || label_L).
func Of(parts ...[32]byte) [32]byte {
	h := poseidon2.NewMerkleDamgardHasher()
	for _, p := range parts {
		var e fr.Element
		e.SetBytes(p[:])
		b := e.Bytes()
		h.Write(b[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

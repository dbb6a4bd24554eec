// Package stacked implements the top-level SDR PoRep data flow: LabelEngine
// layers a replica identifier across config.Params.LayerCount labeling
// rounds, ColumnHasher and MerkleBuilder commit to the result, Encoder
// transforms the final layer into the replica, Prover assembles
// per-challenge proofs, and Extractor inverts the whole transform. This
// orchestration is grounded in
// original_source/storage-proofs/src/stacked/proof.rs's generate_layers,
// transform_and_replicate_layers, prove_layers, and
// extract_and_invert_transform_layers.
package stacked

import "github.com/storageproofs/sdr-porep/pkg/merkletree"

// Digest is one 32-byte node label, column digest, or tree node value.
type Digest = [32]byte

// Tau is the pair of commitments published before proving begins: CommD
// (root of TreeD, the original data) and CommR (the combined replica
// commitment, CommitmentCombiner's output).
type Tau struct {
	CommD Digest
	CommR Digest
}

// PersistentAux holds the commitments that must survive from replication
// through every later proving session: CommC (root of TreeC) and
// CommRLast (root of TreeR_last). CommR = Combine(CommC, CommRLast).
type PersistentAux struct {
	CommC     Digest
	CommRLast Digest
}

// TemporaryAux holds the working state a proving session needs but which
// can be discarded once all challenges for a given seed have been proved:
// the full TreeD/TreeC/TreeR_last structures and a copy of each layer's
// labels, read back from its label store.
type TemporaryAux struct {
	TreeD     *merkletree.Tree
	TreeC     *merkletree.Tree
	TreeRLast *merkletree.Tree
	Labels    []LayerLabels // Labels[layer-1] holds that layer's full label set
}

// LayerLabels is one layer's complete, node-indexed label set, read back
// from that layer's Store once replication has finished.
type LayerLabels struct {
	Layer  int
	Values []Digest
}

// Column is one node's full cross-layer column: its own per-layer labels
// plus its base- and expander-parents' per-layer labels, in the ordering
// HashCore consumes (base parents, then expander parents).
type Column struct {
	Index           uint64
	NodeLabels      []Digest   // one per layer, this node
	BaseParents     []uint64   // parent node indices
	BaseLabels      [][]Digest // [parent][layer]
	ExpanderParents []uint64
	ExpanderLabels  [][]Digest
}

// ColumnDigestInputs returns NodeLabels, the inputs the column-hash
// collaborator ColumnHasher uses folds into this column's digest, so a
// verifier can recompute it independently of the stored TreeC leaf.
func (c Column) ColumnDigestInputs() []Digest { return c.NodeLabels }

// EncodingProof documents, for one challenged node at one layer, the
// parent labels and resulting label, allowing a verifier to recompute
// HashCore's output and check it against the stored column.
type EncodingProof struct {
	Layer           int
	NodeIndex       uint64
	BaseParents     []uint64
	BaseLabels      []Digest
	ExpanderParents []uint64
	ExpanderLabels  []Digest
	Label           Digest
}

// ReplicaColumnProof pairs a challenged node's Column with its TreeC
// inclusion proof, plus the inclusion proofs for each of its parents'
// columns (needed so a verifier can check the column-consistency
// invariant without needing the whole TreeC).
type ReplicaColumnProof struct {
	Column            Column
	InclusionProof    *merkletree.Proof
	BaseInclusions    []*merkletree.Proof
	ExpanderInclusions []*merkletree.Proof
}

// Proof is the complete per-challenge artifact the Prover emits: TreeD and
// TreeR_last openings at the challenged node, the replica column proof,
// and one EncodingProof per layer the LayerChallengePredicate selects.
type Proof struct {
	Challenge      uint64
	CommDProof     *merkletree.Proof
	CommRLastProof *merkletree.Proof
	ReplicaColumn  ReplicaColumnProof
	EncodingProofs []EncodingProof
}

// PublicInputs is everything a verifier needs besides the Proof itself.
type PublicInputs struct {
	ReplicaID  Digest
	Seed       Digest
	Tau        Tau
	Challenges []uint64
}

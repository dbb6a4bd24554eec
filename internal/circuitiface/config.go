// Package circuitiface models the arithmetic-circuit / SNARK front-end that
// consumes a replica column proof and checks it inside a constraint system.
// That front-end, the actual prover/verifier backend, and the MPC ceremony
// around it are an external collaborator (see the top-level design notes);
// this package gives it a concrete, minimal shape instead of leaving it as
// an unimplemented interface with nothing behind it.
package circuitiface

const (
	// MaxColumnDepth bounds the Merkle proof path length of a single
	// column opening (MerkleOpeningCircuit.ProofPath), mirroring the
	// teacher's MaxTreeDepth cap.
	MaxColumnDepth = 20

	// OpeningsCount is the number of column openings proved per circuit
	// instance, analogous to the teacher's per-proof opening count.
	OpeningsCount = 8

	// LabelsPerColumn is the fixed number of per-layer labels folded into
	// one column digest inside the circuit. ColumnCircuit.Labels slices
	// must be allocated to this width; a nil or mismatched slice makes
	// the compiled circuit hash zero labels instead of a real column.
	LabelsPerColumn = 6

	// ElementSize is the byte width field.Bytes2Field packs each label
	// into, mirroring the teacher's ElementSize (31, not 32, so a raw
	// label never exceeds the scalar field modulus).
	ElementSize = 31
)

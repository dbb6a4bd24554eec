package circuitiface

import (
	"github.com/consensys/gnark/frontend"

	"github.com/storageproofs/sdr-porep/pkg/field"
)

// PackLabels converts a column's raw 32-byte layer labels into the
// frontend.Variable slice a ColumnCircuit assignment expects, one field
// element per label via field.Bytes2Field (mirrors the teacher's witness.go
// packing chunk bytes for PoICircuit.Bytes). len(labels) must equal
// LabelsPerColumn.
func PackLabels(labels [][32]byte) []frontend.Variable {
	out := make([]frontend.Variable, len(labels))
	for i, label := range labels {
		out[i] = field.Bytes2Field(label[:], 1, ElementSize)[0]
	}
	return out
}

// UnpackLabels inverts PackLabels for test and debug tooling: it recovers
// the ElementSize-byte prefix field.Bytes2Field actually packed from each
// label, using field.Field2Bytes the way a proof-fixture exporter would
// read witness values back out.
func UnpackLabels(elements []frontend.Variable) [][ElementSize]byte {
	out := make([][ElementSize]byte, len(elements))
	for i, e := range elements {
		raw := field.Field2Bytes([]frontend.Variable{e}, ElementSize, ElementSize)
		copy(out[i][:], raw)
	}
	return out
}

package stacked

import "github.com/storageproofs/sdr-porep/pkg/field"

// Encoder performs the reversible replica transform: ciphertext = data +
// key (mod r) in Fr, where key is the final layer's label at that node
// (already field-masked by LabelEngine). Encode produces the replica from
// original data; Decode (used by Extractor) inverts it.
type Encoder struct{}

// Encode returns the replica label for one node given its original data
// and the final-layer key label.
func (Encoder) Encode(data, key Digest) Digest { return field.Encode(data, key) }

// Decode recovers the original data for one node given its replica label
// and the final-layer key label.
func (Encoder) Decode(ciphertext, key Digest) Digest { return field.Decode(ciphertext, key) }

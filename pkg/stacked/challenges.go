package stacked

import "encoding/binary"

// LayerChallengePredicate decides, for a given layer and the total layer
// count, whether that layer's EncodingProof should be included in a
// challenge's Proof. This is the external "include_challenge_at_layer"
// collaborator from the design notes: proving every layer at every
// challenge is sound but wasteful, so real deployments taper which layers
// carry a full encoding proof.
type LayerChallengePredicate interface {
	Include(layer, totalLayers int) bool
}

// TaperedPredicate includes every layer up through FullThrough, then only
// every Nth layer beyond it, plus the last layer always. This is a concrete, simple tapering scheme,
// not a claim about the original's exact taper curve (left unspecified by
// the distillation).
type TaperedPredicate struct {
	FullThrough int
	Stride      int
}

// Include implements LayerChallengePredicate.
func (t TaperedPredicate) Include(layer, totalLayers int) bool {
	if layer <= t.FullThrough || layer == totalLayers {
		return true
	}
	stride := t.Stride
	if stride <= 0 {
		stride = 1
	}
	return (layer-t.FullThrough)%stride == 0
}

// DefaultPredicate proves every layer through the first half, then every
// other layer, and always the last layer.
func DefaultPredicate(totalLayers int) TaperedPredicate {
	return TaperedPredicate{FullThrough: (totalLayers + 1) / 2, Stride: 2}
}

// DeriveChallenges derives `count` distinct node challenges in
// (0, nodeCount) from a 32-byte seed using a splitmix64-style stream: each
// challenge index is reduced from successive 8-byte seed-derived words,
// resampling on collision with an already-chosen index. Challenge 0 is
// never produced: node 0 has no base parents (§8 P7 requires 0 < c < N).
func DeriveChallenges(seed Digest, count int, nodeCount uint64) []uint64 {
	if nodeCount < 2 || count <= 0 {
		return nil
	}
	// Only nodeCount-1 distinct indices live in (0, nodeCount); asking for
	// more would spin forever looking for challenges that don't exist.
	if available := nodeCount - 1; uint64(count) > available {
		count = int(available)
	}

	state := binary.LittleEndian.Uint64(seed[:8]) ^ binary.LittleEndian.Uint64(seed[8:16])
	next := func() uint64 {
		state += 0x9E3779B97F4A7C15
		z := state
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}

	seen := make(map[uint64]bool, count)
	out := make([]uint64, 0, count)
	for len(out) < count {
		idx := next() % (nodeCount - 1)
		idx++ // map [0, nodeCount-1) to (0, nodeCount)
		if seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, idx)
	}
	return out
}

// Package field holds byte/field-element conversions shared by the circuit
// witness-assignment path and the label/encoding path. Bytes2Field/Field2Bytes
// are the teacher's circuit witness packing helpers; Mask/Encode/Decode are
// this engine's addition for the label field mask and the additive replica
// encoding, both operating over BLS12-381's scalar field as spec'd (the
// teacher's own circuits pack witnesses for BN254 — a sibling curve package
// from the same gnark-crypto module, not a new dependency).
package field

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/frontend"
)

// fieldMaskByte is applied to the most significant byte (index 31) of a
// 32-byte little-endian label so that the value always falls strictly below
// the field modulus, clearing the top two bits: byte[31] &= 0x3F.
const fieldMaskByte = 0x3F

// Mask clears the top two bits of the most significant byte of a raw
// 32-byte label in place, guaranteeing the value is a valid Fr element
// before it is ever interpreted as one.
func Mask(label *[32]byte) {
	label[31] &= fieldMaskByte
}

// Encode adds key to data in Fr: ciphertext = data + key (mod r). Both
// inputs are raw 32-byte little-endian label bytes; the field mask must
// already have been applied to key by the caller (LabelEngine output always
// is).
func Encode(data, key [32]byte) [32]byte {
	var d, k, out fr.Element
	d.SetBytes(reverse(data[:]))
	k.SetBytes(reverse(key[:]))
	out.Add(&d, &k)
	return toLE(out)
}

// Decode inverts Encode: data = ciphertext - key (mod r).
func Decode(ciphertext, key [32]byte) [32]byte {
	var c, k, out fr.Element
	c.SetBytes(reverse(ciphertext[:]))
	k.SetBytes(reverse(key[:]))
	out.Sub(&c, &k)
	return toLE(out)
}

func toLE(e fr.Element) [32]byte {
	be := e.Bytes()
	var out [32]byte
	for i := range be {
		out[i] = be[len(be)-1-i]
	}
	return out
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// Bytes2Field converts bytes to field elements with fixed size for circuit.
// numChunks is the total number of field elements to produce.
// elementSize is the number of bytes per field element.
func Bytes2Field(data []byte, numChunks, elementSize int) []frontend.Variable {
	elements := make([]frontend.Variable, numChunks)

	// Re-use a single buffer to avoid per-iteration allocations. big.Int.SetBytes
	// makes its own copy so it's safe to reuse the buffer afterwards.
	buf := make([]byte, elementSize)

	for i := 0; i < numChunks; i++ {
		// Reset buffer in-place (cheaper than make each loop).
		for j := range buf {
			buf[j] = 0
		}

		start := i * elementSize
		if start >= len(data) {
			// No more data – keep zero element.
			elements[i] = big.NewInt(0)
			continue
		}

		end := start + elementSize
		if end > len(data) {
			end = len(data)
		}

		copy(buf, data[start:end])

		elements[i] = new(big.Int).SetBytes(buf)
	}

	return elements
}

// Field2Bytes converts field elements back to bytes.
// elementSize is the number of bytes per field element.
func Field2Bytes(elements []frontend.Variable, elementSize, originalSize int) []byte {
	// Pre-allocate with exact capacity to avoid growth reallocations.
	result := make([]byte, 0, len(elements)*elementSize)

	tmp := make([]byte, elementSize) // reusable buffer

	for _, elem := range elements {
		// Fast-path for the common case (*big.Int produced by Bytes2Field).
		var value *big.Int
		switch v := elem.(type) {
		case *big.Int:
			value = v
		case int:
			value = big.NewInt(int64(v))
		case string:
			value = new(big.Int)
			value.SetString(v, 10)
		default:
			value = new(big.Int)
			_ = value.UnmarshalText([]byte(fmt.Sprintf("%v", v)))
		}

		// Zero the buffer then copy the value bytes at the end (big-endian).
		// If the value exceeds elementSize bytes (e.g. a full 32-byte field
		// element), take only the least-significant elementSize bytes to
		// avoid a negative slice index panic.
		for i := range tmp {
			tmp[i] = 0
		}
		valueBytes := value.Bytes()
		if len(valueBytes) > elementSize {
			valueBytes = valueBytes[len(valueBytes)-elementSize:]
		}
		copy(tmp[elementSize-len(valueBytes):], valueBytes)

		result = append(result, tmp...)
	}

	if originalSize > 0 && originalSize < len(result) {
		result = result[:originalSize]
	}

	return result
}

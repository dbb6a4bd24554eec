package field_test

import (
	"crypto/rand"
	"testing"

	"github.com/storageproofs/sdr-porep/pkg/field"
)

func TestMaskClearsTopTwoBits(t *testing.T) {
	label := [32]byte{}
	for i := range label {
		label[i] = 0xFF
	}
	field.Mask(&label)
	if label[31]&0xC0 != 0 {
		t.Fatalf("Mask left top bits set: byte[31] = %08b", label[31])
	}
	if label[31]&0x3F != 0x3F {
		t.Fatalf("Mask touched the lower six bits: byte[31] = %08b", label[31])
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var data, key [32]byte
	if _, err := rand.Read(data[:]); err != nil {
		t.Fatal(err)
	}
	if _, err := rand.Read(key[:]); err != nil {
		t.Fatal(err)
	}
	field.Mask(&data)
	field.Mask(&key)

	ciphertext := field.Encode(data, key)
	recovered := field.Decode(ciphertext, key)
	if recovered != data {
		t.Fatalf("Decode(Encode(data, key), key) = %x, want %x", recovered, data)
	}
}

func TestEncodeDifferentKeysDiffer(t *testing.T) {
	var data, key1, key2 [32]byte
	data[0] = 1
	key1[0] = 2
	key2[0] = 3

	if field.Encode(data, key1) == field.Encode(data, key2) {
		t.Fatal("Encode produced the same ciphertext under two different keys")
	}
}

func TestEncodeZeroKeyIsIdentity(t *testing.T) {
	var data, zeroKey [32]byte
	data[0] = 0x2A
	field.Mask(&data)

	if field.Encode(data, zeroKey) != data {
		t.Fatalf("Encode with zero key changed the data: %x != %x", field.Encode(data, zeroKey), data)
	}
}

package pagecontrol_test

import (
	"testing"

	"github.com/storageproofs/sdr-porep/pkg/pagecontrol"
)

func TestAdvanceSlidesWithoutError(t *testing.T) {
	data := make([]byte, 256*32) // 256 nodes, 32 bytes each
	c := pagecontrol.New(data, 32, 16)

	for node := uint64(0); node < 256; node += 16 {
		if err := c.Advance(node); err != nil {
			t.Fatalf("Advance(%d): %v", node, err)
		}
	}
	c.Close()
}

func TestAdvanceNearEndOfRegion(t *testing.T) {
	data := make([]byte, 20*32) // 20 nodes, window of 16 overruns the tail
	c := pagecontrol.New(data, 32, 16)

	if err := c.Advance(0); err != nil {
		t.Fatalf("Advance(0): %v", err)
	}
	if err := c.Advance(16); err != nil {
		t.Fatalf("Advance(16): %v", err)
	}
	c.Close()
}

func TestCloseIsIdempotentWithoutAdvance(t *testing.T) {
	data := make([]byte, 64*32)
	c := pagecontrol.New(data, 32, 8)
	c.Close()
	c.Close()
}

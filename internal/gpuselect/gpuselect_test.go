package gpuselect_test

import (
	"testing"

	"github.com/storageproofs/sdr-porep/internal/gpuselect"
)

func TestIndexNoDevices(t *testing.T) {
	if _, err := gpuselect.Index(nil); err != gpuselect.ErrNoDevices {
		t.Fatalf("Index(nil) error = %v, want ErrNoDevices", err)
	}
}

func TestIndexDefaultsWhenUnset(t *testing.T) {
	t.Setenv("P2_GPU_INDEX", "")
	idx, err := gpuselect.Index([]uint32{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 0 {
		t.Fatalf("Index = %d, want 0", idx)
	}
}

func TestIndexValidValue(t *testing.T) {
	t.Setenv("P2_GPU_INDEX", "2")
	idx, err := gpuselect.Index([]uint32{10, 11, 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 2 {
		t.Fatalf("Index = %d, want 2", idx)
	}
}

func TestIndexOutOfRangeDefaultsToZero(t *testing.T) {
	t.Setenv("P2_GPU_INDEX", "99")
	idx, err := gpuselect.Index([]uint32{10, 11})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 0 {
		t.Fatalf("Index = %d, want 0 on out-of-range value", idx)
	}
}

func TestIndexUnparseableDefaultsToZero(t *testing.T) {
	t.Setenv("P2_GPU_INDEX", "not-a-number")
	idx, err := gpuselect.Index([]uint32{10, 11})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 0 {
		t.Fatalf("Index = %d, want 0 on unparseable value", idx)
	}
}

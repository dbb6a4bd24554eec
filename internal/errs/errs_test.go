package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/storageproofs/sdr-porep/internal/errs"
)

func TestErrorWrapsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := errs.New("Store.WriteAt", errs.StoreError, cause)

	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(err, cause) = false, want true")
	}
	if !errs.Is(err, errs.StoreError) {
		t.Fatalf("errs.Is(err, StoreError) = false, want true")
	}
	if errs.Is(err, errs.TreeError) {
		t.Fatalf("errs.Is(err, TreeError) = true, want false")
	}
}

func TestErrorMessageIncludesOpAndKind(t *testing.T) {
	err := errs.New("Prover.proveOne", errs.InternalAssertion, nil)
	want := "Prover.proveOne: internal assertion"
	if got := err.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestKindString(t *testing.T) {
	cases := []struct {
		kind errs.Kind
		want string
	}{
		{errs.InvalidGraph, "invalid graph"},
		{errs.InvalidChallenge, "invalid challenge"},
		{errs.StoreError, "store error"},
		{errs.TreeError, "tree error"},
		{errs.EncodingError, "encoding error"},
		{errs.InternalAssertion, "internal assertion"},
		{errs.Kind(999), "unknown"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestIsFalseForPlainError(t *testing.T) {
	if errs.Is(fmt.Errorf("plain"), errs.StoreError) {
		t.Fatal("Is should not match a plain error")
	}
}

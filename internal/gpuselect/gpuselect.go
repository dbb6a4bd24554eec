// Package gpuselect resolves which GPU device index to bind to from the
// P2_GPU_INDEX environment variable. Enumerating actual GPU bus IDs and
// binding a kernel to one is GPU-selection glue and out of scope here; this
// package only does what the original gpu_selector.rs does around that env
// var, ported from original_source/storage-proofs-porep/src/stacked/vanilla/gpu_selector.rs.
package gpuselect

import (
	"errors"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

const envVar = "P2_GPU_INDEX"

// ErrNoDevices is returned when the caller supplies an empty bus-id list.
var ErrNoDevices = errors.New("gpuselect: no GPU bus ids available")

// Index parses P2_GPU_INDEX and returns the selected position within
// busIDs. An unset or empty value selects index 0 silently; an unparseable,
// negative, or out-of-range value degrades to index 0 with a warning,
// matching the original's defensive behavior. busIDs must be non-empty.
func Index(busIDs []uint32) (int, error) {
	if len(busIDs) == 0 {
		return 0, ErrNoDevices
	}

	raw, ok := os.LookupEnv(envVar)
	if !ok || raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n >= len(busIDs) {
		log.Warn().Str("value", raw).Int("count", len(busIDs)).
			Msg("invalid P2_GPU_INDEX, defaulting to device 0")
		return 0, nil
	}

	return n, nil
}

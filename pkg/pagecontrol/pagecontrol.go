// Package pagecontrol implements the PageController: sliding mlock/munlock
// windows over the node range currently being labeled, with page-level
// deduplication so a page that is still needed by a later window is never
// unlocked early. It is the Go analogue of
// original_source/storage-proofs/porep/src/stacked/vanilla/create_label.rs's
// prefetch_nodes/compute_pages/build_pages/mlock/munlock, which lock pages
// through the Rust region crate; here golang.org/x/sys/unix.Mlock/Munlock
// take that role directly, and github.com/bits-and-blooms/bitset replaces
// the original's ad hoc page-address map with a dense bitset keyed by
// page-floor index (pages are sequential and bounded, so a bitset is a
// tighter fit than a hash map here).
package pagecontrol

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

// Controller tracks which pages of a backing byte region are currently
// mlock'd and slides the trailing/current/look-ahead windows forward as
// labeling advances across nodes.
type Controller struct {
	data     []byte
	pageSize uint64
	nodeSize uint64
	window   uint64 // nodes per window

	locked *bitset.BitSet // indexed by page number

	trailingStart, trailingEnd uint64 // node ranges, [start, end)
	currentStart, currentEnd   uint64
	nextStart, nextEnd         uint64
}

// New constructs a Controller over data, a region addressable by node index
// with nodeSize bytes per node, sliding windowNodes nodes at a time.
func New(data []byte, nodeSize, windowNodes uint64) *Controller {
	return &Controller{
		data:     data,
		pageSize: uint64(unix.Getpagesize()),
		nodeSize: nodeSize,
		window:   windowNodes,
		locked:   bitset.New(uint(len(data)/unix.Getpagesize()) + 1),
	}
}

func (c *Controller) pagesOf(start, end uint64) (firstPage, lastPage uint64) {
	lo := start * c.nodeSize
	hi := end * c.nodeSize
	if hi == lo {
		return lo / c.pageSize, lo / c.pageSize
	}
	return lo / c.pageSize, (hi - 1) / c.pageSize
}

// lockRange mlocks every page-aligned byte range covering [start, end) that
// is not already locked, and marks those pages locked.
func (c *Controller) lockRange(start, end uint64) error {
	if start >= end {
		return nil
	}
	first, last := c.pagesOf(start, end)
	for page := first; page <= last; page++ {
		if c.locked.Test(uint(page)) {
			continue
		}
		lo := page * c.pageSize
		hi := lo + c.pageSize
		if hi > uint64(len(c.data)) {
			hi = uint64(len(c.data))
		}
		if lo >= hi {
			continue
		}
		if err := unix.Mlock(c.data[lo:hi]); err != nil {
			log.Warn().Err(err).Uint64("page", page).Msg("mlock failed, continuing without page lock")
			continue
		}
		c.locked.Set(uint(page))
	}
	return nil
}

// unlockRange munlocks every page covering [start, end) EXCEPT pages that
// also fall within keepStart/keepEnd (the page-deduplication rule: a page
// shared with the next window must not be unlocked early).
func (c *Controller) unlockRange(start, end, keepStart, keepEnd uint64) {
	if start >= end {
		return
	}
	first, last := c.pagesOf(start, end)
	var keepFirst, keepLast uint64
	hasKeep := keepStart < keepEnd
	if hasKeep {
		keepFirst, keepLast = c.pagesOf(keepStart, keepEnd)
	}

	for page := first; page <= last; page++ {
		if !c.locked.Test(uint(page)) {
			continue
		}
		if hasKeep && page >= keepFirst && page <= keepLast {
			continue
		}
		lo := page * c.pageSize
		hi := lo + c.pageSize
		if hi > uint64(len(c.data)) {
			hi = uint64(len(c.data))
		}
		if lo >= hi {
			continue
		}
		if err := unix.Munlock(c.data[lo:hi]); err != nil {
			log.Warn().Err(err).Uint64("page", page).Msg("munlock failed, continuing")
			continue
		}
		c.locked.Clear(uint(page))
	}
}

// Advance slides the controller's three windows forward so that `node` is
// the first node of the current window: the previous current window
// becomes trailing (and is unlocked, except for pages shared with the new
// current/next windows), a new next (look-ahead) window is locked, and the
// new current window is locked if not already. Called once per WindowSize
// nodes (see the design notes on prefetch_nodes cadence), not once per
// node.
func (c *Controller) Advance(node uint64) error {
	newCurrentStart := node
	newCurrentEnd := min(node+c.window, c.dataNodeCount())
	newNextStart := newCurrentEnd
	newNextEnd := min(newNextStart+c.window, c.dataNodeCount())

	// Unlock the previous current window (the new trailing window),
	// keeping any pages still needed by the new current or next windows.
	if c.currentEnd > c.currentStart {
		c.unlockRange(c.currentStart, c.currentEnd, newCurrentStart, newNextEnd)
	}

	if err := c.lockRange(newCurrentStart, newCurrentEnd); err != nil {
		return fmt.Errorf("pagecontrol: lock current window: %w", err)
	}
	if err := c.lockRange(newNextStart, newNextEnd); err != nil {
		return fmt.Errorf("pagecontrol: lock next window: %w", err)
	}

	c.trailingStart, c.trailingEnd = c.currentStart, c.currentEnd
	c.currentStart, c.currentEnd = newCurrentStart, newCurrentEnd
	c.nextStart, c.nextEnd = newNextStart, newNextEnd
	return nil
}

// Close unlocks every remaining locked page. Callers must call this once
// labeling finishes.
func (c *Controller) Close() {
	total := uint64(len(c.data)) / c.pageSize
	for page := uint64(0); page <= total; page++ {
		if !c.locked.Test(uint(page)) {
			continue
		}
		lo := page * c.pageSize
		hi := lo + c.pageSize
		if hi > uint64(len(c.data)) {
			hi = uint64(len(c.data))
		}
		if lo >= hi {
			continue
		}
		_ = unix.Munlock(c.data[lo:hi])
		c.locked.Clear(uint(page))
	}
}

func (c *Controller) dataNodeCount() uint64 {
	if c.nodeSize == 0 {
		return 0
	}
	return uint64(len(c.data)) / c.nodeSize
}

func min(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

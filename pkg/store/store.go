// Package store defines the Store external-collaborator interface (§6: a
// production disk-backed store is out of scope) and provides two
// conforming implementations needed to exercise the engine end to end: an
// in-memory store for small sectors and tests, and a file-backed store for
// the case the design notes call out explicitly — large sectors whose
// layers are flushed to disk rather than held in memory.
package store

import (
	"fmt"
	"os"
	"sync"

	"github.com/storageproofs/sdr-porep/internal/errs"
)

// Store is a flat, node-indexed byte region: exactly what LabelEngine
// writes each layer's labels into and ColumnHasher/MerkleBuilder read back
// from.
type Store interface {
	// WriteAt writes data (one node's raw 32-byte label) at the given node
	// index.
	WriteAt(node uint64, data [32]byte) error
	// ReadAt reads the label at the given node index.
	ReadAt(node uint64) ([32]byte, error)
	// Len returns the number of addressable nodes.
	Len() uint64
	// Close releases any underlying resources.
	Close() error
}

// MemStore is a Store backed by a single in-process byte slice, laid out
// as nodeCount contiguous 32-byte slots. The flat layout (rather than a
// [][32]byte) is what lets it implement Lockable: pagecontrol needs a real
// byte region to mlock, the same way the original locks pages of its
// memory-mapped layer files.
type MemStore struct {
	mu        sync.RWMutex
	data      []byte
	nodeCount uint64
}

// NewMemStore allocates a MemStore with room for nodeCount labels.
func NewMemStore(nodeCount uint64) *MemStore {
	return &MemStore{data: make([]byte, nodeCount*32), nodeCount: nodeCount}
}

func (m *MemStore) WriteAt(node uint64, data [32]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if node >= m.nodeCount {
		return errs.New("MemStore.WriteAt", errs.StoreError, fmt.Errorf("node %d out of range (len %d)", node, m.nodeCount))
	}
	copy(m.data[node*32:node*32+32], data[:])
	return nil
}

func (m *MemStore) ReadAt(node uint64) ([32]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out [32]byte
	if node >= m.nodeCount {
		return out, errs.New("MemStore.ReadAt", errs.StoreError, fmt.Errorf("node %d out of range (len %d)", node, m.nodeCount))
	}
	copy(out[:], m.data[node*32:node*32+32])
	return out, nil
}

func (m *MemStore) Len() uint64 { return m.nodeCount }

func (m *MemStore) Close() error { return nil }

// Bytes returns the MemStore's raw backing region, implementing Lockable
// for pagecontrol.Controller.
func (m *MemStore) Bytes() []byte { return m.data }

// Lockable is implemented by Store backends whose labels live in a single
// contiguous, page-lockable memory region. FileStore does not implement
// it: its pages are managed by the OS page cache via positioned file I/O,
// not by an mlock'd mapping, mirroring the original's distinction between
// its memory-mapped layer files (lockable) and plain disk stores.
type Lockable interface {
	Bytes() []byte
}

// FileStore is a Store backed by a fixed-size file, each node occupying a
// 32-byte slot at offset node*32. Concurrent WriteAt/ReadAt calls at
// disjoint node indices are safe; the underlying *os.File handles
// positioned I/O without a shared cursor.
type FileStore struct {
	f         *os.File
	nodeCount uint64
}

// OpenFileStore creates (or truncates) path to hold nodeCount 32-byte
// slots.
func OpenFileStore(path string, nodeCount uint64) (*FileStore, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, errs.New("OpenFileStore", errs.StoreError, err)
	}
	if err := f.Truncate(int64(nodeCount) * 32); err != nil {
		f.Close()
		return nil, errs.New("OpenFileStore", errs.StoreError, err)
	}
	return &FileStore{f: f, nodeCount: nodeCount}, nil
}

func (s *FileStore) WriteAt(node uint64, data [32]byte) error {
	if node >= s.nodeCount {
		return errs.New("FileStore.WriteAt", errs.StoreError, fmt.Errorf("node %d out of range (len %d)", node, s.nodeCount))
	}
	if _, err := s.f.WriteAt(data[:], int64(node)*32); err != nil {
		return errs.New("FileStore.WriteAt", errs.StoreError, err)
	}
	return nil
}

func (s *FileStore) ReadAt(node uint64) ([32]byte, error) {
	var out [32]byte
	if node >= s.nodeCount {
		return out, errs.New("FileStore.ReadAt", errs.StoreError, fmt.Errorf("node %d out of range (len %d)", node, s.nodeCount))
	}
	if _, err := s.f.ReadAt(out[:], int64(node)*32); err != nil {
		return out, errs.New("FileStore.ReadAt", errs.StoreError, err)
	}
	return out, nil
}

func (s *FileStore) Len() uint64 { return s.nodeCount }

func (s *FileStore) Close() error {
	if err := s.f.Close(); err != nil {
		return errs.New("FileStore.Close", errs.StoreError, err)
	}
	return nil
}

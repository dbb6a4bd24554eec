package stacked

import (
	"fmt"

	"github.com/storageproofs/sdr-porep/config"
	"github.com/storageproofs/sdr-porep/internal/errs"
	"github.com/storageproofs/sdr-porep/internal/labelhash"
	"github.com/storageproofs/sdr-porep/pkg/field"
	"github.com/storageproofs/sdr-porep/pkg/graph"
	"github.com/storageproofs/sdr-porep/pkg/pagecontrol"
	"github.com/storageproofs/sdr-porep/pkg/store"
)

// LabelEngine generates the stacked layers of labels: for layer 1, each
// node's label is HashCore(replicaID, nodeIndex, baseParentLabels[layer 1]);
// for layer > 1, HashCore additionally folds in expanderParentLabels taken
// from layer-1's label set. Every label is field-masked before being
// stored, so it is always safely interpretable as an Fr element.
type LabelEngine struct {
	Graph     graph.Graph
	Backend   labelhash.Backend
	ReplicaID [32]byte
	Params    config.Params

	// NewStore constructs a fresh Store for one layer's labels; callers
	// supply this so small sectors can stay in memory and large ones can
	// spill to disk (store.Store is the out-of-scope disk-store
	// collaborator's interface).
	NewStore func(layer int) (store.Store, error)
}

// GenerateLayers runs the full layered state machine and returns one Store
// per layer, in layer order (index 0 = layer 1).
func (e *LabelEngine) GenerateLayers() ([]store.Store, error) {
	if e.Params.LayerCount < 1 {
		return nil, errs.New("LabelEngine.GenerateLayers", errs.InvalidGraph, fmt.Errorf("layer count must be >= 1"))
	}

	nodeCount := e.Graph.NodeCount()
	stores := make([]store.Store, e.Params.LayerCount)

	hc := labelhash.New(e.Backend)

	for layer := 1; layer <= e.Params.LayerCount; layer++ {
		s, err := e.NewStore(layer)
		if err != nil {
			return nil, errs.New("LabelEngine.GenerateLayers", errs.StoreError, err)
		}
		stores[layer-1] = s

		var prevLayer store.Store
		var pc *pagecontrol.Controller
		if layer > 1 {
			prevLayer = stores[layer-2]
			if lockable, ok := prevLayer.(store.Lockable); ok {
				pc = pagecontrol.New(lockable.Bytes(), 32, e.Params.WindowSize)
			}
		}

		for node := uint64(0); node < nodeCount; node++ {
			if pc != nil && node%e.Params.WindowSize == 0 {
				if err := pc.Advance(node); err != nil {
					return nil, errs.New("LabelEngine.GenerateLayers", errs.StoreError, err)
				}
			}
			// prefetchHint would issue a single-cache-line hardware
			// prefetch for the immediately preceding label on amd64; Go
			// has no portable intrinsic for this so there is nothing to
			// do here, but the call site is kept to preserve the shape
			// of the per-node loop.
			prefetchHint(node)

			label, err := e.labelNode(hc, layer, node, s, prevLayer)
			if err != nil {
				return nil, err
			}
			if err := s.WriteAt(node, label); err != nil {
				return nil, errs.New("LabelEngine.GenerateLayers", errs.StoreError, err)
			}
		}

		if pc != nil {
			pc.Close()
		}
	}

	return stores, nil
}

func (e *LabelEngine) labelNode(hc *labelhash.HashCore, layer int, node uint64, currentLayer, prevLayer store.Store) ([32]byte, error) {
	hc.Reset()
	hc.WriteReplicaID(e.ReplicaID)
	hc.WriteNodeIndex(node)

	for _, parent := range e.Graph.BaseParents(node) {
		label, err := currentLayer.ReadAt(parent)
		if err != nil {
			return [32]byte{}, errs.New("LabelEngine.labelNode", errs.StoreError, err)
		}
		hc.WriteParentLabel(label)
	}

	if layer > 1 {
		for _, parent := range e.Graph.ExpanderParents(node) {
			label, err := prevLayer.ReadAt(parent)
			if err != nil {
				return [32]byte{}, errs.New("LabelEngine.labelNode", errs.StoreError, err)
			}
			hc.WriteParentLabel(label)
		}
	}

	label := hc.Finalize()
	field.Mask(&label)
	return label, nil
}

// prefetchHint is a documented no-op: see GenerateLayers's comment on the
// original's _mm_prefetch call.
func prefetchHint(node uint64) {}

package stacked

import (
	"github.com/storageproofs/sdr-porep/config"
	"github.com/storageproofs/sdr-porep/internal/errs"
	"github.com/storageproofs/sdr-porep/internal/labelhash"
	"github.com/storageproofs/sdr-porep/pkg/graph"
	"github.com/storageproofs/sdr-porep/pkg/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Extractor inverts the replicate transform: it replays label generation
// (labels depend only on the replica id and graph, never on the replica
// data) and then decodes each replica node against the recovered final
// layer key. Grounded in
// original_source/storage-proofs/src/stacked/proof.rs's
// extract_and_invert_transform_layers.
type Extractor struct {
	Graph    graph.Graph
	Backend  labelhash.Backend
	Params   config.Params
	NewStore func(layer int) (store.Store, error)

	// Log receives phase-boundary progress; nil falls back to the global
	// zerolog logger.
	Log *zerolog.Logger
}

func (e *Extractor) logger() *zerolog.Logger {
	if e.Log != nil {
		return e.Log
	}
	return &log.Logger
}

// Extract recovers the original data given a replicated sector's replica
// labels and replica id.
func (e *Extractor) Extract(replicaID Digest, replica []Digest) ([]Digest, error) {
	nodeCount := e.Graph.NodeCount()
	if uint64(len(replica)) != nodeCount {
		return nil, errs.New("Extractor.Extract", errs.InvalidGraph, nil)
	}

	logger := e.logger()
	logger.Info().Uint64("nodes", nodeCount).Msg("replaying label generation for extraction")
	engine := &LabelEngine{Graph: e.Graph, Backend: e.Backend, ReplicaID: replicaID, Params: e.Params, NewStore: e.NewStore}
	layerStores, err := engine.GenerateLayers()
	if err != nil {
		return nil, err
	}
	lastLayer := layerStores[len(layerStores)-1]

	var enc Encoder
	data := make([]Digest, nodeCount)
	for node := uint64(0); node < nodeCount; node++ {
		key, err := lastLayer.ReadAt(node)
		if err != nil {
			return nil, errs.New("Extractor.Extract", errs.StoreError, err)
		}
		data[node] = enc.Decode(replica[node], key)
	}

	logger.Info().Msg("extraction complete")
	return data, nil
}

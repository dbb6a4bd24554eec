package stacked

import (
	"context"
	"fmt"

	"github.com/storageproofs/sdr-porep/config"
	"github.com/storageproofs/sdr-porep/internal/commitment"
	"github.com/storageproofs/sdr-porep/internal/errs"
	"github.com/storageproofs/sdr-porep/internal/labelhash"
	"github.com/storageproofs/sdr-porep/pkg/columnhash"
	"github.com/storageproofs/sdr-porep/pkg/graph"
	"github.com/storageproofs/sdr-porep/pkg/merkletree"
	"github.com/storageproofs/sdr-porep/pkg/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Replicator drives the full replicate flow: generate layers, build TreeD
// over the original data, encode the final layer into the replica, build
// TreeC over column hashes and TreeR_last over the replica, and combine
// CommC/CommR_last into CommR. Grounded in
// original_source/storage-proofs/src/stacked/proof.rs's
// transform_and_replicate_layers.
type Replicator struct {
	Graph    graph.Graph
	Backend  labelhash.Backend
	Params   config.Params
	NewStore func(layer int) (store.Store, error)

	// Log receives phase-boundary progress; nil falls back to the global
	// zerolog logger.
	Log *zerolog.Logger
}

func (r *Replicator) logger() *zerolog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return &log.Logger
}

// Replicate runs the full pipeline and returns the published Tau, the
// PersistentAux a later proving session needs, and the TemporaryAux
// working state (full trees + layer label sets) for immediate use by
// Prover in the same process.
func (r *Replicator) Replicate(ctx context.Context, replicaID Digest, data []Digest) (Tau, PersistentAux, *TemporaryAux, error) {
	nodeCount := r.Graph.NodeCount()
	if uint64(len(data)) != nodeCount {
		return Tau{}, PersistentAux{}, nil, errs.New("Replicate", errs.InvalidGraph,
			fmt.Errorf("data has %d nodes, graph expects %d", len(data), nodeCount))
	}

	logger := r.logger()
	logger.Info().Uint64("nodes", nodeCount).Msg("building TreeD over original data")
	treeD, err := merkletree.Build(data)
	if err != nil {
		return Tau{}, PersistentAux{}, nil, errs.New("Replicate", errs.TreeError, err)
	}

	logger.Info().Int("layers", r.Params.LayerCount).Msg("generating stacked labeling layers")
	engine := &LabelEngine{Graph: r.Graph, Backend: r.Backend, ReplicaID: replicaID, Params: r.Params, NewStore: r.NewStore}
	layerStores, err := engine.GenerateLayers()
	if err != nil {
		return Tau{}, PersistentAux{}, nil, err
	}

	logger.Info().Msg("hashing columns across layers")
	columns := make([]Digest, nodeCount)
	if err := columnhash.Compute(ctx, layerStores, nodeCount, r.Params.ChunkWorkers, columns); err != nil {
		return Tau{}, PersistentAux{}, nil, errs.New("Replicate", errs.EncodingError, err)
	}
	treeC, err := merkletree.Build(columns)
	if err != nil {
		return Tau{}, PersistentAux{}, nil, errs.New("Replicate", errs.TreeError, err)
	}

	lastLayer := layerStores[len(layerStores)-1]
	var enc Encoder
	replica := make([]Digest, nodeCount)
	for node := uint64(0); node < nodeCount; node++ {
		key, err := lastLayer.ReadAt(node)
		if err != nil {
			return Tau{}, PersistentAux{}, nil, errs.New("Replicate", errs.StoreError, err)
		}
		replica[node] = enc.Encode(data[node], key)
	}
	treeRLast, err := merkletree.Build(replica)
	if err != nil {
		return Tau{}, PersistentAux{}, nil, errs.New("Replicate", errs.TreeError, err)
	}

	commR := commitment.Combine(treeC.Root(), treeRLast.Root())
	logger.Info().Msg("replication complete")

	tau := Tau{CommD: treeD.Root(), CommR: commR}
	paux := PersistentAux{CommC: treeC.Root(), CommRLast: treeRLast.Root()}

	labels := make([]LayerLabels, len(layerStores))
	for i, s := range layerStores {
		vals := make([]Digest, nodeCount)
		for node := uint64(0); node < nodeCount; node++ {
			v, err := s.ReadAt(node)
			if err != nil {
				return Tau{}, PersistentAux{}, nil, errs.New("Replicate", errs.StoreError, err)
			}
			vals[node] = v
		}
		labels[i] = LayerLabels{Layer: i + 1, Values: vals}
	}

	taux := &TemporaryAux{TreeD: treeD, TreeC: treeC, TreeRLast: treeRLast, Labels: labels}
	return tau, paux, taux, nil
}

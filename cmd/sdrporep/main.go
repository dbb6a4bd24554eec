// Command sdrporep drives replicate/prove/extract/verify against a small,
// in-memory sector, the way the teacher's own cmd/compile dispatches on
// os.Args rather than a flag-parsing framework.
package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"os"

	"github.com/storageproofs/sdr-porep/config"
	"github.com/storageproofs/sdr-porep/internal/labelhash"
	"github.com/storageproofs/sdr-porep/pkg/graph"
	"github.com/storageproofs/sdr-porep/pkg/stacked"
	"github.com/storageproofs/sdr-porep/pkg/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "demo":
		runDemo()
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage:
  go run ./cmd/sdrporep demo     Replicate, prove, extract, and verify a small in-memory sector`)
}

func runDemo() {
	params := config.DefaultParams()
	g := graph.NewBucketGraph(params.NodeCount, params.BaseDegree, params.ExpanderDegree, 42)

	var replicaID [32]byte
	if _, err := rand.Read(replicaID[:]); err != nil {
		log.Fatal(err)
	}

	data := make([]stacked.Digest, params.NodeCount)
	for i := range data {
		if _, err := rand.Read(data[i][:]); err != nil {
			log.Fatal(err)
		}
		data[i][31] &= 0x3F
	}

	newStore := func(layer int) (store.Store, error) {
		return store.NewMemStore(params.NodeCount), nil
	}

	rep := &stacked.Replicator{Graph: g, Backend: labelhash.SHA256, Params: params, NewStore: newStore}
	tau, paux, taux, err := rep.Replicate(context.Background(), replicaID, data)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("CommD=%x\nCommR=%x\n", tau.CommD, tau.CommR)

	seed := [32]byte{1, 2, 3}
	challenges := stacked.DeriveChallenges(seed, 4, params.NodeCount)
	pub := stacked.PublicInputs{ReplicaID: replicaID, Seed: seed, Tau: tau, Challenges: challenges}

	prover := &stacked.Prover{Graph: g, Predicate: stacked.DefaultPredicate(params.LayerCount)}
	proofs, err := prover.Prove(pub, taux)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("generated %d proofs\n", len(proofs))

	verifier := &stacked.Verifier{Backend: labelhash.SHA256}
	if bad := verifier.Verify(pub, paux, proofs); bad >= 0 {
		log.Fatalf("proof %d failed verification", bad)
	}
	fmt.Println("all proofs verified")

	replica := make([]stacked.Digest, params.NodeCount)
	for node := uint64(0); node < params.NodeCount; node++ {
		v, err := taux.TreeRLast.Prove(int(node))
		if err != nil {
			log.Fatal(err)
		}
		replica[node] = v.Leaf
	}

	extractor := &stacked.Extractor{Graph: g, Backend: labelhash.SHA256, Params: params, NewStore: newStore}
	recovered, err := extractor.Extract(replicaID, replica)
	if err != nil {
		log.Fatal(err)
	}
	for i := range data {
		if data[i] != recovered[i] {
			log.Fatalf("extraction mismatch at node %d", i)
		}
	}
	fmt.Println("extraction round-trip OK")
}

// Command compile drives circuit compilation and trusted-setup key
// generation for the illustrative column circuit in internal/circuitiface.
// This is ambient tooling around the external SNARK collaborator — the
// stacked-DRG replicate/prove/extract/verify pipeline itself never calls it.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/storageproofs/sdr-porep/internal/circuitiface"
	"github.com/storageproofs/sdr-porep/pkg/setup"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	newCircuit := circuitiface.NewColumnCircuit

	switch os.Args[1] {
	case "dev":
		if err := setup.DevSetup(newCircuit(), ".", "column"); err != nil {
			log.Fatal(err)
		}
	case "ceremony":
		if len(os.Args) < 3 {
			printUsage()
			os.Exit(1)
		}
		handleCeremony(newCircuit)
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleCeremony(newCircuit func() *circuitiface.ColumnCircuit) {
	switch os.Args[2] {
	case "p1-init":
		if err := setup.CeremonyP1Init(newCircuit()); err != nil {
			log.Fatal(err)
		}
	case "p1-contribute":
		if err := setup.CeremonyP1Contribute(); err != nil {
			log.Fatal(err)
		}
	case "p1-verify":
		if len(os.Args) < 4 {
			log.Fatal("usage: go run ./cmd/compile ceremony p1-verify BEACON_HEX")
		}
		if err := setup.CeremonyP1Verify(newCircuit(), os.Args[3]); err != nil {
			log.Fatal(err)
		}
	case "p2-init":
		if err := setup.CeremonyP2Init(newCircuit()); err != nil {
			log.Fatal(err)
		}
	case "p2-contribute":
		if err := setup.CeremonyP2Contribute(); err != nil {
			log.Fatal(err)
		}
	case "p2-verify":
		if len(os.Args) < 4 {
			log.Fatal("usage: go run ./cmd/compile ceremony p2-verify BEACON_HEX")
		}
		if err := setup.CeremonyP2Verify(newCircuit(), os.Args[3], ".", "column"); err != nil {
			log.Fatal(err)
		}
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage:
  go run ./cmd/compile dev                         Dev mode (single-party/unsafe setup, NOT for production)

  go run ./cmd/compile ceremony p1-init            Initialize Phase 1 (Powers of Tau)
  go run ./cmd/compile ceremony p1-contribute      Add a Phase 1 contribution
  go run ./cmd/compile ceremony p1-verify HEX      Verify Phase 1 & seal with random beacon

  go run ./cmd/compile ceremony p2-init            Initialize Phase 2 (circuit-specific)
  go run ./cmd/compile ceremony p2-contribute      Add a Phase 2 contribution
  go run ./cmd/compile ceremony p2-verify HEX      Verify Phase 2, seal & export keys

Security: 1-of-N honest — if any single contributor is honest, the setup is secure.
Beacon: use a public randomness source (e.g. League of Entropy) evaluated AFTER the last contribution.`)
}

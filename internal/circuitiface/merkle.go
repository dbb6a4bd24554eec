package circuitiface

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash"
	"github.com/consensys/gnark/std/permutation/poseidon2"
)

// MerkleOpeningCircuit verifies that LeafValue opens to RootHash along
// ProofPath, using the Directions bits to decide sibling placement at each
// level. It is the constraint-system analogue of merkletree.Verify.
type MerkleOpeningCircuit struct {
	RootHash frontend.Variable `gnark:"rootHash"`

	LeafValue  frontend.Variable                `gnark:"leafValue"`
	ProofPath  [MaxColumnDepth]frontend.Variable `gnark:"proofPath"`
	Directions [MaxColumnDepth]frontend.Variable `gnark:"directions"`
}

// Define implements the circuit logic. Levels beyond the proof's actual
// depth carry a zero sibling and leave the running hash untouched.
func (c *MerkleOpeningCircuit) Define(api frontend.API) error {
	p, err := poseidon2.NewPoseidon2FromParameters(api, 2, 6, 50)
	if err != nil {
		return err
	}
	hasher := hash.NewMerkleDamgardHasher(api, p, 0)

	current := c.LeafValue

	for i := 0; i < MaxColumnDepth; i++ {
		sibling := c.ProofPath[i]
		direction := c.Directions[i]
		siblingIsZero := api.IsZero(sibling)

		hasher.Reset()
		left := api.Select(direction, sibling, current)
		right := api.Select(direction, current, sibling)
		hasher.Write(left, right)
		next := hasher.Sum()

		current = api.Select(siblingIsZero, current, next)
	}

	api.AssertIsEqual(current, c.RootHash)
	return nil
}

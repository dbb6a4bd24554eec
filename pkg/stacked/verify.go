package stacked

import (
	"github.com/storageproofs/sdr-porep/internal/commitment"
	"github.com/storageproofs/sdr-porep/internal/labelhash"
	"github.com/storageproofs/sdr-porep/pkg/field"
	"github.com/storageproofs/sdr-porep/pkg/merkletree"
)

// Verifier checks Proofs against PublicInputs and PersistentAux without
// needing the TemporaryAux working state a Prover holds. The design notes
// treat verification as a contract the external circuit front-end
// ultimately enforces in zero knowledge; this is the plain (non-circuit)
// reference implementation of that same contract, used by tests and by
// the Extractor's callers to sanity-check a Prover's output.
type Verifier struct {
	Backend labelhash.Backend
}

// Verify checks every proof in proofs against pub and paux, returning the
// index of the first failing proof, or -1 if all pass.
func (v *Verifier) Verify(pub PublicInputs, paux PersistentAux, proofs []Proof) int {
	for i, proof := range proofs {
		if !v.verifyOne(pub, paux, proof) {
			return i
		}
	}
	return -1
}

func (v *Verifier) verifyOne(pub PublicInputs, paux PersistentAux, proof Proof) bool {
	if !merkletree.Verify(proof.CommDProof, pub.Tau.CommD) {
		return false
	}
	if !merkletree.Verify(proof.CommRLastProof, paux.CommRLast) {
		return false
	}

	col := proof.ReplicaColumn.Column
	if commitment.Of(col.NodeLabels...) != proof.ReplicaColumn.InclusionProof.Leaf {
		return false
	}
	if !merkletree.Verify(proof.ReplicaColumn.InclusionProof, paux.CommC) {
		return false
	}

	for i := range col.BaseParents {
		leaf := columnDigestOf(col.BaseLabels[i])
		if leaf != proof.ReplicaColumn.BaseInclusions[i].Leaf {
			return false
		}
		if !merkletree.Verify(proof.ReplicaColumn.BaseInclusions[i], paux.CommC) {
			return false
		}
	}
	for i := range col.ExpanderParents {
		leaf := columnDigestOf(col.ExpanderLabels[i])
		if leaf != proof.ReplicaColumn.ExpanderInclusions[i].Leaf {
			return false
		}
		if !merkletree.Verify(proof.ReplicaColumn.ExpanderInclusions[i], paux.CommC) {
			return false
		}
	}

	layerCount := len(col.NodeLabels)
	hc := labelhash.New(v.Backend)
	for _, ep := range proof.EncodingProofs {
		if !v.checkEncodingProof(hc, pub.ReplicaID, ep) {
			return false
		}
		// Bind the revealed label to the committed trees (§4.6/§4.8): for
		// layer ell<L it must be the column's own layer-ell entry (already
		// tied to CommC above); for the last layer it must be the value
		// the replica encoding actually used, recovered from CommR_last
		// and CommD.
		if ep.Layer < layerCount {
			if ep.Label != col.NodeLabels[ep.Layer-1] {
				return false
			}
		} else {
			var enc Encoder
			key := enc.Decode(proof.CommRLastProof.Leaf, proof.CommDProof.Leaf)
			if ep.Label != key {
				return false
			}
		}
	}

	return true
}

func (v *Verifier) checkEncodingProof(hc *labelhash.HashCore, replicaID Digest, ep EncodingProof) bool {
	hc.Reset()
	hc.WriteReplicaID(replicaID)
	hc.WriteNodeIndex(ep.NodeIndex)
	for _, label := range ep.BaseLabels {
		hc.WriteParentLabel(label)
	}
	if ep.Layer > 1 {
		for _, label := range ep.ExpanderLabels {
			hc.WriteParentLabel(label)
		}
	}
	label := hc.Finalize()
	field.Mask(&label)
	return label == ep.Label
}

func columnDigestOf(layerLabels []Digest) Digest {
	return commitment.Of(layerLabels...)
}

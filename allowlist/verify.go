package allowlist

import (
	"bytes"
	"fmt"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// Proof is a merkle inclusion proof: the leaf's index in the committed tree
// and the sibling hashes bottom-up.
type Proof struct {
	Index uint32   `json:"index"`
	Nodes [][]byte `json:"nodes"`
}

// ComputeRoot recomputes the merkle root from a leaf hash, its index, and the
// sibling path (bottom-up).
//
// Algorithm:
//
//	hash = leafHash
//	for i, node in nodes:
//	    if bit i of index is 0:  hash = Sha256d(hash || node)
//	    else:                    hash = Sha256d(node || hash)
func ComputeRoot(leafHash []byte, index uint32, nodes [][]byte) []byte {
	if len(leafHash) != HashSize {
		return nil
	}

	hash := make([]byte, HashSize)
	copy(hash, leafHash)

	for i, node := range nodes {
		if len(node) != HashSize {
			return nil
		}
		combined := make([]byte, 2*HashSize)
		if (index>>uint(i))&1 == 0 {
			// Current hash is on the left
			copy(combined[:HashSize], hash)
			copy(combined[HashSize:], node)
		} else {
			// Current hash is on the right
			copy(combined[:HashSize], node)
			copy(combined[HashSize:], hash)
		}
		hash = bsvhash.Sha256d(combined)
	}

	return hash
}

// Verify checks that entry is a committed leaf of root. It is a pure function
// over the root and the proof path; the caller supplies the quota it expects
// the leaf to commit (a proof for a different quota fails).
func Verify(root []byte, entry Entry, proof *Proof) (bool, error) {
	if proof == nil {
		return false, ErrNilProof
	}
	if len(root) != HashSize {
		return false, fmt.Errorf("%w: must be %d bytes", ErrInvalidRoot, HashSize)
	}
	for _, node := range proof.Nodes {
		if len(node) != HashSize {
			return false, fmt.Errorf("%w: must be %d bytes", ErrInvalidNode, HashSize)
		}
	}

	computed := ComputeRoot(LeafHash(entry), proof.Index, proof.Nodes)
	if computed == nil || !bytes.Equal(computed, root) {
		return false, ErrProofInvalid
	}
	return true, nil
}

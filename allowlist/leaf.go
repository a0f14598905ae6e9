// Package allowlist implements the merkle allow-list commitment used by gated
// sale phases: a fixed-shape (address, quota) leaf hashed with a versioned
// scheme, a stateless proof verifier, and the reference tree builder shared by
// the off-chain generation job and the test suite.
package allowlist

import (
	"encoding/binary"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"

	"github.com/mintgateorg/libmintgate-go/chain"
)

const (
	// LeafVersion tags the leaf commitment scheme. Bump on any change to
	// the leaf layout so old proofs cannot verify against new roots.
	LeafVersion = 0x01

	// leafSize is version(1) + address(20) + quota(8).
	leafSize = 29

	// HashSize is the size of a node hash in bytes.
	HashSize = 32
)

// Entry is one committed allow-list member: an address and the number of
// units it may claim.
type Entry struct {
	Address chain.Address `json:"address"`
	Quota   uint64        `json:"quota"`
}

// SerializeLeaf encodes an entry in the committed leaf layout.
func SerializeLeaf(e Entry) []byte {
	buf := make([]byte, leafSize)
	buf[0] = LeafVersion
	copy(buf[1:21], e.Address[:])
	binary.BigEndian.PutUint64(buf[21:29], e.Quota)
	return buf
}

// LeafHash computes the committed hash of an entry, double-SHA256 of the
// serialized leaf.
func LeafHash(e Entry) []byte {
	return bsvhash.Sha256d(SerializeLeaf(e))
}

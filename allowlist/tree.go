package allowlist

import (
	"fmt"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// Tree is a built merkle allow-list. Level 0 holds the leaf hashes; the last
// level holds the single root. Odd levels are padded by duplicating the last
// node.
type Tree struct {
	entries []Entry
	levels  [][][]byte
}

// BuildTree builds the merkle tree over the given entries. Entry order is
// significant: proofs carry the leaf index, so the off-chain job and the
// verifier must agree on it. Duplicate addresses are rejected since a wallet
// holds exactly one quota per phase.
func BuildTree(entries []Entry) (*Tree, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		key := e.Address.String()
		if seen[key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAddress, key)
		}
		seen[key] = true
	}

	level := make([][]byte, len(entries))
	for i, e := range entries {
		level[i] = LeafHash(e)
	}

	levels := [][][]byte{level}
	for len(level) > 1 {
		// If odd number, duplicate last element
		if len(level)%2 != 0 {
			dup := make([]byte, HashSize)
			copy(dup, level[len(level)-1])
			level = append(level, dup)
			levels[len(levels)-1] = level
		}

		next := make([][]byte, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			combined := make([]byte, 2*HashSize)
			copy(combined[:HashSize], level[i])
			copy(combined[HashSize:], level[i+1])
			next[i/2] = bsvhash.Sha256d(combined)
		}
		levels = append(levels, next)
		level = next
	}

	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Tree{entries: cp, levels: levels}, nil
}

// Root returns the 32-byte merkle root.
func (t *Tree) Root() []byte {
	root := t.levels[len(t.levels)-1][0]
	out := make([]byte, HashSize)
	copy(out, root)
	return out
}

// Entries returns the committed entries in leaf order.
func (t *Tree) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Prove returns the inclusion proof for the leaf at index i.
func (t *Tree) Prove(i uint32) (*Proof, error) {
	if int(i) >= len(t.entries) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(t.entries))
	}

	proof := &Proof{Index: i}
	idx := int(i)
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := idx ^ 1
		if sibling >= len(level) {
			// Odd tail duplicated during build
			sibling = idx
		}
		node := make([]byte, HashSize)
		copy(node, level[sibling])
		proof.Nodes = append(proof.Nodes, node)
		idx /= 2
	}
	return proof, nil
}

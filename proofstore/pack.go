package proofstore

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mintgateorg/libmintgate-go/allowlist"
)

// Pack is a published allow-list proof bundle: the committed root, the
// entries in leaf order, and one proof per entry. Buyers fetch the pack by
// the phase's merkleProofReference and pick their own proof out of it.
type Pack struct {
	Root    []byte            `json:"root"`
	Entries []allowlist.Entry `json:"entries"`
	Proofs  []allowlist.Proof `json:"proofs"`
}

// BuildPack assembles the pack for a built tree.
func BuildPack(tree *allowlist.Tree) (*Pack, error) {
	entries := tree.Entries()
	pack := &Pack{
		Root:    tree.Root(),
		Entries: entries,
		Proofs:  make([]allowlist.Proof, len(entries)),
	}
	for i := range entries {
		proof, err := tree.Prove(uint32(i))
		if err != nil {
			return nil, err
		}
		pack.Proofs[i] = *proof
	}
	return pack, nil
}

// Encode serializes the pack for publication.
func (p *Pack) Encode() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPack, err)
	}
	return data, nil
}

// DecodePack parses published pack data and checks its internal shape.
func DecodePack(data []byte) (*Pack, error) {
	var p Pack
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPack, err)
	}
	if len(p.Root) != allowlist.HashSize {
		return nil, fmt.Errorf("%w: root must be %d bytes", ErrInvalidPack, allowlist.HashSize)
	}
	if len(p.Entries) != len(p.Proofs) {
		return nil, fmt.Errorf("%w: %d entries, %d proofs", ErrInvalidPack, len(p.Entries), len(p.Proofs))
	}
	return &p, nil
}

// ProofFor returns the entry and proof for the given claimant address, or
// ErrNotFound if the address is not in the pack.
func (p *Pack) ProofFor(addrHex string) (*allowlist.Entry, *allowlist.Proof, error) {
	for i := range p.Entries {
		if p.Entries[i].Address.String() == addrHex {
			return &p.Entries[i], &p.Proofs[i], nil
		}
	}
	return nil, nil, fmt.Errorf("%w: address %s", ErrNotFound, addrHex)
}

// Publish encodes the pack, stores it, and returns its reference. The
// reference is what a phase carries as merkleProofReference.
func Publish(store *FileStore, tree *allowlist.Tree) ([]byte, error) {
	pack, err := BuildPack(tree)
	if err != nil {
		return nil, err
	}
	data, err := pack.Encode()
	if err != nil {
		return nil, err
	}
	ref, err := store.Put(data)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(Ref(data), ref) {
		return nil, ErrHashMismatch
	}
	return ref, nil
}

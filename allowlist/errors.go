package allowlist

import "errors"

var (
	// ErrProofInvalid indicates the proof does not verify against the root.
	ErrProofInvalid = errors.New("allowlist: merkle proof invalid")

	// ErrInvalidRoot indicates the root is not 32 bytes.
	ErrInvalidRoot = errors.New("allowlist: invalid merkle root")

	// ErrInvalidNode indicates a proof node is not 32 bytes.
	ErrInvalidNode = errors.New("allowlist: invalid proof node")

	// ErrNilProof indicates a nil proof was supplied.
	ErrNilProof = errors.New("allowlist: nil proof")

	// ErrNoEntries indicates a tree build was attempted with no entries.
	ErrNoEntries = errors.New("allowlist: no entries")

	// ErrIndexOutOfRange indicates a prove index beyond the leaf count.
	ErrIndexOutOfRange = errors.New("allowlist: leaf index out of range")

	// ErrDuplicateAddress indicates the same address appears twice in a tree.
	ErrDuplicateAddress = errors.New("allowlist: duplicate address")
)

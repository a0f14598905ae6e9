// Package chain models the execution environment the marketplace engines run
// against: account addresses, the native-currency ledger, the asset-ledger and
// access-control collaborators, and the host clock.
package chain

import (
	"encoding/hex"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// AddressSize is the length of an account address in bytes.
const AddressSize = 20

// Address identifies an account: HASH160(compressed pubkey) for key-controlled
// accounts, or a derived address for deployed payout handlers.
type Address [AddressSize]byte

// ZeroAddress is the unset address. Registries return it for unknown keys.
var ZeroAddress Address

// AddressFromPubKey derives the address of a key-controlled account,
// HASH160(compressed pubkey) = RIPEMD160(SHA256(pubkey)).
func AddressFromPubKey(pub *ec.PublicKey) Address {
	var addr Address
	copy(addr[:], bsvhash.Hash160(pub.Compressed()))
	return addr
}

// AddressFromBytes converts a 20-byte slice to an Address.
func AddressFromBytes(b []byte) (Address, error) {
	var addr Address
	if len(b) != AddressSize {
		return addr, fmt.Errorf("%w: got %d bytes", ErrInvalidAddress, len(b))
	}
	copy(addr[:], b)
	return addr, nil
}

// ParseAddress decodes a 40-character hex address string.
func ParseAddress(s string) (Address, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ZeroAddress, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return AddressFromBytes(b)
}

// IsZero reports whether the address is the zero address.
func (a Address) IsZero() bool { return a == ZeroAddress }

// String returns the hex encoding of the address.
func (a Address) String() string { return hex.EncodeToString(a[:]) }

// MarshalText implements encoding.TextMarshaler (hex).
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	addr, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

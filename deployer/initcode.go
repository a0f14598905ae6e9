// Package deployer creates payout handler instances at addresses computable
// in advance from the deployer identity, a caller-chosen salt, and the
// handler's init code. Integrators can register the derived address in the
// royalty registry before the handler actually exists.
package deployer

import (
	"encoding/binary"
	"fmt"

	"github.com/mintgateorg/libmintgate-go/chain"
)

// Handler variants encodable as init code.
const (
	VariantSingleReceiver = 0x01
	VariantSplitter       = 0x02
)

// initCodeVersion tags the init code layout.
const initCodeVersion = 0x01

// HandlerSpec describes a payout handler to deploy.
// SingleReceiver uses Receiver; Splitter uses Recipients/SharesBps.
type HandlerSpec struct {
	Variant    byte
	Receiver   chain.Address
	Recipients []chain.Address
	SharesBps  []uint32
}

// EncodeInitCode serializes a handler spec into its canonical init code.
// The encoding is deterministic: the same spec always yields the same bytes,
// so the same code hash and the same derived address.
//
// Layout:
//
//	version(1) variant(1)
//	single receiver: receiver(20)
//	splitter:        count(4 BE) then count × [recipient(20) share_bps(4 BE)]
func EncodeInitCode(spec *HandlerSpec) ([]byte, error) {
	switch spec.Variant {
	case VariantSingleReceiver:
		buf := make([]byte, 2+chain.AddressSize)
		buf[0] = initCodeVersion
		buf[1] = VariantSingleReceiver
		copy(buf[2:], spec.Receiver[:])
		return buf, nil

	case VariantSplitter:
		if len(spec.Recipients) != len(spec.SharesBps) {
			return nil, fmt.Errorf("%w: %d recipients, %d shares",
				ErrInvalidInitCode, len(spec.Recipients), len(spec.SharesBps))
		}
		buf := make([]byte, 6+len(spec.Recipients)*(chain.AddressSize+4))
		buf[0] = initCodeVersion
		buf[1] = VariantSplitter
		binary.BigEndian.PutUint32(buf[2:6], uint32(len(spec.Recipients)))
		offset := 6
		for i, r := range spec.Recipients {
			copy(buf[offset:offset+chain.AddressSize], r[:])
			offset += chain.AddressSize
			binary.BigEndian.PutUint32(buf[offset:offset+4], spec.SharesBps[i])
			offset += 4
		}
		return buf, nil

	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownVariant, spec.Variant)
	}
}

// DecodeInitCode parses init code back into a handler spec.
func DecodeInitCode(code []byte) (*HandlerSpec, error) {
	if len(code) < 2 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidInitCode, len(code))
	}
	if code[0] != initCodeVersion {
		return nil, fmt.Errorf("%w: version 0x%02x", ErrInvalidInitCode, code[0])
	}

	switch code[1] {
	case VariantSingleReceiver:
		if len(code) != 2+chain.AddressSize {
			return nil, fmt.Errorf("%w: %d bytes for single receiver", ErrInvalidInitCode, len(code))
		}
		receiver, err := chain.AddressFromBytes(code[2:])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInitCode, err)
		}
		return &HandlerSpec{Variant: VariantSingleReceiver, Receiver: receiver}, nil

	case VariantSplitter:
		if len(code) < 6 {
			return nil, fmt.Errorf("%w: %d bytes for splitter", ErrInvalidInitCode, len(code))
		}
		count := int(binary.BigEndian.Uint32(code[2:6]))
		expected := 6 + count*(chain.AddressSize+4)
		if len(code) != expected {
			return nil, fmt.Errorf("%w: expected %d bytes for %d recipients, got %d",
				ErrInvalidInitCode, expected, count, len(code))
		}
		spec := &HandlerSpec{
			Variant:    VariantSplitter,
			Recipients: make([]chain.Address, count),
			SharesBps:  make([]uint32, count),
		}
		offset := 6
		for i := 0; i < count; i++ {
			copy(spec.Recipients[i][:], code[offset:offset+chain.AddressSize])
			offset += chain.AddressSize
			spec.SharesBps[i] = binary.BigEndian.Uint32(code[offset : offset+4])
			offset += 4
		}
		return spec, nil

	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownVariant, code[1])
	}
}

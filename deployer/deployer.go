package deployer

import (
	"encoding/hex"
	"fmt"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/mintgateorg/libmintgate-go/chain"
	"github.com/mintgateorg/libmintgate-go/events"
	"github.com/mintgateorg/libmintgate-go/royalty"
)

// SaltSize is the length of a deployment salt in bytes.
const SaltSize = 32

// Salt is a caller-chosen deployment salt.
type Salt [SaltSize]byte

// ComputeAddress derives the handler address for a deployment before it
// happens:
//
//	addr = keccak256(0xff ‖ deployer ‖ salt ‖ keccak256(initCode))[12:32]
//
// The derivation is a pure function of its inputs, independent of deployment
// order.
func ComputeAddress(deployerAddr chain.Address, salt Salt, initCode []byte) chain.Address {
	codeHash := keccak256(initCode)

	preimage := make([]byte, 0, 1+chain.AddressSize+SaltSize+32)
	preimage = append(preimage, 0xff)
	preimage = append(preimage, deployerAddr[:]...)
	preimage = append(preimage, salt[:]...)
	preimage = append(preimage, codeHash...)

	digest := keccak256(preimage)
	var addr chain.Address
	copy(addr[:], digest[12:])
	return addr
}

// keccak256 computes the legacy Keccak-256 digest (not NIST SHA3-256).
func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// Deployer instantiates payout handlers at deterministic addresses and keeps
// the deployment registry used for collision detection and handler lookup.
type Deployer struct {
	addr    chain.Address
	clock   chain.Clock
	emitter *events.Emitter

	mu       sync.RWMutex
	deployed map[chain.Address]royalty.Handler
}

// New creates a Deployer identified by addr.
func New(addr chain.Address, clock chain.Clock, emitter *events.Emitter) *Deployer {
	if clock == nil {
		clock = chain.SystemClock{}
	}
	return &Deployer{
		addr:     addr,
		clock:    clock,
		emitter:  emitter,
		deployed: make(map[chain.Address]royalty.Handler),
	}
}

// Address returns the deployer's own identity address.
func (d *Deployer) Address() chain.Address { return d.addr }

// PredictAddress returns the address Deploy would use for the given init
// code and salt, without deploying.
func (d *Deployer) PredictAddress(salt Salt, initCode []byte) chain.Address {
	return ComputeAddress(d.addr, salt, initCode)
}

// Deploy instantiates the handler described by initCode at its deterministic
// address. Fails with ErrAlreadyDeployed if that address is occupied.
func (d *Deployer) Deploy(salt Salt, initCode []byte) (royalty.Handler, error) {
	spec, err := DecodeInitCode(initCode)
	if err != nil {
		return nil, err
	}

	addr := ComputeAddress(d.addr, salt, initCode)

	var handler royalty.Handler
	switch spec.Variant {
	case VariantSingleReceiver:
		handler, err = royalty.NewSingleReceiver(addr, spec.Receiver)
	case VariantSplitter:
		handler, err = royalty.NewSplitter(addr, spec.Recipients, spec.SharesBps)
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownVariant, spec.Variant)
	}
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	if _, ok := d.deployed[addr]; ok {
		d.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrAlreadyDeployed, addr)
	}
	d.deployed[addr] = handler
	d.mu.Unlock()

	if err := d.emitter.Emit(&events.Event{
		Kind:    events.KindHandlerDeployed,
		Time:    d.clock.Now(),
		Actor:   d.addr.String(),
		Handler: addr.String(),
		Salt:    hex.EncodeToString(salt[:]),
	}); err != nil {
		return nil, err
	}
	return handler, nil
}

// HandlerAt returns the handler deployed at addr.
func (d *Deployer) HandlerAt(addr chain.Address) (royalty.Handler, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	handler, ok := d.deployed[addr]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHandler, addr)
	}
	return handler, nil
}

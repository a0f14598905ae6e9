package royalty

import (
	"fmt"

	"github.com/mintgateorg/libmintgate-go/chain"
	"github.com/mintgateorg/libmintgate-go/events"
	"github.com/mintgateorg/libmintgate-go/ledger"
)

// Registry maps edition/creator keys to deployed payout handler addresses.
// Bindings are admin-mutable by design so a bad deployment can be corrected
// after the fact.
type Registry struct {
	store   ledger.RoyaltyStore
	access  chain.AccessControl
	clock   chain.Clock
	emitter *events.Emitter
}

// NewRegistry creates a registry over the given binding store.
func NewRegistry(store ledger.RoyaltyStore, access chain.AccessControl, clock chain.Clock, emitter *events.Emitter) *Registry {
	if clock == nil {
		clock = chain.SystemClock{}
	}
	return &Registry{store: store, access: access, clock: clock, emitter: emitter}
}

// Register binds key to a payout handler address, overwriting any prior
// binding. Only admins may call it.
func (r *Registry) Register(caller chain.Address, key string, handler chain.Address) error {
	if !r.access.HasRole(chain.RoleAdmin, caller) {
		return fmt.Errorf("%w: %s", ErrNotAuthorized, caller)
	}
	if err := r.store.PutBinding(key, handler); err != nil {
		return fmt.Errorf("royalty: store binding: %w", err)
	}
	return r.emitter.Emit(&events.Event{
		Kind:    events.KindHandlerRegistered,
		Time:    r.clock.Now(),
		Key:     key,
		Actor:   caller.String(),
		Handler: handler.String(),
	})
}

// Resolve returns the handler address bound to key, or the zero address if
// none is bound. Callers treat the zero address as "pay the creator
// directly".
func (r *Registry) Resolve(key string) chain.Address {
	handler, err := r.store.GetBinding(key)
	if err != nil {
		return chain.ZeroAddress
	}
	return handler
}

// Distribute runs a handler's distribution and emits one FundsDistributed
// event per payment made.
func (r *Registry) Distribute(h Handler, bank chain.Bank) ([]Payment, error) {
	payments, err := h.Distribute(bank)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if err := r.emitter.Emit(&events.Event{
			Kind:      events.KindFundsDistributed,
			Time:      r.clock.Now(),
			Handler:   h.Address().String(),
			Recipient: p.Recipient.String(),
			Amount:    p.Amount.String(),
		}); err != nil {
			return nil, err
		}
	}
	return payments, nil
}

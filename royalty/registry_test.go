package royalty

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintgateorg/libmintgate-go/chain"
	"github.com/mintgateorg/libmintgate-go/events"
	"github.com/mintgateorg/libmintgate-go/ledger"
)

func newTestRegistry(t *testing.T) (*Registry, *ledger.MemStore, *chain.MockAccessControl) {
	t.Helper()
	store := ledger.NewMemStore()
	access := chain.NewMockAccessControl()
	emitter := events.NewEmitter(nil, store)
	return NewRegistry(store, access, nil, emitter), store, access
}

func TestRegistry_Register(t *testing.T) {
	reg, store, access := newTestRegistry(t)
	admin := makeAddr(0xAD)
	handler := makeAddr(0x10)
	access.Grant(chain.RoleAdmin, admin)

	key := ledger.EditionKey(7)
	require.NoError(t, reg.Register(admin, key, handler))
	assert.Equal(t, handler, reg.Resolve(key))

	evs, err := store.ListEvents()
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, events.KindHandlerRegistered, evs[0].Kind)
	assert.Equal(t, key, evs[0].Key)
	assert.Equal(t, handler.String(), evs[0].Handler)
}

func TestRegistry_Register_NotAuthorized(t *testing.T) {
	reg, _, _ := newTestRegistry(t)

	err := reg.Register(makeAddr(0x01), ledger.EditionKey(7), makeAddr(0x10))
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Equal(t, chain.ZeroAddress, reg.Resolve(ledger.EditionKey(7)))
}

func TestRegistry_Register_Overwrite(t *testing.T) {
	reg, _, access := newTestRegistry(t)
	admin := makeAddr(0xAD)
	access.Grant(chain.RoleAdmin, admin)

	key := ledger.CreatorKey(makeAddr(0x05))
	require.NoError(t, reg.Register(admin, key, makeAddr(0x10)))
	require.NoError(t, reg.Register(admin, key, makeAddr(0x11)))
	assert.Equal(t, makeAddr(0x11), reg.Resolve(key))
}

func TestRegistry_Resolve_Unbound(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	assert.Equal(t, chain.ZeroAddress, reg.Resolve(ledger.EditionKey(99)))
}

func TestRegistry_Distribute_EmitsPerPayment(t *testing.T) {
	reg, store, _ := newTestRegistry(t)
	handlerAddr := makeAddr(0x10)
	r1 := makeAddr(0x01)
	r2 := makeAddr(0x02)

	h, err := NewSplitter(handlerAddr, []chain.Address{r1, r2}, []uint32{6000, 4000})
	require.NoError(t, err)

	bank := chain.NewMockBank()
	bank.Mint(handlerAddr, math.NewInt(1000))

	payments, err := reg.Distribute(h, bank)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, math.NewInt(600), bank.BalanceOf(r1))
	assert.Equal(t, math.NewInt(400), bank.BalanceOf(r2))

	evs, err := store.ListEvents()
	require.NoError(t, err)
	require.Len(t, evs, 2)
	for _, ev := range evs {
		assert.Equal(t, events.KindFundsDistributed, ev.Kind)
		assert.Equal(t, handlerAddr.String(), ev.Handler)
	}
	assert.Equal(t, "600", evs[0].Amount)
	assert.Equal(t, "400", evs[1].Amount)
}

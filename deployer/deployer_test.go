package deployer

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintgateorg/libmintgate-go/chain"
	"github.com/mintgateorg/libmintgate-go/events"
	"github.com/mintgateorg/libmintgate-go/ledger"
	"github.com/mintgateorg/libmintgate-go/royalty"
)

func makeAddr(seed byte) chain.Address {
	var addr chain.Address
	for i := range addr {
		addr[i] = seed
	}
	return addr
}

func makeSalt(seed byte) Salt {
	var salt Salt
	for i := range salt {
		salt[i] = seed
	}
	return salt
}

func singleReceiverCode(t *testing.T, receiver chain.Address) []byte {
	t.Helper()
	code, err := EncodeInitCode(&HandlerSpec{Variant: VariantSingleReceiver, Receiver: receiver})
	require.NoError(t, err)
	return code
}

func splitterCode(t *testing.T, recipients []chain.Address, shares []uint32) []byte {
	t.Helper()
	code, err := EncodeInitCode(&HandlerSpec{
		Variant:    VariantSplitter,
		Recipients: recipients,
		SharesBps:  shares,
	})
	require.NoError(t, err)
	return code
}

func TestInitCodeRoundTrip(t *testing.T) {
	single := &HandlerSpec{Variant: VariantSingleReceiver, Receiver: makeAddr(0x01)}
	code, err := EncodeInitCode(single)
	require.NoError(t, err)
	decoded, err := DecodeInitCode(code)
	require.NoError(t, err)
	assert.Equal(t, single, decoded)

	splitter := &HandlerSpec{
		Variant:    VariantSplitter,
		Recipients: []chain.Address{makeAddr(0x01), makeAddr(0x02)},
		SharesBps:  []uint32{7000, 3000},
	}
	code, err = EncodeInitCode(splitter)
	require.NoError(t, err)
	decoded, err = DecodeInitCode(code)
	require.NoError(t, err)
	assert.Equal(t, splitter, decoded)
}

func TestDecodeInitCode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		code    []byte
		wantErr error
	}{
		{"empty", nil, ErrInvalidInitCode},
		{"bad version", []byte{0x02, VariantSingleReceiver}, ErrInvalidInitCode},
		{"unknown variant", []byte{0x01, 0x09}, ErrUnknownVariant},
		{"single receiver truncated", []byte{0x01, VariantSingleReceiver, 0xAA}, ErrInvalidInitCode},
		{"splitter truncated", []byte{0x01, VariantSplitter, 0, 0}, ErrInvalidInitCode},
		{"splitter count mismatch", []byte{0x01, VariantSplitter, 0, 0, 0, 2}, ErrInvalidInitCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeInitCode(tt.code)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestComputeAddress_Deterministic(t *testing.T) {
	deployerAddr := makeAddr(0xDE)
	salt := makeSalt(0x01)
	code := []byte{0x01, VariantSingleReceiver}

	a := ComputeAddress(deployerAddr, salt, code)
	b := ComputeAddress(deployerAddr, salt, code)
	assert.Equal(t, a, b)
	assert.False(t, a.IsZero())
}

func TestComputeAddress_InputSensitivity(t *testing.T) {
	deployerAddr := makeAddr(0xDE)
	salt := makeSalt(0x01)
	addr1 := makeAddr(0x01)
	code := append([]byte{0x01, VariantSingleReceiver}, addr1[:]...)
	base := ComputeAddress(deployerAddr, salt, code)

	assert.NotEqual(t, base, ComputeAddress(makeAddr(0xDF), salt, code))
	assert.NotEqual(t, base, ComputeAddress(deployerAddr, makeSalt(0x02), code))

	addr2 := makeAddr(0x02)
	otherCode := append([]byte{0x01, VariantSingleReceiver}, addr2[:]...)
	assert.NotEqual(t, base, ComputeAddress(deployerAddr, salt, otherCode))
}

func TestDeployer_PredictMatchesDeploy(t *testing.T) {
	d := New(makeAddr(0xDE), nil, nil)
	salt := makeSalt(0x07)
	code := singleReceiverCode(t, makeAddr(0x01))

	predicted := d.PredictAddress(salt, code)

	handler, err := d.Deploy(salt, code)
	require.NoError(t, err)
	assert.Equal(t, predicted, handler.Address())

	got, err := d.HandlerAt(predicted)
	require.NoError(t, err)
	assert.Equal(t, handler, got)
}

func TestDeployer_AlreadyDeployed(t *testing.T) {
	d := New(makeAddr(0xDE), nil, nil)
	salt := makeSalt(0x07)
	code := singleReceiverCode(t, makeAddr(0x01))

	_, err := d.Deploy(salt, code)
	require.NoError(t, err)

	_, err = d.Deploy(salt, code)
	assert.ErrorIs(t, err, ErrAlreadyDeployed)

	// A different salt lands at a different address and succeeds.
	_, err = d.Deploy(makeSalt(0x08), code)
	assert.NoError(t, err)
}

func TestDeployer_DeploySplitter(t *testing.T) {
	store := ledger.NewMemStore()
	emitter := events.NewEmitter(nil, store)
	d := New(makeAddr(0xDE), nil, emitter)

	recipients := []chain.Address{makeAddr(0x01), makeAddr(0x02)}
	code := splitterCode(t, recipients, []uint32{6000, 4000})

	handler, err := d.Deploy(makeSalt(0x01), code)
	require.NoError(t, err)
	require.Len(t, handler.Recipients(), 2)

	bank := chain.NewMockBank()
	bank.Mint(handler.Address(), math.NewInt(1000))
	payments, err := handler.Distribute(bank)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, math.NewInt(600), bank.BalanceOf(recipients[0]))
	assert.Equal(t, math.NewInt(400), bank.BalanceOf(recipients[1]))

	evs, err := store.ListEvents()
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, events.KindHandlerDeployed, evs[0].Kind)
	assert.Equal(t, handler.Address().String(), evs[0].Handler)
}

func TestDeployer_DeployInvalidSplitterTable(t *testing.T) {
	d := New(makeAddr(0xDE), nil, nil)
	code := splitterCode(t, []chain.Address{makeAddr(0x01)}, []uint32{9000})

	_, err := d.Deploy(makeSalt(0x01), code)
	assert.ErrorIs(t, err, royalty.ErrSharesNotFull)
}

func TestDeployer_HandlerAt_Unknown(t *testing.T) {
	d := New(makeAddr(0xDE), nil, nil)
	_, err := d.HandlerAt(makeAddr(0x01))
	assert.ErrorIs(t, err, ErrUnknownHandler)
}

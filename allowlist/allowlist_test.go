package allowlist

import (
	"testing"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintgateorg/libmintgate-go/chain"
)

func makeAddr(seed byte) chain.Address {
	var addr chain.Address
	for i := range addr {
		addr[i] = seed
	}
	return addr
}

func makeEntries(n int) []Entry {
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{
			Address: makeAddr(byte(i + 1)),
			Quota:   uint64(i + 1),
		}
	}
	return entries
}

func TestSerializeLeaf(t *testing.T) {
	e := Entry{Address: makeAddr(0xAA), Quota: 258}
	leaf := SerializeLeaf(e)

	require.Len(t, leaf, leafSize)
	assert.Equal(t, byte(LeafVersion), leaf[0])
	assert.Equal(t, e.Address[:], leaf[1:21])
	// 258 = 0x0102 big-endian in the last 8 bytes
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 2}, leaf[21:29])
}

func TestLeafHash(t *testing.T) {
	e := Entry{Address: makeAddr(0x01), Quota: 5}
	hash := LeafHash(e)

	require.Len(t, hash, HashSize)
	assert.Equal(t, bsvhash.Sha256d(SerializeLeaf(e)), hash)

	// A different quota must hash differently.
	other := LeafHash(Entry{Address: makeAddr(0x01), Quota: 6})
	assert.NotEqual(t, hash, other)
}

func TestBuildTree_Errors(t *testing.T) {
	_, err := BuildTree(nil)
	assert.ErrorIs(t, err, ErrNoEntries)

	dup := []Entry{
		{Address: makeAddr(0x01), Quota: 1},
		{Address: makeAddr(0x01), Quota: 2},
	}
	_, err = BuildTree(dup)
	assert.ErrorIs(t, err, ErrDuplicateAddress)
}

func TestBuildTree_SingleLeaf(t *testing.T) {
	entries := makeEntries(1)
	tree, err := BuildTree(entries)
	require.NoError(t, err)

	// The root of a one-leaf tree is the leaf hash itself.
	assert.Equal(t, LeafHash(entries[0]), tree.Root())

	proof, err := tree.Prove(0)
	require.NoError(t, err)
	assert.Empty(t, proof.Nodes)

	ok, err := Verify(tree.Root(), entries[0], proof)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTree_ProveAndVerify(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8, 17} {
		entries := makeEntries(n)
		tree, err := BuildTree(entries)
		require.NoError(t, err)
		root := tree.Root()

		for i, e := range entries {
			proof, err := tree.Prove(uint32(i))
			require.NoError(t, err, "n=%d i=%d", n, i)

			ok, err := Verify(root, e, proof)
			require.NoError(t, err, "n=%d i=%d", n, i)
			assert.True(t, ok, "n=%d i=%d", n, i)
		}
	}
}

func TestVerify_WrongQuota(t *testing.T) {
	entries := makeEntries(4)
	tree, err := BuildTree(entries)
	require.NoError(t, err)

	proof, err := tree.Prove(2)
	require.NoError(t, err)

	tampered := entries[2]
	tampered.Quota++
	ok, err := Verify(tree.Root(), tampered, proof)
	assert.ErrorIs(t, err, ErrProofInvalid)
	assert.False(t, ok)
}

func TestVerify_WrongAddress(t *testing.T) {
	entries := makeEntries(4)
	tree, err := BuildTree(entries)
	require.NoError(t, err)

	proof, err := tree.Prove(0)
	require.NoError(t, err)

	stranger := Entry{Address: makeAddr(0xFF), Quota: entries[0].Quota}
	ok, err := Verify(tree.Root(), stranger, proof)
	assert.ErrorIs(t, err, ErrProofInvalid)
	assert.False(t, ok)
}

func TestVerify_WrongIndex(t *testing.T) {
	entries := makeEntries(4)
	tree, err := BuildTree(entries)
	require.NoError(t, err)

	proof, err := tree.Prove(1)
	require.NoError(t, err)
	proof.Index = 2

	ok, err := Verify(tree.Root(), entries[1], proof)
	assert.ErrorIs(t, err, ErrProofInvalid)
	assert.False(t, ok)
}

func TestVerify_MalformedInputs(t *testing.T) {
	entries := makeEntries(2)
	tree, err := BuildTree(entries)
	require.NoError(t, err)
	proof, err := tree.Prove(0)
	require.NoError(t, err)

	_, err = Verify(tree.Root(), entries[0], nil)
	assert.ErrorIs(t, err, ErrNilProof)

	_, err = Verify([]byte{0x01}, entries[0], proof)
	assert.ErrorIs(t, err, ErrInvalidRoot)

	bad := &Proof{Index: 0, Nodes: [][]byte{{0x01, 0x02}}}
	_, err = Verify(tree.Root(), entries[0], bad)
	assert.ErrorIs(t, err, ErrInvalidNode)
}

func TestProve_IndexOutOfRange(t *testing.T) {
	tree, err := BuildTree(makeEntries(3))
	require.NoError(t, err)

	_, err = tree.Prove(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestTree_Entries_Copies(t *testing.T) {
	entries := makeEntries(2)
	tree, err := BuildTree(entries)
	require.NoError(t, err)

	got := tree.Entries()
	require.Equal(t, entries, got)
	got[0].Quota = 999
	assert.Equal(t, uint64(1), tree.Entries()[0].Quota)
}

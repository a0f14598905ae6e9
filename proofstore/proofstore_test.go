package proofstore

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintgateorg/libmintgate-go/allowlist"
	"github.com/mintgateorg/libmintgate-go/chain"
)

func makeAddr(seed byte) chain.Address {
	var addr chain.Address
	for i := range addr {
		addr[i] = seed
	}
	return addr
}

func buildTree(t *testing.T, n int) *allowlist.Tree {
	t.Helper()
	entries := make([]allowlist.Entry, n)
	for i := range entries {
		entries[i] = allowlist.Entry{Address: makeAddr(byte(i + 1)), Quota: 2}
	}
	tree, err := allowlist.BuildTree(entries)
	require.NoError(t, err)
	return tree
}

func newStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestFileStore_PutGet(t *testing.T) {
	store := newStore(t)
	data := []byte(`{"hello":"world"}`)

	ref, err := store.Put(data)
	require.NoError(t, err)
	require.Len(t, ref, RefSize)
	assert.Equal(t, Ref(data), ref)

	got, err := store.Get(ref)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	ok, err := store.Has(ref)
	require.NoError(t, err)
	assert.True(t, ok)

	// Storing the same data again yields the same reference.
	again, err := store.Put(data)
	require.NoError(t, err)
	assert.Equal(t, ref, again)
}

func TestFileStore_Errors(t *testing.T) {
	store := newStore(t)

	_, err := store.Put(nil)
	assert.ErrorIs(t, err, ErrEmptyPack)

	_, err = store.Get([]byte{0x01})
	assert.ErrorIs(t, err, ErrInvalidRef)

	_, err = store.Get(Ref([]byte("missing")))
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := store.Has(Ref([]byte("missing")))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = NewFileStore("")
	assert.ErrorIs(t, err, ErrInvalidBaseDir)
}

func TestFileStore_List(t *testing.T) {
	store := newStore(t)

	ref1, err := store.Put([]byte("pack one"))
	require.NoError(t, err)
	ref2, err := store.Put([]byte("pack two"))
	require.NoError(t, err)

	refs, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, [][]byte{ref1, ref2}, refs)
}

func TestPack_RoundTrip(t *testing.T) {
	tree := buildTree(t, 5)
	pack, err := BuildPack(tree)
	require.NoError(t, err)
	require.Len(t, pack.Entries, 5)
	require.Len(t, pack.Proofs, 5)
	assert.Equal(t, tree.Root(), pack.Root)

	data, err := pack.Encode()
	require.NoError(t, err)
	decoded, err := DecodePack(data)
	require.NoError(t, err)
	assert.Equal(t, pack, decoded)

	// Every proof in the decoded pack still verifies.
	for i, e := range decoded.Entries {
		ok, err := allowlist.Verify(decoded.Root, e, &decoded.Proofs[i])
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestDecodePack_Malformed(t *testing.T) {
	_, err := DecodePack([]byte("not json"))
	assert.ErrorIs(t, err, ErrInvalidPack)

	_, err = DecodePack([]byte(`{"root":"AQI=","entries":[],"proofs":[]}`))
	assert.ErrorIs(t, err, ErrInvalidPack)
}

func TestPack_ProofFor(t *testing.T) {
	tree := buildTree(t, 4)
	pack, err := BuildPack(tree)
	require.NoError(t, err)

	target := makeAddr(0x03)
	entry, proof, err := pack.ProofFor(target.String())
	require.NoError(t, err)
	assert.Equal(t, target, entry.Address)

	ok, err := allowlist.Verify(pack.Root, *entry, proof)
	require.NoError(t, err)
	assert.True(t, ok)

	_, _, err = pack.ProofFor(makeAddr(0xFF).String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublishAndResolveLocal(t *testing.T) {
	store := newStore(t)
	tree := buildTree(t, 3)

	ref, err := Publish(store, tree)
	require.NoError(t, err)

	resolver := NewResolver(store)
	pack, err := resolver.Fetch(ref)
	require.NoError(t, err)
	assert.Equal(t, tree.Root(), pack.Root)
	assert.Len(t, pack.Entries, 3)
}

func TestResolver_RemoteFetch(t *testing.T) {
	// The pack lives only on a remote publisher.
	publisher := newStore(t)
	tree := buildTree(t, 3)
	ref, err := Publish(publisher, tree)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := publisher.Get(ref)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	local := newStore(t)
	resolver := NewResolver(local)
	resolver.Endpoints = []string{srv.URL}

	pack, err := resolver.Fetch(ref)
	require.NoError(t, err)
	assert.Equal(t, tree.Root(), pack.Root)

	// The remote hit was cached locally.
	ok, err := local.Has(ref)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestResolver_RejectsTamperedRemote(t *testing.T) {
	tree := buildTree(t, 3)
	publisher := newStore(t)
	ref, err := Publish(publisher, tree)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"root":"tampered"}`))
	}))
	defer srv.Close()

	resolver := NewResolver(newStore(t))
	resolver.Endpoints = []string{srv.URL}

	_, err = resolver.Fetch(ref)
	assert.ErrorIs(t, err, ErrAllSourcesFailed)
	assert.ErrorIs(t, err, ErrHashMismatch)
}

func TestResolver_AllSourcesFail(t *testing.T) {
	resolver := NewResolver(newStore(t))

	_, err := resolver.Fetch(Ref([]byte("missing")))
	assert.ErrorIs(t, err, ErrAllSourcesFailed)

	_, err = resolver.Fetch([]byte{0x01})
	assert.ErrorIs(t, err, ErrInvalidRef)
}

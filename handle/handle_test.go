package handle

import (
	"errors"
	"testing"

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

// mockResolver serves canned TXT records keyed by lookup name.
type mockResolver struct {
	records map[string][]string
	err     error
}

func (m *mockResolver) LookupTXT(name string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	txts, ok := m.records[name]
	if !ok {
		return nil, errors.New("no such host")
	}
	return txts, nil
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *Handle
		wantErr bool
	}{
		{
			name: "simple",
			raw:  "alice@example.com",
			want: &Handle{Alias: "alice", Domain: "example.com"},
		},
		{
			name: "case folded and trimmed",
			raw:  "  Alice@Example.COM ",
			want: &Handle{Alias: "alice", Domain: "example.com"},
		},
		{name: "no at sign", raw: "alice.example.com", wantErr: true},
		{name: "two at signs", raw: "a@b@example.com", wantErr: true},
		{name: "empty alias", raw: "@example.com", wantErr: true},
		{name: "empty domain", raw: "alice@", wantErr: true},
		{name: "bare domain label", raw: "alice@localhost", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidHandle)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandle_String(t *testing.T) {
	h, err := Parse("Alice@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", h.String())
}

func TestResolveWithResolver(t *testing.T) {
	addr := makeAddr(0x42)
	resolver := &mockResolver{records: map[string][]string{
		"_mintgate.example.com": {
			"v=spf1 include:_spf.example.com ~all",
			"mintgate v=1 alias=bob addr=" + makeAddr(0x43).String(),
			"mintgate v=1 alias=alice addr=" + addr.String(),
		},
	}}

	got, err := ResolveWithResolver("alice@example.com", resolver)
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	got, err = ResolveWithResolver("bob@example.com", resolver)
	require.NoError(t, err)
	assert.Equal(t, makeAddr(0x43), got)
}

func TestResolveWithResolver_NoRecord(t *testing.T) {
	resolver := &mockResolver{records: map[string][]string{
		"_mintgate.example.com": {
			"mintgate v=1 alias=bob addr=" + makeAddr(0x43).String(),
		},
	}}

	_, err := ResolveWithResolver("carol@example.com", resolver)
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestResolveWithResolver_LookupFailure(t *testing.T) {
	resolver := &mockResolver{err: errors.New("timeout")}

	_, err := ResolveWithResolver("alice@example.com", resolver)
	assert.ErrorIs(t, err, ErrLookupFailed)
}

func TestResolveWithResolver_SkipsMalformedRecords(t *testing.T) {
	addr := makeAddr(0x42)
	resolver := &mockResolver{records: map[string][]string{
		"_mintgate.example.com": {
			"mintgate",
			"mintgate v=2 alias=alice addr=" + addr.String(),
			"mintgate v=1 alias=alice addr=nothex",
			"mintgate v=1 alias=alice addr=" + addr.String(),
		},
	}}

	got, err := ResolveWithResolver("alice@example.com", resolver)
	require.NoError(t, err)
	assert.Equal(t, addr, got)
}

func TestParseRecord(t *testing.T) {
	addr := makeAddr(0x42)

	alias, got, err := parseRecord("mintgate v=1 alias=Alice addr=" + addr.String())
	require.NoError(t, err)
	assert.Equal(t, "alice", alias)
	assert.Equal(t, addr, got)

	cases := []string{
		"",
		"spf v=1 alias=alice addr=" + addr.String(),
		"mintgate alias=alice addr=" + addr.String(),
		"mintgate v=1 addr=" + addr.String(),
		"mintgate v=1 alias=alice",
		"mintgate v=1 alias=alice addr=zzzz",
	}
	for _, txt := range cases {
		_, _, err := parseRecord(txt)
		assert.ErrorIs(t, err, ErrInvalidRecord, "txt=%q", txt)
	}
}

func TestNewDNSSECResolver_DefaultUpstream(t *testing.T) {
	r := NewDNSSECResolver("")
	assert.Equal(t, defaultUpstream, r.Upstream)

	r = NewDNSSECResolver("1.1.1.1:53")
	assert.Equal(t, "1.1.1.1:53", r.Upstream)
}

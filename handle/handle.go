// Package handle resolves human-readable creator payout handles
// (alias@domain) to payout addresses published in DNS TXT records. A creator
// publishes one record per alias under _mintgate.<domain>:
//
//	mintgate v=1 alias=<alias> addr=<40 hex chars>
//
// Integrators use it to look up the payout handler address a creator
// pre-registered for deterministic deployment, before the handler exists
// on-chain.
package handle

import (
	"fmt"
	"strings"

	"github.com/mintgateorg/libmintgate-go/chain"
)

// recordPrefix opens every payout TXT record.
const recordPrefix = "mintgate"

// txtLabel is prepended to the domain for payout record lookups.
const txtLabel = "_mintgate"

// Handle is a parsed alias@domain payout handle.
type Handle struct {
	Alias  string
	Domain string
}

// Parse splits and validates an alias@domain handle. Handles are
// case-insensitive; both parts are lowercased.
func Parse(raw string) (*Handle, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	at := strings.Count(s, "@")
	if at != 1 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHandle, raw)
	}
	parts := strings.SplitN(s, "@", 2)
	alias, domain := parts[0], parts[1]
	if alias == "" || domain == "" || !strings.Contains(domain, ".") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHandle, raw)
	}
	return &Handle{Alias: alias, Domain: domain}, nil
}

// String returns the canonical alias@domain form.
func (h *Handle) String() string { return h.Alias + "@" + h.Domain }

// Resolve looks up the payout address for a handle using the default
// (non-validating) resolver.
func Resolve(raw string) (chain.Address, error) {
	return ResolveWithResolver(raw, DefaultResolver)
}

// ResolveWithResolver looks up the payout address for a handle using the
// provided resolver. It queries TXT records at _mintgate.<domain> and picks
// the record matching the alias.
func ResolveWithResolver(raw string, resolver Resolver) (chain.Address, error) {
	h, err := Parse(raw)
	if err != nil {
		return chain.ZeroAddress, err
	}

	name := txtLabel + "." + h.Domain
	txts, err := resolver.LookupTXT(name)
	if err != nil {
		return chain.ZeroAddress, fmt.Errorf("%w: %s: %w", ErrLookupFailed, name, err)
	}

	for _, txt := range txts {
		alias, addr, err := parseRecord(txt)
		if err != nil {
			// Unrelated or malformed TXT records are skipped; only a
			// matching alias with a bad address is an error.
			continue
		}
		if alias == h.Alias {
			return addr, nil
		}
	}
	return chain.ZeroAddress, fmt.Errorf("%w: %s", ErrNoRecord, h)
}

// parseRecord parses one payout TXT record into its alias and address.
func parseRecord(txt string) (string, chain.Address, error) {
	fields := strings.Fields(txt)
	if len(fields) == 0 || fields[0] != recordPrefix {
		return "", chain.ZeroAddress, fmt.Errorf("%w: %q", ErrInvalidRecord, txt)
	}

	var alias, addrHex, version string
	for _, f := range fields[1:] {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			continue
		}
		switch k {
		case "v":
			version = v
		case "alias":
			alias = strings.ToLower(v)
		case "addr":
			addrHex = v
		}
	}

	if version != "1" || alias == "" || addrHex == "" {
		return "", chain.ZeroAddress, fmt.Errorf("%w: %q", ErrInvalidRecord, txt)
	}
	addr, err := chain.ParseAddress(addrHex)
	if err != nil {
		return "", chain.ZeroAddress, fmt.Errorf("%w: %q: %w", ErrInvalidRecord, txt, err)
	}
	return alias, addr, nil
}

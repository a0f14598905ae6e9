package handle

import "errors"

var (
	// ErrInvalidHandle indicates the handle is not alias@domain shaped.
	ErrInvalidHandle = errors.New("handle: invalid payout handle")

	// ErrLookupFailed indicates a DNS TXT lookup failed.
	ErrLookupFailed = errors.New("handle: DNS lookup failed")

	// ErrDNSSECValidationFailed indicates the resolver could not
	// authenticate the response.
	ErrDNSSECValidationFailed = errors.New("handle: DNSSEC validation failed")

	// ErrNoRecord indicates no payout record exists for the alias.
	ErrNoRecord = errors.New("handle: no payout record for alias")

	// ErrInvalidRecord indicates a payout TXT record is malformed.
	ErrInvalidRecord = errors.New("handle: invalid payout record")
)

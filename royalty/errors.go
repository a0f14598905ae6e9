package royalty

import "errors"

var (
	// ErrSharesNotFull indicates the share table does not sum to 10000 bps.
	ErrSharesNotFull = errors.New("royalty: shares must sum to exactly 10000 basis points")

	// ErrDuplicateRecipient indicates a recipient address appears twice.
	ErrDuplicateRecipient = errors.New("royalty: duplicate recipient")

	// ErrZeroAddressRecipient indicates a recipient is the zero address.
	ErrZeroAddressRecipient = errors.New("royalty: zero address recipient")

	// ErrNoRecipients indicates an empty recipient list.
	ErrNoRecipients = errors.New("royalty: no recipients")

	// ErrLengthMismatch indicates recipients and shares differ in length.
	ErrLengthMismatch = errors.New("royalty: recipients and shares length mismatch")

	// ErrNotAuthorized indicates the caller lacks the admin role.
	ErrNotAuthorized = errors.New("royalty: not authorized")

	// ErrDistributionFailed indicates a recipient transfer failed and the
	// distribution was rolled back.
	ErrDistributionFailed = errors.New("royalty: distribution failed")

	// ErrDistributionInconsistent indicates a rollback itself failed,
	// leaving funds split between the handler and early recipients.
	ErrDistributionInconsistent = errors.New("royalty: distribution rollback failed")
)

package chain

import "errors"

var (
	// ErrInvalidAddress indicates an address is not 20 bytes of hex.
	ErrInvalidAddress = errors.New("chain: invalid address")

	// ErrInvalidAmount indicates a nil or negative amount.
	ErrInvalidAmount = errors.New("chain: invalid amount")

	// ErrInsufficientFunds indicates the sender's balance cannot cover a transfer.
	ErrInsufficientFunds = errors.New("chain: insufficient funds")

	// ErrTransferRejected indicates the recipient refused the transfer.
	ErrTransferRejected = errors.New("chain: transfer rejected by recipient")

	// ErrUnknownEdition indicates the asset ledger has no such edition.
	ErrUnknownEdition = errors.New("chain: unknown edition")
)

package ledger

import "errors"

var (
	// ErrDuplicateSale indicates the edition already has a sale record.
	ErrDuplicateSale = errors.New("ledger: sale record already exists")

	// ErrSaleNotFound indicates no sale record exists for the edition.
	ErrSaleNotFound = errors.New("ledger: sale record not found")

	// ErrDuplicateAuction indicates the edition already has an open auction.
	ErrDuplicateAuction = errors.New("ledger: auction record already exists")

	// ErrAuctionNotFound indicates no auction record exists for the edition.
	ErrAuctionNotFound = errors.New("ledger: auction record not found")

	// ErrBindingNotFound indicates no payout handler is bound to the key.
	ErrBindingNotFound = errors.New("ledger: royalty binding not found")

	// ErrNilRecord indicates a nil record was supplied.
	ErrNilRecord = errors.New("ledger: nil record")
)

package auction

import "errors"

var (
	// ErrAlreadyListed indicates the edition already has an open auction.
	ErrAlreadyListed = errors.New("auction: edition already listed")

	// ErrUnknownEdition indicates the edition does not exist.
	ErrUnknownEdition = errors.New("auction: unknown edition")

	// ErrNotAuthorized indicates the caller may not list or cancel for
	// this edition.
	ErrNotAuthorized = errors.New("auction: not authorized")

	// ErrNotAdmin indicates the caller lacks the admin role.
	ErrNotAdmin = errors.New("auction: not admin")

	// ErrPaused indicates bidding and settlement are suspended.
	ErrPaused = errors.New("auction: engine paused")

	// ErrAuctionNotOpen indicates no open auction accepts this operation
	// (not listed, not yet started, cancelled, or already resulted).
	ErrAuctionNotOpen = errors.New("auction: auction not open")

	// ErrBidTooLow indicates the bid does not clear the minimum bid or the
	// required increment over the current highest bid.
	ErrBidTooLow = errors.New("auction: bid too low")

	// ErrSelfOutbid indicates the current highest bidder re-bidding.
	ErrSelfOutbid = errors.New("auction: already highest bidder")

	// ErrBidLockupActive indicates settlement was attempted before the bid
	// lockup expired.
	ErrBidLockupActive = errors.New("auction: bid lockup active")

	// ErrReserveNotMet indicates the highest bid is below the reserve price.
	ErrReserveNotMet = errors.New("auction: reserve not met")

	// ErrNoBids indicates settlement was attempted with no bids placed.
	ErrNoBids = errors.New("auction: no bids placed")

	// ErrAlreadyResulted indicates the auction has already been settled.
	ErrAlreadyResulted = errors.New("auction: already resulted")

	// ErrBidsPlaced indicates a cancel was attempted after bidding began.
	ErrBidsPlaced = errors.New("auction: cannot cancel after bids placed")

	// ErrInvalidReserve indicates a nil or negative reserve price.
	ErrInvalidReserve = errors.New("auction: invalid reserve price")
)

package ledger

import (
	"github.com/mintgateorg/libmintgate-go/chain"
	"github.com/mintgateorg/libmintgate-go/events"
)

// SaleStore persists gated sale records.
type SaleStore interface {
	// PutSale stores a new sale record. Fails with ErrDuplicateSale if the
	// edition already has one.
	PutSale(rec *SaleRecord) error

	// GetSale retrieves the sale record for an edition.
	GetSale(editionID uint64) (*SaleRecord, error)

	// UpdateSale overwrites an existing sale record. Fails with
	// ErrSaleNotFound if none exists.
	UpdateSale(rec *SaleRecord) error

	// ListSales returns all sale records ordered by edition id.
	ListSales() ([]*SaleRecord, error)
}

// AuctionStore persists reserve auction records.
type AuctionStore interface {
	// PutAuction stores a new auction record. Fails with
	// ErrDuplicateAuction if the edition already has a non-terminal one.
	PutAuction(rec *AuctionRecord) error

	// GetAuction retrieves the auction record for an edition.
	GetAuction(editionID uint64) (*AuctionRecord, error)

	// UpdateAuction overwrites an existing auction record.
	UpdateAuction(rec *AuctionRecord) error

	// ListAuctions returns all auction records ordered by edition id.
	ListAuctions() ([]*AuctionRecord, error)
}

// RoyaltyStore persists registry key -> payout handler bindings.
type RoyaltyStore interface {
	// PutBinding binds key to a handler address, overwriting any prior
	// binding.
	PutBinding(key string, handler chain.Address) error

	// GetBinding returns the handler bound to key, or ErrBindingNotFound.
	GetBinding(key string) (chain.Address, error)

	// ListBindings returns all bindings.
	ListBindings() (map[string]chain.Address, error)
}

// EventStore persists the emitted event history for indexer replay.
type EventStore interface {
	// AppendEvent stores the event and returns its sequence number.
	AppendEvent(ev *events.Event) (uint64, error)

	// ListEvents returns all events in sequence order.
	ListEvents() ([]*events.Event, error)
}

// Store is the full marketplace record store.
type Store interface {
	SaleStore
	AuctionStore
	RoyaltyStore
	EventStore

	Close() error
}

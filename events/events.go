// Package events defines the records emitted for off-chain indexers and the
// emitter that logs and persists them. Every event carries its identifiers,
// amounts, and addresses in full so an indexer can reconstruct the audit
// trail without truncation.
package events

import "time"

// Kind names an event type.
type Kind string

const (
	KindSaleCreated       Kind = "sale_created"
	KindPhaseCreated      Kind = "phase_created"
	KindPurchased         Kind = "purchased"
	KindAuctionListed     Kind = "auction_listed"
	KindBidPlaced         Kind = "bid_placed"
	KindBidRefundQueued   Kind = "bid_refund_queued"
	KindBidWithdrawn      Kind = "bid_withdrawn"
	KindAuctionResulted   Kind = "auction_resulted"
	KindAuctionCancelled  Kind = "auction_cancelled"
	KindHandlerDeployed   Kind = "handler_deployed"
	KindHandlerRegistered Kind = "handler_registered"
	KindFundsDistributed  Kind = "funds_distributed"
	KindEnginePaused      Kind = "engine_paused"
	KindEngineUnpaused    Kind = "engine_unpaused"
)

// Event is one indexer record. Addresses are hex strings and amounts are
// decimal strings of smallest units; unused fields are omitted.
type Event struct {
	Seq  uint64    `json:"seq"`
	Kind Kind      `json:"kind"`
	Time time.Time `json:"time"`

	EditionID uint64   `json:"edition_id,omitempty"`
	PhaseID   uint64   `json:"phase_id,omitempty"`
	AssetIDs  []uint64 `json:"asset_ids,omitempty"`
	Quantity  uint64   `json:"quantity,omitempty"`

	Actor     string `json:"actor,omitempty"`     // caller address
	Recipient string `json:"recipient,omitempty"` // counterparty address
	Handler   string `json:"handler,omitempty"`   // payout handler address
	Key       string `json:"key,omitempty"`       // royalty registry key
	Salt      string `json:"salt,omitempty"`      // deployment salt (hex)

	Amount string `json:"amount,omitempty"` // decimal smallest units
}

// Sink persists emitted events for replay. ledger stores implement it.
type Sink interface {
	// AppendEvent stores the event and returns its assigned sequence number.
	AppendEvent(ev *Event) (uint64, error)
}

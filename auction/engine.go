// Package auction implements the reserve-price auction engine: sequential
// bidding with minimum-increment and lockup rules, anti-snipe extension,
// pull-based refunds for outbid bidders, and settlement through the royalty
// registry.
package auction

import (
	"errors"
	"fmt"
	"sync"

	"cosmossdk.io/math"

	"github.com/mintgateorg/libmintgate-go/chain"
	"github.com/mintgateorg/libmintgate-go/config"
	"github.com/mintgateorg/libmintgate-go/events"
	"github.com/mintgateorg/libmintgate-go/ledger"
	"github.com/mintgateorg/libmintgate-go/royalty"
)

// Engine is the reserve auction engine. Bid funds are held on the engine's
// escrow account until settlement or withdrawal; outbid bidders are refunded
// pull-based so one bidder's failing fund-acceptance can never block a new
// bid.
type Engine struct {
	mu     sync.Mutex
	paused bool

	escrow   chain.Address
	params   config.Params
	store    ledger.Store
	assets   chain.AssetLedger
	access   chain.AccessControl
	bank     chain.Bank
	clock    chain.Clock
	registry *royalty.Registry
	emitter  *events.Emitter
}

// New creates a reserve auction engine. escrow is the engine's own account;
// all locked bids sit there.
func New(escrow chain.Address, params config.Params, store ledger.Store,
	assets chain.AssetLedger, access chain.AccessControl, bank chain.Bank,
	clock chain.Clock, registry *royalty.Registry, emitter *events.Emitter) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = chain.SystemClock{}
	}
	return &Engine{
		escrow:   escrow,
		params:   params,
		store:    store,
		assets:   assets,
		access:   access,
		bank:     bank,
		clock:    clock,
		registry: registry,
		emitter:  emitter,
	}, nil
}

// List opens a reserve auction for an edition. startDate of zero means
// immediately biddable. The caller must be the edition's creator or hold the
// CONTRACT role.
func (e *Engine) List(caller chain.Address, editionID uint64, reservePrice math.Int, startDate int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.assets.Exists(editionID) {
		return fmt.Errorf("%w: edition %d", ErrUnknownEdition, editionID)
	}
	seller := e.assets.CreatorOf(editionID)
	if caller != seller && !e.access.HasRole(chain.RoleContract, caller) && !e.access.HasRole(chain.RoleAdmin, caller) {
		return fmt.Errorf("%w: %s", ErrNotAuthorized, caller)
	}
	if reservePrice.IsNil() || !reservePrice.IsPositive() {
		return ErrInvalidReserve
	}

	rec := &ledger.AuctionRecord{
		EditionID:      editionID,
		Seller:         seller,
		FundsKey:       ledger.EditionKey(editionID),
		ReservePrice:   reservePrice,
		StartDate:      startDate,
		HighestBid:     math.ZeroInt(),
		PendingReturns: make(map[chain.Address]math.Int),
	}
	// Unwithdrawn refunds from a prior settled or cancelled auction carry
	// over; their funds are still locked on escrow.
	if prev, err := e.store.GetAuction(editionID); err == nil && prev.Terminal() {
		for addr, bal := range prev.PendingReturns {
			if !bal.IsNil() && !bal.IsZero() {
				rec.PendingReturns[addr] = bal
			}
		}
	}
	if err := e.store.PutAuction(rec); err != nil {
		if errors.Is(err, ledger.ErrDuplicateAuction) {
			return fmt.Errorf("%w: edition %d", ErrAlreadyListed, editionID)
		}
		return fmt.Errorf("auction: store record: %w", err)
	}

	return e.emitter.Emit(&events.Event{
		Kind:      events.KindAuctionListed,
		Time:      e.clock.Now(),
		EditionID: editionID,
		Actor:     caller.String(),
		Recipient: seller.String(),
		Amount:    reservePrice.String(),
	})
}

// PlaceBid places a bid of amount on an edition's auction. The bid must meet
// max(minBidAmount, highest + minIncrement). The previous highest bidder's
// funds are credited to their withdrawable balance, never pushed. A bid
// landing inside the snipe-extension tail of the lockup window restarts the
// lockup.
func (e *Engine) PlaceBid(caller chain.Address, amount math.Int, editionID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.paused {
		return ErrPaused
	}

	rec, err := e.store.GetAuction(editionID)
	if err != nil {
		return fmt.Errorf("%w: edition %d", ErrAuctionNotOpen, editionID)
	}
	now := e.clock.Now()
	if rec.Terminal() || now.Unix() < rec.StartDate {
		return fmt.Errorf("%w: edition %d", ErrAuctionNotOpen, editionID)
	}
	if rec.BidCount > 0 && caller == rec.HighestBidder {
		return fmt.Errorf("%w: %s", ErrSelfOutbid, caller)
	}

	floor := e.params.MinBidAmount
	if rec.BidCount > 0 {
		withIncrement := rec.HighestBid.Add(e.params.MinBidIncrement)
		if withIncrement.GT(floor) {
			floor = withIncrement
		}
	}
	if amount.IsNil() || amount.LT(floor) {
		return fmt.Errorf("%w: need at least %s, got %s", ErrBidTooLow, floor, amount)
	}

	// Lock the new bid before touching record state so a failed transfer
	// leaves everything untouched.
	if err := e.bank.Transfer(caller, e.escrow, amount); err != nil {
		return fmt.Errorf("auction: lock bid: %w", err)
	}

	outbid := rec.HighestBidder
	outbidAmount := rec.HighestBid
	hadBids := rec.BidCount > 0
	if hadBids {
		rec.PendingReturns[outbid] = rec.PendingReturn(outbid).Add(outbidAmount)
	}

	lockup := int64(e.params.BidLockupPeriod.Seconds())
	snipe := int64(e.params.SnipeExtensionWindow.Seconds())
	if rec.BidCount == 0 || now.Unix() >= rec.LockedUntil-snipe {
		rec.LockedUntil = now.Unix() + lockup
	}

	rec.HighestBid = amount
	rec.HighestBidder = caller
	rec.BidCount++
	if err := e.store.UpdateAuction(rec); err != nil {
		// Undo the escrow lock; the bid never happened.
		_ = e.bank.Transfer(e.escrow, caller, amount)
		return fmt.Errorf("auction: update record: %w", err)
	}

	// Events only after the record commit, so a failed update leaves no
	// phantom refund in the replay log.
	if hadBids {
		if err := e.emitter.Emit(&events.Event{
			Kind:      events.KindBidRefundQueued,
			Time:      now,
			EditionID: editionID,
			Recipient: outbid.String(),
			Amount:    outbidAmount.String(),
		}); err != nil {
			return err
		}
	}

	return e.emitter.Emit(&events.Event{
		Kind:      events.KindBidPlaced,
		Time:      now,
		EditionID: editionID,
		Actor:     caller.String(),
		Amount:    amount.String(),
	})
}

// ResultAuction settles an auction: callable by anyone once the lockup has
// expired and the highest bid meets the reserve. The winning bid is
// forwarded to the resolved payout destination and the asset is issued to
// the winner.
func (e *Engine) ResultAuction(caller chain.Address, editionID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.paused {
		return ErrPaused
	}

	rec, err := e.store.GetAuction(editionID)
	if err != nil {
		return fmt.Errorf("%w: edition %d", ErrAuctionNotOpen, editionID)
	}
	if rec.Resulted {
		return fmt.Errorf("%w: edition %d", ErrAlreadyResulted, editionID)
	}
	if rec.Cancelled {
		return fmt.Errorf("%w: edition %d", ErrAuctionNotOpen, editionID)
	}
	if rec.BidCount == 0 {
		return fmt.Errorf("%w: edition %d", ErrNoBids, editionID)
	}
	now := e.clock.Now()
	if now.Unix() < rec.LockedUntil {
		return fmt.Errorf("%w: until %d, now %d", ErrBidLockupActive, rec.LockedUntil, now.Unix())
	}
	if rec.HighestBid.LT(rec.ReservePrice) {
		return fmt.Errorf("%w: highest %s < reserve %s", ErrReserveNotMet, rec.HighestBid, rec.ReservePrice)
	}

	dest := e.resolveDestination(rec)
	if err := e.bank.Transfer(e.escrow, dest, rec.HighestBid); err != nil {
		return fmt.Errorf("auction: forward winning bid: %w", err)
	}

	success := false
	defer func() {
		if !success {
			_ = e.bank.Transfer(dest, e.escrow, rec.HighestBid)
		}
	}()

	if _, err := e.assets.Issue(rec.HighestBidder, editionID, 1); err != nil {
		return fmt.Errorf("auction: issue asset: %w", err)
	}

	rec.Resulted = true
	if err := e.store.UpdateAuction(rec); err != nil {
		return fmt.Errorf("auction: update record: %w", err)
	}
	success = true

	return e.emitter.Emit(&events.Event{
		Kind:      events.KindAuctionResulted,
		Time:      now,
		EditionID: editionID,
		Actor:     caller.String(),
		Recipient: rec.HighestBidder.String(),
		Handler:   dest.String(),
		Amount:    rec.HighestBid.String(),
	})
}

// WithdrawBid pulls the caller's refunded balance from an auction they were
// outbid on. Withdrawing with nothing pending is a no-op: the balance is
// already zero.
func (e *Engine) WithdrawBid(caller chain.Address, editionID uint64) (math.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.store.GetAuction(editionID)
	if err != nil {
		return math.ZeroInt(), fmt.Errorf("%w: edition %d", ErrAuctionNotOpen, editionID)
	}

	balance := rec.PendingReturn(caller)
	if balance.IsZero() {
		return math.ZeroInt(), nil
	}

	// Zero the balance before transferring; a failed transfer restores it.
	rec.PendingReturns[caller] = math.ZeroInt()
	if err := e.store.UpdateAuction(rec); err != nil {
		return math.ZeroInt(), fmt.Errorf("auction: update record: %w", err)
	}
	if err := e.bank.Transfer(e.escrow, caller, balance); err != nil {
		rec.PendingReturns[caller] = balance
		_ = e.store.UpdateAuction(rec)
		return math.ZeroInt(), fmt.Errorf("auction: refund: %w", err)
	}

	if err := e.emitter.Emit(&events.Event{
		Kind:      events.KindBidWithdrawn,
		Time:      e.clock.Now(),
		EditionID: editionID,
		Actor:     caller.String(),
		Amount:    balance.String(),
	}); err != nil {
		return math.ZeroInt(), err
	}
	return balance, nil
}

// Cancel terminates a listed auction before any bid is placed. Only the
// seller or an admin may cancel.
func (e *Engine) Cancel(caller chain.Address, editionID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.store.GetAuction(editionID)
	if err != nil {
		return fmt.Errorf("%w: edition %d", ErrAuctionNotOpen, editionID)
	}
	if rec.Terminal() {
		return fmt.Errorf("%w: edition %d", ErrAuctionNotOpen, editionID)
	}
	if caller != rec.Seller && !e.access.HasRole(chain.RoleAdmin, caller) {
		return fmt.Errorf("%w: %s", ErrNotAuthorized, caller)
	}
	if rec.BidCount > 0 {
		return fmt.Errorf("%w: edition %d has %d bids", ErrBidsPlaced, editionID, rec.BidCount)
	}

	rec.Cancelled = true
	if err := e.store.UpdateAuction(rec); err != nil {
		return fmt.Errorf("auction: update record: %w", err)
	}

	return e.emitter.Emit(&events.Event{
		Kind:      events.KindAuctionCancelled,
		Time:      e.clock.Now(),
		EditionID: editionID,
		Actor:     caller.String(),
	})
}

// Pause suspends PlaceBid and ResultAuction globally. Admin only.
func (e *Engine) Pause(caller chain.Address) error {
	return e.setPaused(caller, true, events.KindEnginePaused)
}

// Unpause lifts a pause. Admin only.
func (e *Engine) Unpause(caller chain.Address) error {
	return e.setPaused(caller, false, events.KindEngineUnpaused)
}

func (e *Engine) setPaused(caller chain.Address, paused bool, kind events.Kind) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.access.HasRole(chain.RoleAdmin, caller) {
		return fmt.Errorf("%w: %s", ErrNotAdmin, caller)
	}
	e.paused = paused
	return e.emitter.Emit(&events.Event{
		Kind:  kind,
		Time:  e.clock.Now(),
		Actor: caller.String(),
	})
}

// resolveDestination picks where the winning bid goes: the edition's
// registered payout handler, then the creator's, then the seller directly.
func (e *Engine) resolveDestination(rec *ledger.AuctionRecord) chain.Address {
	if dest := e.registry.Resolve(rec.FundsKey); !dest.IsZero() {
		return dest
	}
	if dest := e.registry.Resolve(ledger.CreatorKey(rec.Seller)); !dest.IsZero() {
		return dest
	}
	return rec.Seller
}

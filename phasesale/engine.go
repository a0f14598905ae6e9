// Package phasesale implements the allow-list-gated primary sale engine:
// per-edition sale records holding ordered, possibly overlapping time-boxed
// phases, each with its own price, caps, and merkle allow-list.
package phasesale

import (
	"errors"
	"fmt"
	"sync"

	"cosmossdk.io/math"

	"github.com/mintgateorg/libmintgate-go/allowlist"
	"github.com/mintgateorg/libmintgate-go/chain"
	"github.com/mintgateorg/libmintgate-go/events"
	"github.com/mintgateorg/libmintgate-go/ledger"
	"github.com/mintgateorg/libmintgate-go/royalty"
)

// PhaseParams are the parallel arrays a sale or phase creation call carries.
// All slices must have equal, non-zero length.
type PhaseParams struct {
	StartTimes   []int64
	EndTimes     []int64
	Prices       []math.Int
	MintCaps     []uint64
	WalletLimits []uint64
	MerkleRoots  [][]byte
	ProofRefs    [][]byte
}

// Engine is the gated phase sale engine. Every public operation executes
// atomically relative to all others; the engine's mutex is the serialization
// unit the host ledger's global transaction order maps onto.
type Engine struct {
	mu sync.Mutex

	store    ledger.Store
	assets   chain.AssetLedger
	access   chain.AccessControl
	bank     chain.Bank
	clock    chain.Clock
	registry *royalty.Registry
	emitter  *events.Emitter
}

// New creates a phase sale engine over the given collaborators.
func New(store ledger.Store, assets chain.AssetLedger, access chain.AccessControl,
	bank chain.Bank, clock chain.Clock, registry *royalty.Registry, emitter *events.Emitter) *Engine {
	if clock == nil {
		clock = chain.SystemClock{}
	}
	return &Engine{
		store:    store,
		assets:   assets,
		access:   access,
		bank:     bank,
		clock:    clock,
		registry: registry,
		emitter:  emitter,
	}
}

// CreateSaleWithPhases creates the sale record for an edition with its
// initial phases. The caller must be the edition's creator or hold the
// CONTRACT role.
func (e *Engine) CreateSaleWithPhases(caller chain.Address, editionID uint64, params PhaseParams) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.assets.Exists(editionID) {
		return fmt.Errorf("%w: edition %d", ErrUnknownEdition, editionID)
	}
	seller := e.assets.CreatorOf(editionID)
	if err := e.authorizeSeller(caller, seller); err != nil {
		return err
	}
	phases, err := e.buildPhases(editionID, params, 0, 1)
	if err != nil {
		return err
	}

	rec := &ledger.SaleRecord{
		EditionID: editionID,
		Seller:    seller,
		FundsKey:  ledger.EditionKey(editionID),
		Phases:    phases,
	}
	if err := e.store.PutSale(rec); err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: edition %d", ErrDuplicateSale, editionID)
		}
		return fmt.Errorf("phasesale: store sale: %w", err)
	}

	now := e.clock.Now()
	if err := e.emitter.Emit(&events.Event{
		Kind:      events.KindSaleCreated,
		Time:      now,
		EditionID: editionID,
		Actor:     caller.String(),
		Recipient: seller.String(),
	}); err != nil {
		return err
	}
	return e.emitPhaseCreated(editionID, caller, phases)
}

// CreatePhases appends additional phases to an existing sale record.
func (e *Engine) CreatePhases(caller chain.Address, editionID uint64, params PhaseParams) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.store.GetSale(editionID)
	if err != nil {
		return fmt.Errorf("%w: edition %d", ErrUnknownEdition, editionID)
	}
	if err := e.authorizeSeller(caller, rec.Seller); err != nil {
		return err
	}

	var existingCaps uint64
	nextID := uint64(1)
	for _, p := range rec.Phases {
		existingCaps += p.MintCap
		if p.ID >= nextID {
			nextID = p.ID + 1
		}
	}

	phases, err := e.buildPhases(editionID, params, existingCaps, nextID)
	if err != nil {
		return err
	}

	rec.Phases = append(rec.Phases, phases...)
	if err := e.store.UpdateSale(rec); err != nil {
		return fmt.Errorf("phasesale: update sale: %w", err)
	}
	return e.emitPhaseCreated(editionID, caller, phases)
}

// Buy purchases quantity assets from a phase. The payment must equal
// price × quantity exactly; the caller must hold a valid allow-list proof
// for (caller, walletMintLimit). On success the payment is forwarded to the
// edition's resolved payout destination and issuance is requested from the
// asset ledger.
func (e *Engine) Buy(caller chain.Address, payment math.Int, editionID, phaseID uint64,
	proof *allowlist.Proof, quantity uint64) ([]uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if quantity == 0 {
		return nil, ErrZeroQuantity
	}

	rec, err := e.store.GetSale(editionID)
	if err != nil {
		return nil, fmt.Errorf("%w: edition %d", ErrUnknownEdition, editionID)
	}
	phase := rec.FindPhase(phaseID)
	if phase == nil {
		return nil, fmt.Errorf("%w: edition %d phase %d", ErrUnknownPhase, editionID, phaseID)
	}

	total := phase.Price.MulRaw(int64(quantity))
	if payment.IsNil() || !payment.Equal(total) {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrIncorrectPayment, total, payment)
	}

	now := e.clock.Now().Unix()
	if !phase.Open(now) {
		return nil, fmt.Errorf("%w: phase %d window [%d, %d), now %d",
			ErrPhaseNotOpen, phaseID, phase.StartTime, phase.EndTime, now)
	}

	entry := allowlist.Entry{Address: caller, Quota: phase.WalletMintLimit}
	if ok, err := allowlist.Verify(phase.MerkleRoot, entry, proof); !ok || err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMerkleProofInvalid, caller)
	}

	// Compare by remaining headroom; summing the counters could wrap uint64
	// on an adversarial quantity.
	claimed := phase.Claimed[caller]
	if quantity > phase.WalletMintLimit-claimed {
		return nil, fmt.Errorf("%w: claimed %d of %d, want %d",
			ErrWalletCapExceeded, claimed, phase.WalletMintLimit, quantity)
	}
	if quantity > phase.MintCap-phase.TotalMinted {
		return nil, fmt.Errorf("%w: minted %d of %d, want %d",
			ErrMintCapExceeded, phase.TotalMinted, phase.MintCap, quantity)
	}

	dest := e.resolveDestination(rec)
	if err := e.bank.Transfer(caller, dest, total); err != nil {
		return nil, fmt.Errorf("phasesale: forward payment: %w", err)
	}

	success := false
	defer func() {
		if !success {
			_ = e.bank.Transfer(dest, caller, total)
		}
	}()

	assetIDs, err := e.assets.Issue(caller, editionID, quantity)
	if err != nil {
		return nil, fmt.Errorf("phasesale: issue assets: %w", err)
	}

	if phase.Claimed == nil {
		phase.Claimed = make(map[chain.Address]uint64)
	}
	phase.Claimed[caller] = claimed + quantity
	phase.TotalMinted += quantity
	if err := e.store.UpdateSale(rec); err != nil {
		return nil, fmt.Errorf("phasesale: update sale: %w", err)
	}
	success = true

	if err := e.emitter.Emit(&events.Event{
		Kind:      events.KindPurchased,
		Time:      e.clock.Now(),
		EditionID: editionID,
		PhaseID:   phaseID,
		AssetIDs:  assetIDs,
		Quantity:  quantity,
		Actor:     caller.String(),
		Recipient: dest.String(),
		Amount:    total.String(),
	}); err != nil {
		return nil, err
	}
	return assetIDs, nil
}

// authorizeSeller checks the caller may manage a sale for seller.
func (e *Engine) authorizeSeller(caller, seller chain.Address) error {
	if caller == seller {
		return nil
	}
	if e.access.HasRole(chain.RoleContract, caller) || e.access.HasRole(chain.RoleAdmin, caller) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotAuthorized, caller)
}

// buildPhases validates the parallel arrays and materializes phases with
// sequential ids starting at nextID.
func (e *Engine) buildPhases(editionID uint64, params PhaseParams, existingCaps, nextID uint64) ([]ledger.Phase, error) {
	n := len(params.StartTimes)
	if n == 0 {
		return nil, fmt.Errorf("%w: no phases", ErrInvalidPhaseConfig)
	}
	if len(params.EndTimes) != n || len(params.Prices) != n || len(params.MintCaps) != n ||
		len(params.WalletLimits) != n || len(params.MerkleRoots) != n || len(params.ProofRefs) != n {
		return nil, fmt.Errorf("%w: array length mismatch", ErrInvalidPhaseConfig)
	}

	now := e.clock.Now().Unix()
	capSum := existingCaps
	phases := make([]ledger.Phase, n)
	for i := 0; i < n; i++ {
		if params.StartTimes[i] >= params.EndTimes[i] {
			return nil, fmt.Errorf("%w: phase %d start %d >= end %d",
				ErrInvalidPhaseConfig, i, params.StartTimes[i], params.EndTimes[i])
		}
		if params.EndTimes[i] <= now {
			return nil, fmt.Errorf("%w: phase %d already ended", ErrInvalidPhaseConfig, i)
		}
		if len(params.MerkleRoots[i]) != allowlist.HashSize {
			return nil, fmt.Errorf("%w: phase %d merkle root must be %d bytes",
				ErrInvalidPhaseConfig, i, allowlist.HashSize)
		}
		if params.Prices[i].IsNil() || params.Prices[i].IsNegative() {
			return nil, fmt.Errorf("%w: phase %d price", ErrInvalidPhaseConfig, i)
		}
		if params.MintCaps[i] == 0 || params.WalletLimits[i] == 0 {
			return nil, fmt.Errorf("%w: phase %d zero cap", ErrInvalidPhaseConfig, i)
		}
		if params.MintCaps[i] > ^uint64(0)-capSum {
			return nil, fmt.Errorf("%w: cap sum overflows", ErrCapsExceedEdition)
		}
		capSum += params.MintCaps[i]

		phases[i] = ledger.Phase{
			ID:              nextID + uint64(i),
			StartTime:       params.StartTimes[i],
			EndTime:         params.EndTimes[i],
			WalletMintLimit: params.WalletLimits[i],
			MintCap:         params.MintCaps[i],
			Price:           params.Prices[i],
			MerkleRoot:      append([]byte(nil), params.MerkleRoots[i]...),
			ProofRef:        append([]byte(nil), params.ProofRefs[i]...),
			Claimed:         make(map[chain.Address]uint64),
		}
	}

	if size := e.assets.EditionSize(editionID); capSum > size {
		return nil, fmt.Errorf("%w: caps %d > edition size %d", ErrCapsExceedEdition, capSum, size)
	}
	return phases, nil
}

// resolveDestination picks where sale proceeds go: the edition's registered
// payout handler, then the creator's, then the seller directly.
func (e *Engine) resolveDestination(rec *ledger.SaleRecord) chain.Address {
	if dest := e.registry.Resolve(rec.FundsKey); !dest.IsZero() {
		return dest
	}
	if dest := e.registry.Resolve(ledger.CreatorKey(rec.Seller)); !dest.IsZero() {
		return dest
	}
	return rec.Seller
}

// emitPhaseCreated emits one PhaseCreated event per new phase.
func (e *Engine) emitPhaseCreated(editionID uint64, caller chain.Address, phases []ledger.Phase) error {
	now := e.clock.Now()
	for _, p := range phases {
		if err := e.emitter.Emit(&events.Event{
			Kind:      events.KindPhaseCreated,
			Time:      now,
			EditionID: editionID,
			PhaseID:   p.ID,
			Actor:     caller.String(),
			Amount:    p.Price.String(),
		}); err != nil {
			return err
		}
	}
	return nil
}

// isDuplicate reports whether err is the store's duplicate-sale error.
func isDuplicate(err error) bool {
	return errors.Is(err, ledger.ErrDuplicateSale)
}

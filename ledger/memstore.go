package ledger

import (
	"fmt"
	"sort"
	"sync"

	"cosmossdk.io/math"

	"github.com/mintgateorg/libmintgate-go/chain"
	"github.com/mintgateorg/libmintgate-go/events"
)

// MemStore is an in-memory Store for tests and embedders that do not need
// persistence. Records are deep-copied on the way in and out so callers can
// mutate their copies freely before committing with an Update call.
type MemStore struct {
	mu       sync.RWMutex
	sales    map[uint64]*SaleRecord
	auctions map[uint64]*AuctionRecord
	bindings map[string]chain.Address
	eventLog []*events.Event
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		sales:    make(map[uint64]*SaleRecord),
		auctions: make(map[uint64]*AuctionRecord),
		bindings: make(map[string]chain.Address),
	}
}

// Close implements Store. It is a no-op for the in-memory store.
func (s *MemStore) Close() error { return nil }

// PutSale stores a new sale record.
func (s *MemStore) PutSale(rec *SaleRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: sale", ErrNilRecord)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sales[rec.EditionID]; ok {
		return fmt.Errorf("%w: edition %d", ErrDuplicateSale, rec.EditionID)
	}
	s.sales[rec.EditionID] = cloneSale(rec)
	return nil
}

// GetSale retrieves the sale record for an edition.
func (s *MemStore) GetSale(editionID uint64) (*SaleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sales[editionID]
	if !ok {
		return nil, fmt.Errorf("%w: edition %d", ErrSaleNotFound, editionID)
	}
	return cloneSale(rec), nil
}

// UpdateSale overwrites an existing sale record.
func (s *MemStore) UpdateSale(rec *SaleRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: sale", ErrNilRecord)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sales[rec.EditionID]; !ok {
		return fmt.Errorf("%w: edition %d", ErrSaleNotFound, rec.EditionID)
	}
	s.sales[rec.EditionID] = cloneSale(rec)
	return nil
}

// ListSales returns all sale records ordered by edition id.
func (s *MemStore) ListSales() ([]*SaleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*SaleRecord, 0, len(s.sales))
	for _, rec := range s.sales {
		out = append(out, cloneSale(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EditionID < out[j].EditionID })
	return out, nil
}

// PutAuction stores a new auction record.
func (s *MemStore) PutAuction(rec *AuctionRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: auction", ErrNilRecord)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.auctions[rec.EditionID]; ok && !existing.Terminal() {
		return fmt.Errorf("%w: edition %d", ErrDuplicateAuction, rec.EditionID)
	}
	s.auctions[rec.EditionID] = cloneAuction(rec)
	return nil
}

// GetAuction retrieves the auction record for an edition.
func (s *MemStore) GetAuction(editionID uint64) (*AuctionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.auctions[editionID]
	if !ok {
		return nil, fmt.Errorf("%w: edition %d", ErrAuctionNotFound, editionID)
	}
	return cloneAuction(rec), nil
}

// UpdateAuction overwrites an existing auction record.
func (s *MemStore) UpdateAuction(rec *AuctionRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: auction", ErrNilRecord)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.auctions[rec.EditionID]; !ok {
		return fmt.Errorf("%w: edition %d", ErrAuctionNotFound, rec.EditionID)
	}
	s.auctions[rec.EditionID] = cloneAuction(rec)
	return nil
}

// ListAuctions returns all auction records ordered by edition id.
func (s *MemStore) ListAuctions() ([]*AuctionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*AuctionRecord, 0, len(s.auctions))
	for _, rec := range s.auctions {
		out = append(out, cloneAuction(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EditionID < out[j].EditionID })
	return out, nil
}

// PutBinding binds key to a handler address.
func (s *MemStore) PutBinding(key string, handler chain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings[key] = handler
	return nil
}

// GetBinding returns the handler bound to key.
func (s *MemStore) GetBinding(key string) (chain.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	handler, ok := s.bindings[key]
	if !ok {
		return chain.ZeroAddress, fmt.Errorf("%w: %s", ErrBindingNotFound, key)
	}
	return handler, nil
}

// ListBindings returns all bindings.
func (s *MemStore) ListBindings() (map[string]chain.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]chain.Address, len(s.bindings))
	for k, v := range s.bindings {
		out[k] = v
	}
	return out, nil
}

// AppendEvent stores the event and returns its sequence number.
func (s *MemStore) AppendEvent(ev *events.Event) (uint64, error) {
	if ev == nil {
		return 0, fmt.Errorf("%w: event", ErrNilRecord)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	seq := uint64(len(s.eventLog) + 1)
	cp := *ev
	cp.Seq = seq
	s.eventLog = append(s.eventLog, &cp)
	return seq, nil
}

// ListEvents returns all events in sequence order.
func (s *MemStore) ListEvents() ([]*events.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*events.Event, len(s.eventLog))
	for i, ev := range s.eventLog {
		cp := *ev
		out[i] = &cp
	}
	return out, nil
}

func cloneSale(rec *SaleRecord) *SaleRecord {
	cp := *rec
	cp.Phases = make([]Phase, len(rec.Phases))
	for i, p := range rec.Phases {
		cp.Phases[i] = clonePhase(p)
	}
	return &cp
}

func clonePhase(p Phase) Phase {
	cp := p
	cp.MerkleRoot = append([]byte(nil), p.MerkleRoot...)
	cp.ProofRef = append([]byte(nil), p.ProofRef...)
	cp.Claimed = make(map[chain.Address]uint64, len(p.Claimed))
	for addr, n := range p.Claimed {
		cp.Claimed[addr] = n
	}
	return cp
}

func cloneAuction(rec *AuctionRecord) *AuctionRecord {
	cp := *rec
	cp.PendingReturns = make(map[chain.Address]math.Int, len(rec.PendingReturns))
	for addr, bal := range rec.PendingReturns {
		cp.PendingReturns[addr] = bal
	}
	return &cp
}

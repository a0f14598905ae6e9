package ledger

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/mintgateorg/libmintgate-go/chain"
	"github.com/mintgateorg/libmintgate-go/events"
)

var (
	bucketSales    = []byte("sales")
	bucketAuctions = []byte("auctions")
	bucketBindings = []byte("royalty_bindings")
	bucketEvents   = []byte("events")
)

// BoltStore is the persistent Store backed by bbolt. One bucket per record
// kind; sale and auction records are keyed by big-endian edition id so
// cursor order matches edition order.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketSales, bucketAuctions, bucketBindings, bucketEvents} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// editionKey encodes an edition id as an 8-byte big-endian key.
func editionKey(id uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, id)
	return k
}

// encodeJSON serializes a record. JSON rather than gob because monetary
// amounts (math.Int) only carry JSON marshalers.
func encodeJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// decodeJSON deserializes a record.
func decodeJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// PutSale stores a new sale record.
func (s *BoltStore) PutSale(rec *SaleRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: sale", ErrNilRecord)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSales)
		key := editionKey(rec.EditionID)
		if b.Get(key) != nil {
			return fmt.Errorf("%w: edition %d", ErrDuplicateSale, rec.EditionID)
		}
		data, err := encodeJSON(rec)
		if err != nil {
			return fmt.Errorf("boltstore: encode sale: %w", err)
		}
		return b.Put(key, data)
	})
}

// GetSale retrieves the sale record for an edition.
func (s *BoltStore) GetSale(editionID uint64) (*SaleRecord, error) {
	var rec SaleRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSales).Get(editionKey(editionID))
		if data == nil {
			return fmt.Errorf("%w: edition %d", ErrSaleNotFound, editionID)
		}
		if err := decodeJSON(data, &rec); err != nil {
			return fmt.Errorf("boltstore: decode sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateSale overwrites an existing sale record.
func (s *BoltStore) UpdateSale(rec *SaleRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: sale", ErrNilRecord)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSales)
		key := editionKey(rec.EditionID)
		if b.Get(key) == nil {
			return fmt.Errorf("%w: edition %d", ErrSaleNotFound, rec.EditionID)
		}
		data, err := encodeJSON(rec)
		if err != nil {
			return fmt.Errorf("boltstore: encode sale: %w", err)
		}
		return b.Put(key, data)
	})
}

// ListSales returns all sale records ordered by edition id.
func (s *BoltStore) ListSales() ([]*SaleRecord, error) {
	var out []*SaleRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSales).ForEach(func(_, v []byte) error {
			var rec SaleRecord
			if err := decodeJSON(v, &rec); err != nil {
				return fmt.Errorf("boltstore: decode sale: %w", err)
			}
			out = append(out, &rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PutAuction stores a new auction record. A terminal record for the same
// edition may be replaced (relisting after cancel or settlement).
func (s *BoltStore) PutAuction(rec *AuctionRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: auction", ErrNilRecord)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketAuctions)
		key := editionKey(rec.EditionID)
		if data := b.Get(key); data != nil {
			var existing AuctionRecord
			if err := decodeJSON(data, &existing); err != nil {
				return fmt.Errorf("boltstore: decode auction: %w", err)
			}
			if !existing.Terminal() {
				return fmt.Errorf("%w: edition %d", ErrDuplicateAuction, rec.EditionID)
			}
		}
		data, err := encodeJSON(rec)
		if err != nil {
			return fmt.Errorf("boltstore: encode auction: %w", err)
		}
		return b.Put(key, data)
	})
}

// GetAuction retrieves the auction record for an edition.
func (s *BoltStore) GetAuction(editionID uint64) (*AuctionRecord, error) {
	var rec AuctionRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketAuctions).Get(editionKey(editionID))
		if data == nil {
			return fmt.Errorf("%w: edition %d", ErrAuctionNotFound, editionID)
		}
		if err := decodeJSON(data, &rec); err != nil {
			return fmt.Errorf("boltstore: decode auction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateAuction overwrites an existing auction record.
func (s *BoltStore) UpdateAuction(rec *AuctionRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: auction", ErrNilRecord)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketAuctions)
		key := editionKey(rec.EditionID)
		if b.Get(key) == nil {
			return fmt.Errorf("%w: edition %d", ErrAuctionNotFound, rec.EditionID)
		}
		data, err := encodeJSON(rec)
		if err != nil {
			return fmt.Errorf("boltstore: encode auction: %w", err)
		}
		return b.Put(key, data)
	})
}

// ListAuctions returns all auction records ordered by edition id.
func (s *BoltStore) ListAuctions() ([]*AuctionRecord, error) {
	var out []*AuctionRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAuctions).ForEach(func(_, v []byte) error {
			var rec AuctionRecord
			if err := decodeJSON(v, &rec); err != nil {
				return fmt.Errorf("boltstore: decode auction: %w", err)
			}
			out = append(out, &rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PutBinding binds key to a handler address, overwriting any prior binding.
func (s *BoltStore) PutBinding(key string, handler chain.Address) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketBindings).Put([]byte(key), handler[:])
	})
}

// GetBinding returns the handler bound to key.
func (s *BoltStore) GetBinding(key string) (chain.Address, error) {
	var handler chain.Address
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketBindings).Get([]byte(key))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrBindingNotFound, key)
		}
		addr, err := chain.AddressFromBytes(data)
		if err != nil {
			return fmt.Errorf("boltstore: decode binding: %w", err)
		}
		handler = addr
		return nil
	})
	if err != nil {
		return chain.ZeroAddress, err
	}
	return handler, nil
}

// ListBindings returns all bindings.
func (s *BoltStore) ListBindings() (map[string]chain.Address, error) {
	out := make(map[string]chain.Address)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketBindings).ForEach(func(k, v []byte) error {
			addr, err := chain.AddressFromBytes(v)
			if err != nil {
				return fmt.Errorf("boltstore: decode binding: %w", err)
			}
			out[string(k)] = addr
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppendEvent stores the event and returns its sequence number.
func (s *BoltStore) AppendEvent(ev *events.Event) (uint64, error) {
	if ev == nil {
		return 0, fmt.Errorf("%w: event", ErrNilRecord)
	}
	var seq uint64
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEvents)
		next, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("boltstore: event sequence: %w", err)
		}
		cp := *ev
		cp.Seq = next
		data, err := encodeJSON(&cp)
		if err != nil {
			return fmt.Errorf("boltstore: encode event: %w", err)
		}
		if err := b.Put(editionKey(next), data); err != nil {
			return fmt.Errorf("boltstore: put event: %w", err)
		}
		seq = next
		return nil
	})
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// ListEvents returns all events in sequence order.
func (s *BoltStore) ListEvents() ([]*events.Event, error) {
	var out []*events.Event
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketEvents).ForEach(func(_, v []byte) error {
			var ev events.Event
			if err := decodeJSON(v, &ev); err != nil {
				return fmt.Errorf("boltstore: decode event: %w", err)
			}
			out = append(out, &ev)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

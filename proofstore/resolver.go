package proofstore

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxPackResponseSize is the maximum allowed response body size for remote
// pack fetches (64 MB). Allow-lists are large but bounded.
const MaxPackResponseSize = 64 << 20

// Resolver fetches proof packs by reference from multiple sources in
// priority order: local FileStore, then remote HTTP endpoints. Remote data
// is only trusted after its hash matches the reference.
type Resolver struct {
	Store     *FileStore   // local content-addressed storage
	Endpoints []string     // publisher/CDN base URLs
	Client    *http.Client // HTTP client for remote fetches; nil uses default
}

// NewResolver creates a Resolver over the given local store.
// Endpoints and Client can be set after creation.
func NewResolver(store *FileStore) *Resolver {
	return &Resolver{
		Store: store,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch retrieves and decodes the pack for ref, trying sources in order:
//  1. Local FileStore
//  2. Remote endpoints (GET {endpoint}/packs/{hex(ref)})
//
// Returns the first verified result or ErrAllSourcesFailed.
func (r *Resolver) Fetch(ref []byte) (*Pack, error) {
	if err := validateRef(ref); err != nil {
		return nil, err
	}

	if r.Store != nil {
		data, err := r.Store.Get(ref)
		if err == nil {
			return DecodePack(data)
		}
		// Only continue if not found; other errors are real failures.
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("proofstore: local store: %w", err)
		}
	}

	refHex := hex.EncodeToString(ref)
	client := r.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	var lastErr error
	for _, ep := range r.Endpoints {
		data, err := fetchFromEndpoint(client, ep, refHex)
		if err != nil {
			lastErr = err
			continue
		}
		// Verify content hash before trusting remote data.
		if !bytes.Equal(Ref(data), ref) {
			lastErr = fmt.Errorf("%w: endpoint %s", ErrHashMismatch, ep)
			continue
		}
		if r.Store != nil {
			// Cache locally; a failure here is not fatal.
			_, _ = r.Store.Put(data)
		}
		return DecodePack(data)
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllSourcesFailed, lastErr)
	}
	return nil, ErrAllSourcesFailed
}

// fetchFromEndpoint downloads pack data from one endpoint.
func fetchFromEndpoint(client *http.Client, endpoint, refHex string) ([]byte, error) {
	url := fmt.Sprintf("%s/packs/%s", endpoint, refHex)
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("proofstore: GET %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("proofstore: GET %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxPackResponseSize))
	if err != nil {
		return nil, fmt.Errorf("proofstore: read %s: %w", url, err)
	}
	return data, nil
}

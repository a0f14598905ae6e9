// Package proofstore publishes and resolves allow-list proof packs: the
// JSON bundles of (root, entries, proofs) the off-chain batch job produces.
// Packs are content-addressed by SHA-256, and the 32-byte address is the
// merkleProofReference a sale phase carries on-chain.
package proofstore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// RefSize is the length of a pack reference (SHA-256 output).
const RefSize = 32

// FileStore stores proof packs on the local filesystem.
// Packs are stored at {baseDir}/{hex(ref[:1])}/{hex(ref)}; the first byte
// (2 hex chars) is used as a subdirectory for sharding.
type FileStore struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStore creates a file-based proof pack store. The directory is
// created if it does not exist.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, ErrInvalidBaseDir
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Ref computes the content address of pack data.
func Ref(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// validateRef checks that the reference is exactly 32 bytes.
func validateRef(ref []byte) error {
	if len(ref) != RefSize {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidRef, len(ref))
	}
	return nil
}

// refPath returns the full file path for a reference.
func (fs *FileStore) refPath(ref []byte) string {
	hexRef := hex.EncodeToString(ref)
	return filepath.Join(fs.baseDir, hexRef[:2], hexRef)
}

// Put stores pack data and returns its content address.
func (fs *FileStore) Put(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPack
	}

	ref := Ref(data)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	path := fs.refPath(ref)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return ref, nil
}

// Get retrieves pack data by reference.
func (fs *FileStore) Get(ref []byte) ([]byte, error) {
	if err := validateRef(ref); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, err := os.ReadFile(fs.refPath(ref))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return data, nil
}

// Has checks whether a pack exists for the reference.
func (fs *FileStore) Has(ref []byte) (bool, error) {
	if err := validateRef(ref); err != nil {
		return false, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, err := os.Stat(fs.refPath(ref))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return true, nil
}

// List returns all stored pack references by scanning the shard directories.
func (fs *FileStore) List() ([][]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	var result [][]byte
	entries, err := os.ReadDir(fs.baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || len(entry.Name()) != 2 {
			continue
		}
		files, err := os.ReadDir(filepath.Join(fs.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			ref, err := hex.DecodeString(f.Name())
			if err != nil || len(ref) != RefSize {
				continue // skip stray files
			}
			result = append(result, ref)
		}
	}
	return result, nil
}

package proofstore

import "errors"

var (
	// ErrNotFound indicates no proof pack exists for the given reference.
	ErrNotFound = errors.New("proofstore: proof pack not found")

	// ErrInvalidRef indicates the reference is not exactly 32 bytes.
	ErrInvalidRef = errors.New("proofstore: reference must be 32 bytes")

	// ErrIOFailure indicates a file read/write error.
	ErrIOFailure = errors.New("proofstore: I/O failure")

	// ErrEmptyPack indicates an attempt to publish an empty pack.
	ErrEmptyPack = errors.New("proofstore: proof pack is empty")

	// ErrInvalidBaseDir indicates the base directory path is invalid.
	ErrInvalidBaseDir = errors.New("proofstore: invalid base directory")

	// ErrHashMismatch indicates remote pack data does not hash to its
	// reference.
	ErrHashMismatch = errors.New("proofstore: content hash mismatch")

	// ErrInvalidPack indicates the pack payload is malformed.
	ErrInvalidPack = errors.New("proofstore: invalid proof pack")

	// ErrAllSourcesFailed indicates neither the local store nor any remote
	// endpoint could provide the pack.
	ErrAllSourcesFailed = errors.New("proofstore: all sources failed")
)

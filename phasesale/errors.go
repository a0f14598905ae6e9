package phasesale

import "errors"

var (
	// ErrInvalidPhaseConfig indicates malformed phase arrays (length
	// mismatch, empty input, bad window, bad root, or bad price).
	ErrInvalidPhaseConfig = errors.New("phasesale: invalid phase config")

	// ErrDuplicateSale indicates the edition already has a sale record.
	ErrDuplicateSale = errors.New("phasesale: sale already exists for edition")

	// ErrUnknownEdition indicates the edition does not exist or has no
	// sale record.
	ErrUnknownEdition = errors.New("phasesale: unknown edition")

	// ErrUnknownPhase indicates the sale has no phase with the given id.
	ErrUnknownPhase = errors.New("phasesale: unknown phase")

	// ErrNotAuthorized indicates the caller is neither the edition's
	// creator nor an authorized agent.
	ErrNotAuthorized = errors.New("phasesale: not authorized")

	// ErrCapsExceedEdition indicates phase mint caps would sum past the
	// edition size.
	ErrCapsExceedEdition = errors.New("phasesale: phase mint caps exceed edition size")

	// ErrZeroQuantity indicates a purchase of zero assets.
	ErrZeroQuantity = errors.New("phasesale: quantity must be positive")

	// ErrIncorrectPayment indicates the payment does not equal
	// price × quantity exactly.
	ErrIncorrectPayment = errors.New("phasesale: incorrect payment")

	// ErrPhaseNotOpen indicates the current time is outside the phase
	// window.
	ErrPhaseNotOpen = errors.New("phasesale: phase not open")

	// ErrMerkleProofInvalid indicates the caller is not on the phase
	// allow-list.
	ErrMerkleProofInvalid = errors.New("phasesale: merkle proof invalid")

	// ErrWalletCapExceeded indicates the purchase would push the wallet
	// past its per-phase limit.
	ErrWalletCapExceeded = errors.New("phasesale: wallet mint limit exceeded")

	// ErrMintCapExceeded indicates the purchase would push the phase past
	// its mint cap.
	ErrMintCapExceeded = errors.New("phasesale: phase mint cap exceeded")
)

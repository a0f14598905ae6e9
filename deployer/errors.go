package deployer

import "errors"

var (
	// ErrAlreadyDeployed indicates a handler already exists at the target
	// address.
	ErrAlreadyDeployed = errors.New("deployer: already deployed at address")

	// ErrInvalidInitCode indicates the handler init code is malformed.
	ErrInvalidInitCode = errors.New("deployer: invalid init code")

	// ErrUnknownVariant indicates an unrecognized handler variant tag.
	ErrUnknownVariant = errors.New("deployer: unknown handler variant")

	// ErrUnknownHandler indicates no handler is deployed at the address.
	ErrUnknownHandler = errors.New("deployer: unknown handler")
)

package sneaker

import (
	"github.com/HPrieto/crypto-sneakers/errors"
)

// Codes 1100-1199 are reserved for this extension.
var (
	// ErrInvalidDestination is returned when a transfer destination is
	// the null address or the registry itself. Sending a token there
	// would lock it up forever.
	ErrInvalidDestination = errors.Register(1100, "invalid destination")

	// ErrPaused is returned when the global circuit breaker is closed
	// and no state changing operation is allowed.
	ErrPaused = errors.Register(1101, "registry is paused")

	// ErrMetadataUnavailable is returned when no metadata resolver is
	// configured.
	ErrMetadataUnavailable = errors.Register(1102, "metadata unavailable")
)

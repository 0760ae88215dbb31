package sneaker

import (
	sneakers "github.com/HPrieto/crypto-sneakers"
	"github.com/HPrieto/crypto-sneakers/errors"
)

// MetadataResolver is the external collaborator serving token metadata.
// GetMetadata returns a raw buffer together with the number of meaningful
// bytes in it. The buffer may be longer than the reported length.
type MetadataResolver interface {
	GetMetadata(db sneakers.ReadOnlyKVStore, id []byte, preferredTransport string) (buf []byte, length int, err error)
}

// TokenMetadata resolves the metadata URI of a minted token through the
// configured resolver. It fails with ErrMetadataUnavailable when no
// resolver is configured, and with ErrNotFound when the token was never
// minted.
func (c *Controller) TokenMetadata(db sneakers.ReadOnlyKVStore, resolver MetadataResolver, id []byte, preferredTransport string) (string, error) {
	if resolver == nil {
		return "", errors.Wrap(ErrMetadataUnavailable, "no resolver configured")
	}
	if err := validateTokenID(id); err != nil {
		return "", err
	}
	if _, err := c.Token(db, id); err != nil {
		return "", err
	}

	buf, length, err := resolver.GetMetadata(db, id, preferredTransport)
	if err != nil {
		return "", errors.Wrap(err, "resolver")
	}
	if length < 0 || length > len(buf) {
		return "", errors.Wrapf(errors.ErrInput, "resolver reported %d bytes in a %d byte buffer", length, len(buf))
	}
	// copy exactly length bytes, the buffer tail is padding
	return string(buf[:length]), nil
}

package sneaker

import (
	"math"
	"regexp"

	"github.com/HPrieto/crypto-sneakers/errors"
	"github.com/HPrieto/crypto-sneakers/orm"
)

var _ orm.Model = (*SneakerToken)(nil)
var _ orm.Model = (*Balance)(nil)

// isTicker matches externally issued catalog tickers, for example
// "JB-JO1RHRSBG".
var isTicker = regexp.MustCompile(`^[A-Z0-9]{2,4}-[A-Z0-9]{2,16}$`).MatchString

const (
	// maxSize is the upper bound of the packed size field. Sizes are
	// stored in tenths, the largest representable shoe size is 6553.5.
	maxSize = math.MaxUint16

	// maxRetailPrice is the upper bound of the packed price field,
	// prices are stored in cents.
	maxRetailPrice = math.MaxUint32

	maxNameLength = 256
)

// Validate ensures all fields fit their storage bounds. It does not require
// the ownership fields to be set, as the balance keeping is maintained by
// the controller and not by each record on its own.
func (t *SneakerToken) Validate() error {
	if t.Brand == BrandUnknown {
		return errors.Wrap(errors.ErrEmpty, "brand")
	}
	if _, ok := brandNames[t.Brand]; !ok {
		return errors.Wrapf(errors.ErrInput, "unknown brand: %d", t.Brand)
	}
	if t.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	if len(t.Name) > maxNameLength {
		return errors.Wrap(errors.ErrOverflow, "name")
	}
	if t.Size == 0 {
		return errors.Wrap(errors.ErrEmpty, "size")
	}
	if t.Size > maxSize {
		return errors.Wrap(errors.ErrOverflow, "size")
	}
	if t.RetailPrice > maxRetailPrice {
		return errors.Wrap(errors.ErrOverflow, "retail price")
	}
	if t.ManufacturedAt < 0 {
		return errors.Wrap(errors.ErrInput, "manufacture timestamp")
	}
	if t.ReleasedAt < 0 {
		return errors.Wrap(errors.ErrInput, "release timestamp")
	}
	if !isTicker(t.Ticker) {
		return errors.Wrapf(errors.ErrInput, "invalid ticker: %q", t.Ticker)
	}
	if len(t.Owner) != 0 {
		if err := t.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	if len(t.Approved) != 0 {
		if err := t.Approved.Validate(); err != nil {
			return errors.Wrap(err, "approved")
		}
	}
	return nil
}

// Validate ensures the count did not drop below zero. This would mean the
// ledger booked a release of a token that the owner never held.
func (b *Balance) Validate() error {
	if b.Count < 0 {
		return errors.Wrap(errors.ErrAmount, "negative count")
	}
	return nil
}

package sneaker

import (
	sneakers "github.com/HPrieto/crypto-sneakers"
	"github.com/HPrieto/crypto-sneakers/errors"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ sneakers.Initializer = (*Initializer)(nil)

// genesisToken is the declaration of a single token in the genesis file.
type genesisToken struct {
	Owner          sneakers.Address `json:"owner"`
	Brand          string           `json:"brand"`
	Name           string           `json:"name"`
	Size           uint32           `json:"size"`
	StyleCode      string           `json:"style_code"`
	Colorway       string           `json:"colorway"`
	RetailPrice    uint64           `json:"retail_price"`
	ManufacturedAt int64            `json:"manufactured_at"`
	ReleasedAt     int64            `json:"released_at"`
	Ticker         string           `json:"ticker"`
}

// FromGenesis mints all tokens declared under the "sneakers" genesis key.
func (*Initializer) FromGenesis(opts sneakers.Options, db sneakers.KVStore) error {
	var declarations []genesisToken
	if err := opts.ReadOptions("sneakers", &declarations); err != nil {
		return errors.Wrap(err, "cannot read genesis declarations")
	}

	control := NewController()
	for i, decl := range declarations {
		brand, ok := brandByName(decl.Brand)
		if !ok {
			return errors.Wrapf(errors.ErrInput, "declaration #%d: unknown brand %q", i, decl.Brand)
		}
		token := SneakerToken{
			Brand:          brand,
			Name:           decl.Name,
			Size:           decl.Size,
			StyleCode:      decl.StyleCode,
			Colorway:       decl.Colorway,
			RetailPrice:    decl.RetailPrice,
			ManufacturedAt: decl.ManufacturedAt,
			ReleasedAt:     decl.ReleasedAt,
			Ticker:         decl.Ticker,
		}
		if _, _, err := control.Issue(db, token, decl.Owner); err != nil {
			return errors.Wrapf(err, "declaration #%d", i)
		}
	}
	return nil
}

// brandByName resolves the human readable brand name used in the genesis
// file into its enum value.
func brandByName(name string) (Brand, bool) {
	for brand, n := range brandNames {
		if n == name {
			return brand, true
		}
	}
	return BrandUnknown, false
}

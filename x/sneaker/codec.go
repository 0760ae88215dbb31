package sneaker

import (
	amino "github.com/tendermint/go-amino"

	sneakers "github.com/HPrieto/crypto-sneakers"
)

// Brand is the enumerated manufacturer category of a sneaker.
type Brand int32

const (
	BrandUnknown Brand = iota
	BrandNike
	BrandJordan
	BrandAdidas
	BrandYeezy
	BrandNewBalance
	BrandAsics
	BrandPuma
	BrandReebok
)

var brandNames = map[Brand]string{
	BrandUnknown:    "unknown",
	BrandNike:       "nike",
	BrandJordan:     "jordan",
	BrandAdidas:     "adidas",
	BrandYeezy:      "yeezy",
	BrandNewBalance: "new_balance",
	BrandAsics:      "asics",
	BrandPuma:       "puma",
	BrandReebok:     "reebok",
}

func (b Brand) String() string {
	if name, ok := brandNames[b]; ok {
		return name
	}
	return "invalid"
}

// SneakerToken is the record of a single minted collectible. All fields but
// Owner and Approved are immutable after minting.
type SneakerToken struct {
	// Brand is the manufacturer category.
	Brand Brand
	// Name is the human readable release name.
	Name string
	// Size is the shoe size in tenths of a size unit, so a size of 10.5
	// is stored as 105.
	Size uint32
	// StyleCode is the manufacturer style code.
	StyleCode string
	// Colorway describes the color combination of the release.
	Colorway string
	// RetailPrice is the original retail price in cents.
	RetailPrice uint64
	// ManufacturedAt is the manufacture time as a unix timestamp.
	ManufacturedAt int64
	// ReleasedAt is the release time as a unix timestamp.
	ReleasedAt int64
	// Ticker is the externally issued catalog ticker. It is globally
	// unique across all minted tokens.
	Ticker string
	// Owner is the address currently holding this token. Always set for
	// a minted token.
	Owner sneakers.Address
	// Approved is the address of the delegate that may transfer this
	// token on the owner's behalf. Empty means no outstanding approval.
	Approved sneakers.Address
}

func (t *SneakerToken) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(t)
}

func (t *SneakerToken) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, t)
}

// Balance counts how many tokens an address currently holds. It is keyed in
// the database by the owner address.
type Balance struct {
	Count int64
}

func (b *Balance) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(b)
}

func (b *Balance) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, b)
}

// IssueTokenMsg mints a new token, assigning the first ownership to Owner.
type IssueTokenMsg struct {
	Owner          sneakers.Address
	Brand          Brand
	Name           string
	Size           uint32
	StyleCode      string
	Colorway       string
	RetailPrice    uint64
	ManufacturedAt int64
	ReleasedAt     int64
	Ticker         string
}

func (m *IssueTokenMsg) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(m)
}

func (m *IssueTokenMsg) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, m)
}

// TransferTokenMsg moves a token owned by the transaction signer to the
// destination address.
type TransferTokenMsg struct {
	To sneakers.Address
	ID []byte
}

func (m *TransferTokenMsg) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(m)
}

func (m *TransferTokenMsg) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, m)
}

// TransferFromTokenMsg moves a token on behalf of its owner. The signer must
// hold an outstanding approval for the token.
type TransferFromTokenMsg struct {
	From sneakers.Address
	To   sneakers.Address
	ID   []byte
}

func (m *TransferFromTokenMsg) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(m)
}

func (m *TransferFromTokenMsg) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, m)
}

// ApproveTokenMsg grants a single delegate the right to transfer the token.
// An empty delegate clears any outstanding approval.
type ApproveTokenMsg struct {
	Delegate sneakers.Address
	ID       []byte
}

func (m *ApproveTokenMsg) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(m)
}

func (m *ApproveTokenMsg) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, m)
}

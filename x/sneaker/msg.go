package sneaker

import (
	sneakers "github.com/HPrieto/crypto-sneakers"
	"github.com/HPrieto/crypto-sneakers/errors"
)

var _ sneakers.Msg = (*IssueTokenMsg)(nil)
var _ sneakers.Msg = (*TransferTokenMsg)(nil)
var _ sneakers.Msg = (*TransferFromTokenMsg)(nil)
var _ sneakers.Msg = (*ApproveTokenMsg)(nil)

// Path returns the routing path for this message.
func (IssueTokenMsg) Path() string {
	return "sneakers/issue_token"
}

// Validate ensures the message can be processed. Ticker uniqueness is
// checked against the database by the handler, not here.
func (m *IssueTokenMsg) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	token := SneakerToken{
		Brand:          m.Brand,
		Name:           m.Name,
		Size:           m.Size,
		StyleCode:      m.StyleCode,
		Colorway:       m.Colorway,
		RetailPrice:    m.RetailPrice,
		ManufacturedAt: m.ManufacturedAt,
		ReleasedAt:     m.ReleasedAt,
		Ticker:         m.Ticker,
	}
	return token.Validate()
}

// Path returns the routing path for this message.
func (TransferTokenMsg) Path() string {
	return "sneakers/transfer_token"
}

// Validate ensures the message can be processed.
func (m *TransferTokenMsg) Validate() error {
	if err := validateDestination(m.To); err != nil {
		return err
	}
	return validateTokenID(m.ID)
}

// Path returns the routing path for this message.
func (TransferFromTokenMsg) Path() string {
	return "sneakers/transfer_from_token"
}

// Validate ensures the message can be processed.
func (m *TransferFromTokenMsg) Validate() error {
	if err := m.From.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := validateDestination(m.To); err != nil {
		return err
	}
	return validateTokenID(m.ID)
}

// Path returns the routing path for this message.
func (ApproveTokenMsg) Path() string {
	return "sneakers/approve_token"
}

// Validate ensures the message can be processed. An empty delegate is a
// valid revocation request.
func (m *ApproveTokenMsg) Validate() error {
	if len(m.Delegate) != 0 {
		if err := m.Delegate.Validate(); err != nil {
			return errors.Wrap(err, "delegate")
		}
	}
	return validateTokenID(m.ID)
}

// validateTokenID ensures given identity is in the canonical 8 byte form.
func validateTokenID(id []byte) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "token id")
	}
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInput, "token id must be 8 bytes, got %d", len(id))
	}
	return nil
}

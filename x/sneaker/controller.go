package sneaker

import (
	"github.com/tendermint/tendermint/libs/common"

	sneakers "github.com/HPrieto/crypto-sneakers"
	"github.com/HPrieto/crypto-sneakers/errors"
	"github.com/HPrieto/crypto-sneakers/orm"
)

// Event log tag keys and values.
const (
	tagAction   = "action"
	tagFrom     = "from"
	tagTo       = "to"
	tagOwner    = "owner"
	tagDelegate = "delegate"
	tagTokenID  = "token-id"

	actionTransfer = "transfer"
	actionApprove  = "approve"
)

// Controller is the ledger logic around token ownership. It is the only
// place that writes owner, approval and balance state.
type Controller struct {
	tokens   orm.ModelBucket
	balances orm.ModelBucket
	seq      orm.Sequence
}

// NewController returns a controller operating on the canonical buckets.
func NewController() *Controller {
	return &Controller{
		tokens:   NewTokenBucket(),
		balances: NewBalanceBucket(),
		seq:      NewTokenSeq(),
	}
}

// Issue mints a new token with the next sequential identity and assigns the
// first ownership to the owner. A Transfer tag with an empty source is
// emitted, same as for any other ownership change.
func (c *Controller) Issue(db sneakers.KVStore, token SneakerToken, owner sneakers.Address) ([]byte, []common.KVPair, error) {
	id, err := c.seq.NextVal(db)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot acquire token id")
	}

	// The record is stored without ownership data first. Move fills in
	// the owner and books the balance, so that every ownership write
	// goes through the same single routine.
	token.Owner = nil
	token.Approved = nil
	if err := c.tokens.Put(db, id, &token); err != nil {
		return nil, nil, errors.Wrapf(err, "ticker %q", token.Ticker)
	}

	tags, err := c.Move(db, nil, owner, id)
	if err != nil {
		return nil, nil, err
	}
	return id, tags, nil
}

// Move reassigns the ownership of a token. This is the single choke point
// for all ownership changes. An empty from address means the mint path: no
// balance is released. Otherwise from must match the current owner.
//
// Any outstanding approval on the token is cleared, and a Transfer tag is
// appended unconditionally.
func (c *Controller) Move(db sneakers.KVStore, from, to sneakers.Address, id []byte) ([]common.KVPair, error) {
	var token SneakerToken
	if err := c.tokens.One(db, id, &token); err != nil {
		return nil, errors.Wrap(err, "no such token")
	}

	if len(from) != 0 {
		if !token.Owner.Equals(from) {
			return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not the owner", from)
		}
		if err := c.debit(db, from); err != nil {
			return nil, err
		}
	}
	if err := c.credit(db, to); err != nil {
		return nil, err
	}

	token.Owner = to
	token.Approved = nil
	if err := c.tokens.Put(db, id, &token); err != nil {
		return nil, errors.Wrap(err, "cannot store token")
	}

	return []common.KVPair{
		{Key: []byte(tagAction), Value: []byte(actionTransfer)},
		{Key: []byte(tagFrom), Value: from},
		{Key: []byte(tagTo), Value: to},
		{Key: []byte(tagTokenID), Value: id},
	}, nil
}

// Approve sets the delegate allowed to transfer the token on the owner's
// behalf, overwriting any previous delegate. An empty delegate clears the
// approval. The caller must have verified that the request comes from the
// current owner.
//
// This is the only path that emits an Approval tag. Approval clearing as a
// side effect of a transfer is not logged.
func (c *Controller) Approve(db sneakers.KVStore, id []byte, delegate sneakers.Address) ([]common.KVPair, error) {
	var token SneakerToken
	if err := c.tokens.One(db, id, &token); err != nil {
		return nil, errors.Wrap(err, "no such token")
	}

	token.Approved = delegate
	if err := c.tokens.Put(db, id, &token); err != nil {
		return nil, errors.Wrap(err, "cannot store token")
	}

	return []common.KVPair{
		{Key: []byte(tagAction), Value: []byte(actionApprove)},
		{Key: []byte(tagOwner), Value: token.Owner},
		{Key: []byte(tagDelegate), Value: delegate},
		{Key: []byte(tagTokenID), Value: id},
	}, nil
}

// OwnerOf returns the current owner of the token, or ErrNotFound if no such
// token was minted.
func (c *Controller) OwnerOf(db sneakers.ReadOnlyKVStore, id []byte) (sneakers.Address, error) {
	var token SneakerToken
	if err := c.tokens.One(db, id, &token); err != nil {
		return nil, err
	}
	return token.Owner, nil
}

// ApprovedFor returns the outstanding delegate for the token, or nil when
// there is none. ErrNotFound if no such token was minted.
func (c *Controller) ApprovedFor(db sneakers.ReadOnlyKVStore, id []byte) (sneakers.Address, error) {
	var token SneakerToken
	if err := c.tokens.One(db, id, &token); err != nil {
		return nil, err
	}
	return token.Approved, nil
}

// Token loads the full record of a minted token.
func (c *Controller) Token(db sneakers.ReadOnlyKVStore, id []byte) (*SneakerToken, error) {
	var token SneakerToken
	if err := c.tokens.One(db, id, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// TokenByTicker finds a minted token by its catalog ticker and returns it
// together with its identity.
func (c *Controller) TokenByTicker(db sneakers.ReadOnlyKVStore, ticker string) ([]byte, *SneakerToken, error) {
	var token SneakerToken
	id, err := c.tokens.OneByIndex(db, tickerIndex, []byte(ticker), &token)
	if err != nil {
		return nil, nil, err
	}
	return id, &token, nil
}

// BalanceOf returns the number of tokens held by the address. Zero for any
// address that never held a token.
func (c *Controller) BalanceOf(db sneakers.ReadOnlyKVStore, owner sneakers.Address) (int64, error) {
	var balance Balance
	switch err := c.balances.One(db, owner, &balance); {
	case err == nil:
		return balance.Count, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// TotalSupply returns the number of minted tokens. Token identities are
// dense, so this is also the identity of the most recently minted token.
func (c *Controller) TotalSupply(db sneakers.ReadOnlyKVStore) (int64, error) {
	total, _, err := c.seq.Latest(db)
	return total, err
}

// TokensOfOwner returns the ordered identities of all tokens held by the
// owner, encoded the same way every other operation addresses tokens.
// When the balance is zero no scan is performed. Otherwise this walks
// the whole identity space and must stay a read-only query, it is never
// called by any state changing operation.
func (c *Controller) TokensOfOwner(db sneakers.ReadOnlyKVStore, owner sneakers.Address) ([][]byte, error) {
	count, err := c.BalanceOf(db, owner)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	total, err := c.TotalSupply(db)
	if err != nil {
		return nil, err
	}

	ids := make([][]byte, 0, count)
	for i := int64(1); i <= total; i++ {
		id := orm.EncodeSequence(i)
		var token SneakerToken
		if err := c.tokens.One(db, id, &token); err != nil {
			return nil, errors.Wrapf(err, "token %d", i)
		}
		if token.Owner.Equals(owner) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (c *Controller) credit(db sneakers.KVStore, owner sneakers.Address) error {
	var balance Balance
	switch err := c.balances.One(db, owner, &balance); {
	case err == nil, errors.ErrNotFound.Is(err):
		// a missing entry counts as zero
	default:
		return err
	}
	balance.Count++
	return c.balances.Put(db, owner, &balance)
}

func (c *Controller) debit(db sneakers.KVStore, owner sneakers.Address) error {
	var balance Balance
	if err := c.balances.One(db, owner, &balance); err != nil {
		return errors.Wrapf(err, "no balance for %s", owner)
	}
	balance.Count--
	return c.balances.Put(db, owner, &balance)
}

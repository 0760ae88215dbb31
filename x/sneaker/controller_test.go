package sneaker

import (
	"testing"

	"github.com/tendermint/tendermint/libs/common"

	sneakers "github.com/HPrieto/crypto-sneakers"
	"github.com/HPrieto/crypto-sneakers/errors"
	"github.com/HPrieto/crypto-sneakers/orm"
	"github.com/HPrieto/crypto-sneakers/sneakerstest"
	"github.com/HPrieto/crypto-sneakers/sneakerstest/assert"
	"github.com/HPrieto/crypto-sneakers/store"
)

func TestControllerIssue(t *testing.T) {
	db := store.MemStore()
	control := NewController()
	alice := sneakerstest.NewCondition().Address()

	id, tags, err := control.Issue(db, validToken(), alice)
	assert.Nil(t, err)
	assert.Equal(t, sneakerstest.SequenceID(1), id)

	owner, err := control.OwnerOf(db, id)
	assert.Nil(t, err)
	assert.Equal(t, alice, owner)

	balance, err := control.BalanceOf(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), balance)

	total, err := control.TotalSupply(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), total)

	// minting logs a transfer from the null address
	assertTransferTag(t, tags, nil, alice, id)

	// a fresh token has no outstanding approval
	delegate, err := control.ApprovedFor(db, id)
	assert.Nil(t, err)
	assert.Nil(t, delegate)
}

func TestControllerIssueDuplicateTicker(t *testing.T) {
	db := store.MemStore()
	control := NewController()
	alice := sneakerstest.NewCondition().Address()
	bobby := sneakerstest.NewCondition().Address()

	id, _, err := control.Issue(db, validToken(), alice)
	assert.Nil(t, err)

	// a second token with the same ticker must be rejected
	cache := db.CacheWrap()
	second := validToken()
	second.Name = "Air Jordan 1 Reimagined"
	if _, _, err := control.Issue(cache, second, bobby); !errors.ErrDuplicate.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	cache.Discard()

	// the first mint must be untouched
	owner, err := control.OwnerOf(db, id)
	assert.Nil(t, err)
	assert.Equal(t, alice, owner)
	total, err := control.TotalSupply(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), total)
}

func TestControllerMove(t *testing.T) {
	db := store.MemStore()
	control := NewController()
	alice := sneakerstest.NewCondition().Address()
	bobby := sneakerstest.NewCondition().Address()

	id, _, err := control.Issue(db, validToken(), alice)
	assert.Nil(t, err)

	_, err = control.Approve(db, id, bobby)
	assert.Nil(t, err)

	tags, err := control.Move(db, alice, bobby, id)
	assert.Nil(t, err)
	assertTransferTag(t, tags, alice, bobby, id)

	owner, err := control.OwnerOf(db, id)
	assert.Nil(t, err)
	assert.Equal(t, bobby, owner)

	// the approval must not survive the ownership change
	delegate, err := control.ApprovedFor(db, id)
	assert.Nil(t, err)
	assert.Nil(t, delegate)

	aliceBalance, err := control.BalanceOf(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), aliceBalance)
	bobbyBalance, err := control.BalanceOf(db, bobby)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), bobbyBalance)
}

func TestControllerMoveStaleOwner(t *testing.T) {
	db := store.MemStore()
	control := NewController()
	alice := sneakerstest.NewCondition().Address()
	bobby := sneakerstest.NewCondition().Address()
	carol := sneakerstest.NewCondition().Address()

	id, _, err := control.Issue(db, validToken(), alice)
	assert.Nil(t, err)

	cache := db.CacheWrap()
	if _, err := control.Move(cache, bobby, carol, id); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	cache.Discard()

	owner, err := control.OwnerOf(db, id)
	assert.Nil(t, err)
	assert.Equal(t, alice, owner)
}

func TestControllerMoveMissingToken(t *testing.T) {
	db := store.MemStore()
	control := NewController()
	alice := sneakerstest.NewCondition().Address()
	bobby := sneakerstest.NewCondition().Address()

	if _, err := control.Move(db, alice, bobby, sneakerstest.SequenceID(42)); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	if _, err := control.OwnerOf(db, sneakerstest.SequenceID(42)); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestControllerApprove(t *testing.T) {
	db := store.MemStore()
	control := NewController()
	alice := sneakerstest.NewCondition().Address()
	bobby := sneakerstest.NewCondition().Address()

	id, _, err := control.Issue(db, validToken(), alice)
	assert.Nil(t, err)

	tags, err := control.Approve(db, id, bobby)
	assert.Nil(t, err)
	assert.Equal(t, 4, len(tags))
	assert.Equal(t, []byte(actionApprove), tags[0].Value)
	assert.Equal(t, []byte(alice), tags[1].Value)
	assert.Equal(t, []byte(bobby), tags[2].Value)
	assert.Equal(t, id, tags[3].Value)

	delegate, err := control.ApprovedFor(db, id)
	assert.Nil(t, err)
	assert.Equal(t, bobby, delegate)

	// an empty delegate clears the approval
	_, err = control.Approve(db, id, nil)
	assert.Nil(t, err)
	delegate, err = control.ApprovedFor(db, id)
	assert.Nil(t, err)
	assert.Nil(t, delegate)
}

func TestControllerBalanceInvariant(t *testing.T) {
	db := store.MemStore()
	control := NewController()
	var owners []sneakers.Address
	for i := 0; i < 4; i++ {
		owners = append(owners, sneakerstest.NewCondition().Address())
	}

	tickers := []string{"JB-ONE", "NK-TWO", "AD-THREE", "NB-FOUR", "AS-FIVE"}
	for i, ticker := range tickers {
		token := validToken()
		token.Ticker = ticker
		if _, _, err := control.Issue(db, token, owners[i%len(owners)]); err != nil {
			t.Fatalf("cannot issue %q: %+v", ticker, err)
		}
	}

	// shuffle some tokens around
	assertMove := func(from, to sneakers.Address, id uint64) {
		t.Helper()
		if _, err := control.Move(db, from, to, sneakerstest.SequenceID(id)); err != nil {
			t.Fatalf("cannot move %d: %+v", id, err)
		}
	}
	assertMove(owners[0], owners[1], 1)
	assertMove(owners[1], owners[2], 2)
	assertMove(owners[2], owners[3], 3)
	assertMove(owners[1], owners[0], 1)

	// the sum of all balances must equal the number of minted tokens
	total, err := control.TotalSupply(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(len(tickers)), total)

	var sum int64
	for _, owner := range owners {
		balance, err := control.BalanceOf(db, owner)
		assert.Nil(t, err)
		if balance < 0 {
			t.Fatalf("negative balance for %s", owner)
		}
		sum += balance
	}
	assert.Equal(t, total, sum)
}

func TestControllerTokensOfOwner(t *testing.T) {
	db := store.MemStore()
	control := NewController()
	alice := sneakerstest.NewCondition().Address()
	bobby := sneakerstest.NewCondition().Address()
	carol := sneakerstest.NewCondition().Address()

	for i, ticker := range []string{"JB-ONE", "NK-TWO", "AD-THREE"} {
		token := validToken()
		token.Ticker = ticker
		owner := alice
		if i == 1 {
			owner = bobby
		}
		_, _, err := control.Issue(db, token, owner)
		assert.Nil(t, err)
	}

	ids, err := control.TokensOfOwner(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{sneakerstest.SequenceID(1), sneakerstest.SequenceID(3)}, ids)

	ids, err = control.TokensOfOwner(db, bobby)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{sneakerstest.SequenceID(2)}, ids)

	// zero balance returns empty without a scan
	ids, err = control.TokensOfOwner(db, carol)
	assert.Nil(t, err)
	assert.Nil(t, ids)
}

func TestControllerTokenByTicker(t *testing.T) {
	db := store.MemStore()
	control := NewController()
	alice := sneakerstest.NewCondition().Address()

	id, _, err := control.Issue(db, validToken(), alice)
	assert.Nil(t, err)

	gotID, token, err := control.TokenByTicker(db, "JB-JO1RHRSBG")
	assert.Nil(t, err)
	assert.Equal(t, id, gotID)
	assert.Equal(t, "Air Jordan 1 Retro High", token.Name)

	if _, _, err := control.TokenByTicker(db, "JB-UNKNOWN"); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestTokenIdentitiesAreSequential(t *testing.T) {
	db := store.MemStore()
	control := NewController()
	alice := sneakerstest.NewCondition().Address()

	for i, ticker := range []string{"JB-ONE", "NK-TWO", "AD-THREE"} {
		token := validToken()
		token.Ticker = ticker
		id, _, err := control.Issue(db, token, alice)
		assert.Nil(t, err)
		assert.Equal(t, orm.EncodeSequence(int64(i+1)), id)
	}
}

func assertTransferTag(t *testing.T, tags []common.KVPair, from, to sneakers.Address, id []byte) {
	t.Helper()
	assert.Equal(t, 4, len(tags))
	assert.Equal(t, []byte(tagAction), tags[0].Key)
	assert.Equal(t, []byte(actionTransfer), tags[0].Value)
	assert.Equal(t, []byte(from), tags[1].Value)
	assert.Equal(t, []byte(to), tags[2].Value)
	assert.Equal(t, id, tags[3].Value)
}

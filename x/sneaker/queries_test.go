package sneaker

import (
	"testing"

	sneakers "github.com/HPrieto/crypto-sneakers"
	"github.com/HPrieto/crypto-sneakers/errors"
	"github.com/HPrieto/crypto-sneakers/sneakerstest"
	"github.com/HPrieto/crypto-sneakers/sneakerstest/assert"
	"github.com/HPrieto/crypto-sneakers/store"
)

func TestSupportsInterface(t *testing.T) {
	cases := map[string]struct {
		signature [4]byte
		want      bool
	}{
		"introspection standard": {
			signature: [4]byte{0x01, 0xff, 0xc9, 0xa7},
			want:      true,
		},
		"ownership protocol": {
			signature: [4]byte{0x9a, 0x20, 0x48, 0x3d},
			want:      true,
		},
		"unknown signature": {
			signature: [4]byte{0xde, 0xad, 0xbe, 0xef},
			want:      false,
		},
		"zero signature": {
			signature: [4]byte{},
			want:      false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := SupportsInterface(tc.signature); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestRegisterQuery(t *testing.T) {
	db := store.MemStore()
	control := NewController()
	alice := sneakerstest.NewCondition().Address()
	bobby := sneakerstest.NewCondition().Address()

	_, _, err := control.Issue(db, validToken(), alice)
	assert.Nil(t, err)

	dunk := validToken()
	dunk.Brand = BrandNike
	dunk.Name = "Dunk Low Retro"
	dunk.StyleCode = "DD1391-100"
	dunk.Colorway = "white/black"
	dunk.Ticker = "NK-DUNKPANDA"
	_, _, err = control.Issue(db, dunk, bobby)
	assert.Nil(t, err)

	qr := sneakers.NewQueryRouter()
	qr.RegisterAll(RegisterQuery)

	tokens := qr.Handler("/sneakers")
	if tokens == nil {
		t.Fatal("no token query handler registered")
	}

	// Primary key lookup returns the full database key and the stored
	// serialization of the token.
	res, err := tokens.Query(db, sneakers.KeyQueryMod, sneakerstest.SequenceID(2))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	wantKey := append([]byte(tokenBucketName+":"), sneakerstest.SequenceID(2)...)
	assert.Equal(t, wantKey, res[0].Key)
	var got SneakerToken
	assert.Nil(t, got.Unmarshal(res[0].Value))
	assert.Equal(t, "NK-DUNKPANDA", got.Ticker)
	assert.Equal(t, bobby, got.Owner)

	// Lookup of an identity that was never assigned is empty, not an error.
	res, err = tokens.Query(db, sneakers.KeyQueryMod, sneakerstest.SequenceID(66))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	// Prefix scan over the whole bucket returns every token and nothing
	// else. Sequence counters, index entries and balances live under
	// their own prefixes.
	res, err = tokens.Query(db, sneakers.PrefixQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))
	for i, r := range res {
		var tok SneakerToken
		assert.Nil(t, tok.Unmarshal(r.Value))
		wantKey := append([]byte(tokenBucketName+":"), sneakerstest.SequenceID(uint64(i+1))...)
		assert.Equal(t, wantKey, r.Key)
	}

	// Ticker index lookups resolve to the token they reference.
	byTicker := qr.Handler("/sneakers/" + tickerIndex)
	if byTicker == nil {
		t.Fatal("no ticker query handler registered")
	}
	res, err = byTicker.Query(db, sneakers.KeyQueryMod, []byte("JB-JO1RHRSBG"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	got = SneakerToken{}
	assert.Nil(t, got.Unmarshal(res[0].Value))
	assert.Equal(t, alice, got.Owner)

	res, err = byTicker.Query(db, sneakers.KeyQueryMod, []byte("RB-NOSUCH"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	if _, err := byTicker.Query(db, sneakers.PrefixQueryMod, nil); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	// Balances are served from their own bucket path.
	balances := qr.Handler("/sneakerbalances")
	if balances == nil {
		t.Fatal("no balance query handler registered")
	}
	res, err = balances.Query(db, sneakers.KeyQueryMod, alice)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	var balance Balance
	assert.Nil(t, balance.Unmarshal(res[0].Value))
	assert.Equal(t, int64(1), balance.Count)
}

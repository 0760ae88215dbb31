package sneaker

import (
	"github.com/HPrieto/crypto-sneakers/orm"
)

const (
	tokenBucketName   = "sneakers"
	balanceBucketName = "sneakerbal"

	// tickerIndex is the unique secondary index mapping catalog tickers
	// to token identities.
	tickerIndex = "ticker"
)

// NewTokenBucket returns a bucket for keeping SneakerToken records, keyed by
// their 8 byte identity. Tickers are enforced to be globally unique.
func NewTokenBucket() orm.ModelBucket {
	return orm.NewModelBucket(tokenBucketName, &SneakerToken{},
		orm.WithUniqueIndex(tickerIndex, indexTicker),
	)
}

func indexTicker(m orm.Model) ([]byte, error) {
	return []byte(m.(*SneakerToken).Ticker), nil
}

// NewBalanceBucket returns a bucket for keeping per owner token counts,
// keyed by the owner address.
func NewBalanceBucket() orm.ModelBucket {
	return orm.NewModelBucket(balanceBucketName, &Balance{})
}

// NewTokenSeq returns the sequence that assigns token identities. The first
// issued token gets identity 1. Identity 0 is the universal "no token"
// sentinel and is never assigned.
func NewTokenSeq() orm.Sequence {
	return orm.NewSequence(tokenBucketName, "id")
}

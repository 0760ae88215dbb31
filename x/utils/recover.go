// Package utils provides generic decorators that are useful for any
// handler chain.
package utils

import (
	sneakers "github.com/HPrieto/crypto-sneakers"
	"github.com/HPrieto/crypto-sneakers/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can return them as normal errors.
type Recovery struct{}

var _ sneakers.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors.
func (r Recovery) Check(ctx sneakers.Context, db sneakers.KVStore, tx sneakers.Tx, next sneakers.Checker) (_ *sneakers.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

// Deliver turns panics into normal errors.
func (r Recovery) Deliver(ctx sneakers.Context, db sneakers.KVStore, tx sneakers.Tx, next sneakers.Deliverer) (_ *sneakers.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}

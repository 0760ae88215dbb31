package sneakers

import (
	"context"
	"regexp"
	"time"

	"github.com/HPrieto/crypto-sneakers/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is just a type alias for the standard implementation.
type Context = context.Context

// contextKey is an internal type for keys we store in the Context.
type contextKey int

const (
	contextKeyHeight contextKey = iota
	contextKeyTime
	contextKeyChainID
	contextKeyLogger
)

var (
	// DefaultLogger is used for all contexts that have not set anything
	// themselves.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeight sets the block height for the Context. Must only be called
// once.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("Height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height. The second argument is false
// if no height was set.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithBlockTime sets the block time for the Context. Must only be called
// once.
func WithBlockTime(ctx Context, t time.Time) Context {
	if _, ok := BlockTime(ctx); ok {
		panic("Block time already set")
	}
	return context.WithValue(ctx, contextKeyTime, t.UTC())
}

// BlockTime returns the block creation time. The second argument is false
// if no time was set.
func BlockTime(ctx Context) (time.Time, bool) {
	val, ok := ctx.Value(contextKeyTime).(time.Time)
	return val, ok
}

// WithChainID sets the chain id for the Context. Must only be called once.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Chain ID already set")
	}
	if !IsValidChainID(chainID) {
		panic(errors.Wrapf(errors.ErrInput, "chain id: %v", chainID))
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the chain id. Panics if no chain id was set, as all
// proper setup must define it.
func GetChainID(ctx Context) string {
	if ctx.Value(contextKeyChainID) == nil {
		panic("Chain id is not in context")
	}
	return ctx.Value(contextKeyChainID).(string)
}

// WithLogger sets the logger for the Context.
func WithLogger(ctx Context, logger log.Logger) Context {
	// Logger can be overridden below... no problem
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the logger stored in the Context, or DefaultLogger if
// none was set.
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// GetLogInfo accepts key-value pairs and returns another logger bound to
// that info.
func GetLogInfo(ctx Context, keyvals ...interface{}) log.Logger {
	return GetLogger(ctx).With(keyvals...)
}

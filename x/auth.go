package x

import (
	sneakers "github.com/HPrieto/crypto-sneakers"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding one implementation for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want GetAddresses helper
	GetConditions(sneakers.Context) []sneakers.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(sneakers.Context, sneakers.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx sneakers.Context) []sneakers.Condition {
	var res []sneakers.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator supports this
func (m MultiAuth) HasAddress(ctx sneakers.Context, addr sneakers.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator
func GetAddresses(ctx sneakers.Context, auth Authenticator) []sneakers.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]sneakers.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first permission if any, otherwise nil
func MainSigner(ctx sneakers.Context, auth Authenticator) sneakers.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx sneakers.Context, auth Authenticator, required []sneakers.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasAllConditions returns true if all elements in required are
// also in context.
func HasAllConditions(ctx sneakers.Context, auth Authenticator, required []sneakers.Condition) bool {
	return HasNConditions(ctx, auth, required, len(required))
}

// HasNConditions returns true if at least n elements in requested are
// also in context.
// Useful for threshold conditions (1 of 3, 3 of 5, etc...)
func HasNConditions(ctx sneakers.Context, auth Authenticator, requested []sneakers.Condition, n int) bool {
	if n <= 0 {
		return true
	}
	perms := auth.GetConditions(ctx)
	for _, perm := range requested {
		if hasPerm(perms, perm) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}

func hasPerm(perms []sneakers.Condition, perm sneakers.Condition) bool {
	for _, p := range perms {
		if p.Equals(perm) {
			return true
		}
	}
	return false
}

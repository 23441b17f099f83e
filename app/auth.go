package app

import (
	"context"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/x"
)

type contextKey int

const contextKeySigners contextKey = iota

// withSigners stores the conditions authorizing this submission in the
// context, where handlers find them through the Authenticator.
func withSigners(ctx tokenswap.Context, signers []tokenswap.Condition) tokenswap.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate returns the authenticator revealing the signers the
// Ledger attached to the submission context.
func Authenticate() x.Authenticator {
	return ctxAuth{}
}

type ctxAuth struct{}

var _ x.Authenticator = ctxAuth{}

func (ctxAuth) GetConditions(ctx tokenswap.Context) []tokenswap.Condition {
	signers, _ := ctx.Value(contextKeySigners).([]tokenswap.Condition)
	return signers
}

func (a ctxAuth) HasAddress(ctx tokenswap.Context, addr tokenswap.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

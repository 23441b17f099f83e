package swaptest

import (
	"context"
	"fmt"

	"github.com/iov-one/tokenswap"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions. You can
// use either Signer or Signers (or both) attributes to reference
// conditions. This is for the convinience and each time all signers
// (regardless which attribute) are considered.
type Auth struct {
	// Signer represents an authentication of a single signer. This is a
	// convinience attribute when creating an authentication method for a
	// single signer.
	// When authenticating all signers declared on this structure are
	// considered.
	Signer tokenswap.Condition

	// Signers represents an authentication of multiple signers.
	Signers []tokenswap.Condition
}

func (a *Auth) GetConditions(tokenswap.Context) []tokenswap.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx tokenswap.Context, addr tokenswap.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convinience only string type keys are allowed.
	Key string
}

type ctxKey string

func (a *CtxAuth) SetConditions(ctx tokenswap.Context, permissions ...tokenswap.Condition) tokenswap.Context {
	return context.WithValue(ctx, ctxKey(a.Key), permissions)
}

func (a *CtxAuth) GetConditions(ctx tokenswap.Context) []tokenswap.Condition {
	val := ctx.Value(ctxKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]tokenswap.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []tokenswap.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx tokenswap.Context, addr tokenswap.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

package tokenswap

import "context"

// Context is the execution context passed through handlers. It carries
// request-scoped data like the authenticated conditions.
type Context = context.Context

// CheckResult captures the expected cost of executing a transaction,
// without applying any state change.
type CheckResult struct {
	// GasAllocated is the maximum units of work we allow this tx to perform
	GasAllocated int64
}

// DeliverResult captures any system data returned from executing a
// transaction against the permanent state.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
}

// Handler is a core engine that can process a few specific messages
// This could represent "coin transfer", or "make a swap offer"
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It must not apply any state change.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction against the
// permanent state.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(path string, h Handler)
}

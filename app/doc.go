/*
Package app assembles the extensions into a usable ledger.

The Router maps message paths to handlers. The Ledger wraps a cacheable
key-value store together with the router and exposes the only write
entry point, Submit, which applies a transaction atomically: all of its
effects are committed, or none are.
*/
package app

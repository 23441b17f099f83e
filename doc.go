/*
Package tokenswap defines the core types for an escrow-based token swap
ledger: deterministic addresses derived from conditions, message and
handler contracts, and key-value stores with all-or-nothing cache-wrap
commits.

A maker locks (or delegates) a quantity of one token against a promised
quantity of another; a taker settles the offer in a single atomic step.
The extensions under x/ implement the moving parts: x/cash holds the
wallets and delegations, x/swap holds the offer registry, the custody
strategies and the swap executor.
*/
package tokenswap

/*
Package swap implements an atomic token exchange between two parties.

A maker opens an offer: a fixed amount of one token in exchange for a
fixed amount of another. The offer lives at an address derived purely
from the maker and a maker-chosen id, so maker and taker can both
compute it without any registry lookup. A taker settles the offer in a
single atomic transaction: the offered tokens reach the taker and the
wanted tokens reach the maker, or nothing happens at all.

Two custody strategies immobilize the offered tokens for the lifetime
of the offer:

Vault: the tokens move into a program-owned vault account on make and
leave it on take. Custodially safe, but pays for an extra account.

Delegated approval: the tokens stay in the maker's wallet under a
spending delegation to the offer. Cheaper, but the maker can drain the
wallet in the meantime, so the take must re-check the maker's balance
at execution time and may legitimately fail through no fault of the
taker.
*/
package swap

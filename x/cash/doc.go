/*
Package cash defines a simple implementation of sending tokens
between accounts.

It keeps one wallet per account address, tracking the balance of every
token held. The Controller moves tokens between wallets, answers
balance queries and maintains spending delegations: a standing,
revocable authorization that lets a named delegate spend up to a fixed
amount from the owner's wallet without taking custody.

There is no minting here. Balances enter the store through genesis-like
test fixtures or through a higher application layer.
*/
package cash

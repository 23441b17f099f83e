package swaptest

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/crypto"
)

func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

func NewCondition() tokenswap.Condition {
	return NewKey().PublicKey().Condition()
}

package cash

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
)

// AllowanceBucketName is where we store spending delegations
const AllowanceBucketName = "allow"

// Allowance is a standing authorization on an owner's wallet, letting
// a delegate spend up to Amount without taking custody. The nominal
// amount is not tied to the owner's balance; the owner may spend the
// tokens elsewhere and leave the allowance uncovered.
type Allowance struct {
	Amount coin.Coin
}

var _ orm.Model = (*Allowance)(nil)

// Validate ensures the allowance amount is sane
func (a *Allowance) Validate() error {
	if err := a.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !a.Amount.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative allowance")
	}
	return nil
}

// Copy makes a new allowance with the same amount
func (a *Allowance) Copy() orm.CloneableData {
	return &Allowance{
		Amount: *a.Amount.Clone(),
	}
}

// NewAllowanceBucket initializes an allowance ModelBucket
func NewAllowanceBucket() orm.ModelBucket {
	return orm.NewModelBucket(orm.NewBucket(AllowanceBucketName, orm.NewSimpleObj(nil, &Allowance{})))
}

// allowanceKey is the composite primary key for a delegation:
// owner, delegate and the token the delegate may spend.
func allowanceKey(owner, delegate tokenswap.Address, ticker string) []byte {
	out := make([]byte, 0, len(owner)+len(delegate)+len(ticker))
	out = append(out, owner...)
	out = append(out, delegate...)
	return append(out, ticker...)
}

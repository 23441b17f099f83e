package cash

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
)

var (
	// ErrInsufficientFunds is returned when the source wallet does not
	// hold the amount being moved
	ErrInsufficientFunds = errors.Register(1000, "insufficient funds")

	// ErrEmptyAccount is returned when moving out of an account that
	// was never funded
	ErrEmptyAccount = errors.Register(1001, "account empty")

	// ErrInsufficientAllowance is returned when a delegate spends more
	// than the granted allowance
	ErrInsufficientAllowance = errors.Register(1002, "insufficient allowance")
)

// CoinMover is the minimal interface for moving tokens between accounts
type CoinMover interface {
	// MoveCoins removes the amount from src wallet and adds it to the
	// dest wallet. It fails if src doesn't exist or holds less.
	MoveCoins(db tokenswap.KVStore, src, dest tokenswap.Address, amount coin.Coin) error
}

// Controller is the functionality needed by handlers and by the swap
// extension. This is a much smaller interface than the whole bucket
// and it is easy to create a mock for unit tests.
type Controller interface {
	CoinMover

	// Balance returns the coins held in the wallet, nil if the wallet
	// does not exist
	Balance(db tokenswap.ReadOnlyKVStore, addr tokenswap.Address) (coin.Coins, error)

	// HasWallet returns true if a wallet record exists at the address
	HasWallet(db tokenswap.ReadOnlyKVStore, addr tokenswap.Address) (bool, error)

	// CloseEmptyWallet removes the wallet record at the address. It
	// fails if any balance remains.
	CloseEmptyWallet(db tokenswap.KVStore, addr tokenswap.Address) error

	// GrantDelegation lets delegate spend up to amount from the owner
	// wallet. It replaces any previous delegation for this token.
	GrantDelegation(db tokenswap.KVStore, owner, delegate tokenswap.Address, amount coin.Coin) error

	// Delegation returns the remaining allowance, a zero coin when none
	// was granted
	Delegation(db tokenswap.ReadOnlyKVStore, owner, delegate tokenswap.Address, ticker string) (coin.Coin, error)

	// MoveDelegatedCoins spends from the owner wallet on behalf of the
	// delegate, consuming the allowance by the amount moved.
	MoveDelegatedCoins(db tokenswap.KVStore, owner, delegate, dest tokenswap.Address, amount coin.Coin) error

	// RevokeDelegation drops any remaining allowance
	RevokeDelegation(db tokenswap.KVStore, owner, delegate tokenswap.Address, ticker string) error
}

// CashController implements Controller interface using a wallet bucket
// and an allowance bucket
type CashController struct {
	bucket     Bucket
	allowances orm.ModelBucket
}

var _ Controller = CashController{}

// NewController returns a basic implementation of the Controller
func NewController(bucket Bucket) CashController {
	return CashController{
		bucket:     bucket,
		allowances: NewAllowanceBucket(),
	}
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c CashController) MoveCoins(db tokenswap.KVStore, src, dest tokenswap.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %v", amount)
	}

	obj, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	sender := AsWallet(obj)
	if sender == nil {
		return errors.Wrapf(ErrEmptyAccount, "%s", src)
	}
	if !sender.Coins().Contains(amount) {
		return errors.Wrapf(ErrInsufficientFunds, "moving %v from %s", amount, src)
	}

	// A transfer to self is already settled by the checks above.
	// Loading the wallet a second time under another name would let
	// the credited copy overwrite the debited one on save.
	if src.Equals(dest) {
		return nil
	}

	obj, err = c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	recipient := AsWallet(obj)

	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	// save them and return
	if err := c.bucket.Save(db, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// Balance returns the coins held in the wallet of this address, or nil
// when the wallet does not exist.
func (c CashController) Balance(db tokenswap.ReadOnlyKVStore, addr tokenswap.Address) (coin.Coins, error) {
	obj, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, err
	}
	return AsCoins(obj), nil
}

// HasWallet returns true if a wallet record exists at the address
func (c CashController) HasWallet(db tokenswap.ReadOnlyKVStore, addr tokenswap.Address) (bool, error) {
	obj, err := c.bucket.Get(db, addr)
	if err != nil {
		return false, err
	}
	return obj != nil, nil
}

// CloseEmptyWallet removes an emptied wallet record, reclaiming the
// storage. It refuses to drop remaining tokens.
func (c CashController) CloseEmptyWallet(db tokenswap.KVStore, addr tokenswap.Address) error {
	obj, err := c.bucket.Get(db, addr)
	if err != nil {
		return err
	}
	if obj == nil {
		return errors.Wrapf(errors.ErrNotFound, "wallet %s", addr)
	}
	if coins := AsCoins(obj); !coins.IsEmpty() {
		return errors.Wrapf(errors.ErrState, "wallet %s still holds %v", addr, coins)
	}
	return c.bucket.Delete(db, addr)
}

// GrantDelegation lets delegate spend up to amount from the owner wallet.
// The owner keeps custody: nothing moves until the delegate spends, and
// the owner is free to spend the same tokens elsewhere meanwhile.
func (c CashController) GrantDelegation(db tokenswap.KVStore, owner, delegate tokenswap.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive allowance: %v", amount)
	}
	key := allowanceKey(owner, delegate, amount.Ticker)
	return c.allowances.Put(db, key, &Allowance{Amount: amount})
}

// Delegation returns the remaining allowance, zero coin when none was granted
func (c CashController) Delegation(db tokenswap.ReadOnlyKVStore, owner, delegate tokenswap.Address, ticker string) (coin.Coin, error) {
	var a Allowance
	err := c.allowances.One(db, allowanceKey(owner, delegate, ticker), &a)
	switch {
	case err == nil:
		return a.Amount, nil
	case errors.ErrNotFound.Is(err):
		return coin.NewCoin(0, ticker), nil
	default:
		return coin.Coin{}, err
	}
}

// MoveDelegatedCoins spends from the owner wallet on behalf of the
// delegate. The nominal allowance must cover the amount, and the owner
// wallet must still hold it; the allowance shrinks by the amount moved
// and is removed once exhausted.
func (c CashController) MoveDelegatedCoins(db tokenswap.KVStore, owner, delegate, dest tokenswap.Address, amount coin.Coin) error {
	allowed, err := c.Delegation(db, owner, delegate, amount.Ticker)
	if err != nil {
		return err
	}
	if !allowed.IsGTE(amount) {
		return errors.Wrapf(ErrInsufficientAllowance, "delegate %s may spend %v", delegate, allowed)
	}

	if err := c.MoveCoins(db, owner, dest, amount); err != nil {
		return err
	}

	remaining, err := allowed.Subtract(amount)
	if err != nil {
		return err
	}
	key := allowanceKey(owner, delegate, amount.Ticker)
	if remaining.IsZero() {
		return c.allowances.Delete(db, key)
	}
	return c.allowances.Put(db, key, &Allowance{Amount: remaining})
}

// RevokeDelegation drops any remaining allowance
func (c CashController) RevokeDelegation(db tokenswap.KVStore, owner, delegate tokenswap.Address, ticker string) error {
	err := c.allowances.Delete(db, allowanceKey(owner, delegate, ticker))
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}

package coin

import (
	"fmt"
	"regexp"

	"github.com/iov-one/tokenswap/errors"
)

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

const (
	// MaxAmount is the largest amount of base units we accept in a coin.
	// Token amounts are whole base units, there is no fractional part.
	MaxAmount int64 = 1<<62 - 1
	// MinAmount is the lowest amount a coin can hold
	MinAmount = -MaxAmount
)

// Coin is an amount of base units of one token. Use the smallest
// indivisible unit of the token as the amount, the same way a token
// account balance is stored on chain.
type Coin struct {
	// Amount is a whole number of base units
	Amount int64 `json:"amount"`
	// Ticker names the token type
	Ticker string `json:"ticker"`
}

// NewCoin creates a new coin object
func NewCoin(amount int64, ticker string) Coin {
	return Coin{
		Amount: amount,
		Ticker: ticker,
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount int64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// ID returns a coin ticker name.
func (c Coin) ID() string {
	return c.Ticker
}

// Add combines two coins of the same ticker.
// It can fail on ticker mismatch or overflow.
func (c Coin) Add(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrAmount, "adding %s to %s", o.Ticker, c.Ticker)
	}
	amount, err := add64(c.Amount, o.Amount)
	if err != nil {
		return Coin{}, err
	}
	res := Coin{Ticker: c.Ticker, Amount: amount}
	return res, res.Validate()
}

// Negative returns the opposite coin value
//   c.Add(c.Negative()).IsZero() == true
func (c Coin) Negative() Coin {
	return Coin{
		Ticker: c.Ticker,
		Amount: -1 * c.Amount,
	}
}

// Subtract given amount
func (c Coin) Subtract(amount Coin) (Coin, error) {
	return c.Add(amount.Negative())
}

// Compare will check values of two coins with the same ticker.
// It returns -1, 0 or 1 when c is less than, equal to or greater than o.
// Panics on ticker mismatch, compare tickers beforehand.
func (c Coin) Compare(o Coin) int {
	if !c.SameType(o) {
		panic(fmt.Sprintf("comparing %s to %s", c.Ticker, o.Ticker))
	}
	switch {
	case c.Amount < o.Amount:
		return -1
	case c.Amount > o.Amount:
		return 1
	default:
		return 0
	}
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// IsEmpty returns true on null or zero amount
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// IsZero returns true if the amount is 0
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the amount is greater than 0
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsNonNegative returns true if the amount is 0 or higher
func (c Coin) IsNonNegative() bool {
	return c.Amount >= 0
}

// IsGTE returns true if c is same type and at least
// as large as o.
// It assumes they were already validated.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// SameType returns true if they have the same ticker
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone provides an independent copy of a coin pointer
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	return &Coin{
		Ticker: c.Ticker,
		Amount: c.Amount,
	}
}

// Validate ensures the amount is in range and the ticker is well formed
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrAmount, "invalid currency: %s", c.Ticker)
	}
	if c.Amount < MinAmount || c.Amount > MaxAmount {
		return errors.Wrap(errors.ErrOverflow, "amount out of range")
	}
	return nil
}

// String provides a human readable representation of the coin
func (c Coin) String() string {
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

// add64 adds two int64 and reports an error on overflow
func add64(a, b int64) (int64, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, errors.Wrap(errors.ErrOverflow, "int64 addition")
	}
	return sum, nil
}

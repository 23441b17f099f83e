package coin

import (
	"sort"
	"strings"

	"github.com/iov-one/tokenswap/errors"
)

// Coins is a set of coins, one per ticker, sorted by ticker and
// containing no zero values.
type Coins []*Coin

// CombineCoins creates a Coins containing all given coins.
// It will sort them and combine duplicates to produce a normalized form.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	for _, c := range cs {
		next, err := res.Add(c)
		if err != nil {
			return nil, err
		}
		res = next
	}
	return res, nil
}

// Clone returns a copy that can be safely modified
func (cs Coins) Clone() Coins {
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add modifies the set, returning a new set with the given coin combined in.
// Zero results drop out of the set.
func (cs Coins) Add(c Coin) (Coins, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	has, idx := cs.findCoin(c.Ticker)
	if has == nil {
		if c.IsZero() {
			return cs, nil
		}
		res := make(Coins, 0, len(cs)+1)
		res = append(res, cs[:idx]...)
		res = append(res, &c)
		res = append(res, cs[idx:]...)
		return res, nil
	}

	sum, err := has.Add(c)
	if err != nil {
		return nil, err
	}
	res := cs.Clone()
	if sum.IsZero() {
		return append(res[:idx], res[idx+1:]...), nil
	}
	res[idx] = &sum
	return res, nil
}

// Subtract removes the given amount from the set.
// The result may contain negative amounts (a debt); callers that care
// must check IsNonNegative.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Combine adds all coins from the other set
func (cs Coins) Combine(o Coins) (Coins, error) {
	res := cs
	var err error
	for _, c := range o {
		res, err = res.Add(*c)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Contains returns true if the set holds at least the given amount
func (cs Coins) Contains(c Coin) bool {
	has, _ := cs.findCoin(c.Ticker)
	if has == nil {
		return !c.IsPositive()
	}
	return has.IsGTE(c)
}

// AmountOf returns the amount of base units held for the given ticker,
// zero when the ticker is absent.
func (cs Coins) AmountOf(ticker string) int64 {
	has, _ := cs.findCoin(ticker)
	if has == nil {
		return 0
	}
	return has.Amount
}

// findCoin returns a coin with the given ticker and its index in the
// set. The index is the insertion point when the ticker is absent.
func (cs Coins) findCoin(ticker string) (*Coin, int) {
	idx := sort.Search(len(cs), func(i int) bool {
		return cs[i].Ticker >= ticker
	})
	if idx == len(cs) || cs[idx].Ticker != ticker {
		return nil, idx
	}
	return cs[idx], idx
}

// IsEmpty returns true for a nil or zero-length set
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// IsPositive returns true there is at least one coin
// and all coins are positive
func (cs Coins) IsPositive() bool {
	return !cs.IsEmpty() && cs.IsNonNegative()
}

// IsNonNegative returns true if all coins are positive,
// but also accepts an empty set
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsPositive() {
			return false
		}
	}
	return true
}

// Equals returns true if both sets contain same coins
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate requires that all coins are valid, sorted by ticker
// with no duplicates and no zero values
func (cs Coins) Validate() error {
	last := ""
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.IsZero() {
			return errors.Wrap(errors.ErrState, "zero coin in set")
		}
		if c.Ticker <= last {
			return errors.Wrap(errors.ErrState, "coins not sorted")
		}
		last = c.Ticker
	}
	return nil
}

// String provides a human readable representation of the set
func (cs Coins) String() string {
	if len(cs) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

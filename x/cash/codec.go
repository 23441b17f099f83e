package cash

import (
	"encoding/binary"

	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
)

// Wallets and allowances persist as little-endian fixed layouts, the
// way token account data is laid out on the target ledger. Only the
// ticker is length-prefixed as it is the single variable field.

func marshalCoin(out []byte, c coin.Coin) []byte {
	out = append(out, byte(len(c.Ticker)))
	out = append(out, c.Ticker...)
	var amt [8]byte
	binary.LittleEndian.PutUint64(amt[:], uint64(c.Amount))
	return append(out, amt[:]...)
}

func unmarshalCoin(data []byte) (coin.Coin, []byte, error) {
	if len(data) < 1 {
		return coin.Coin{}, nil, errors.Wrap(errors.ErrInput, "truncated coin")
	}
	n := int(data[0])
	data = data[1:]
	if len(data) < n+8 {
		return coin.Coin{}, nil, errors.Wrap(errors.ErrInput, "truncated coin")
	}
	c := coin.Coin{
		Ticker: string(data[:n]),
		Amount: int64(binary.LittleEndian.Uint64(data[n : n+8])),
	}
	return c, data[n+8:], nil
}

// Marshal implements the Persistent interface
func (s *Set) Marshal() ([]byte, error) {
	if len(s.Coins) > 255 {
		return nil, errors.Wrap(errors.ErrOverflow, "too many coins in a wallet")
	}
	out := []byte{byte(len(s.Coins))}
	for _, c := range s.Coins {
		out = marshalCoin(out, *c)
	}
	return out, nil
}

// Unmarshal implements the Persistent interface
func (s *Set) Unmarshal(data []byte) error {
	if len(data) < 1 {
		return errors.Wrap(errors.ErrInput, "truncated wallet")
	}
	count := int(data[0])
	data = data[1:]
	coins := make(coin.Coins, 0, count)
	for i := 0; i < count; i++ {
		c, rest, err := unmarshalCoin(data)
		if err != nil {
			return err
		}
		coins = append(coins, &c)
		data = rest
	}
	if len(data) != 0 {
		return errors.Wrap(errors.ErrInput, "trailing wallet bytes")
	}
	s.Coins = coins
	return nil
}

// Marshal implements the Persistent interface
func (a *Allowance) Marshal() ([]byte, error) {
	return marshalCoin(nil, a.Amount), nil
}

// Unmarshal implements the Persistent interface
func (a *Allowance) Unmarshal(data []byte) error {
	c, rest, err := unmarshalCoin(data)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return errors.Wrap(errors.ErrInput, "trailing allowance bytes")
	}
	a.Amount = c
	return nil
}

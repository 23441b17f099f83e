package swap

import (
	"encoding/binary"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
)

// Offers persist as little-endian fixed layouts matching the wallet
// codec in x/cash. Only addresses and tickers are length-prefixed.

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

// appendBytes writes a length-prefixed byte chunk
func appendBytes(out, chunk []byte) []byte {
	out = append(out, byte(len(chunk)))
	return append(out, chunk...)
}

// readBytes reads a length-prefixed byte chunk
func readBytes(data []byte) ([]byte, []byte, error) {
	if len(data) < 1 {
		return nil, nil, errors.Wrap(errors.ErrInput, "truncated chunk")
	}
	n := int(data[0])
	data = data[1:]
	if len(data) < n {
		return nil, nil, errors.Wrap(errors.ErrInput, "truncated chunk")
	}
	return data[:n], data[n:], nil
}

// Marshal implements the Persistent interface
func (o *Offer) Marshal() ([]byte, error) {
	out := sequenceID(o.ID)
	out = appendBytes(out, o.Maker)
	out = marshalCoin(out, o.Offered)
	out = marshalCoin(out, o.Wanted)
	return append(out, byte(o.Custody), byte(o.Status)), nil
}

// Unmarshal implements the Persistent interface
func (o *Offer) Unmarshal(data []byte) error {
	if len(data) < 8 {
		return errors.Wrap(errors.ErrInput, "truncated offer")
	}
	id := binary.LittleEndian.Uint64(data[:8])
	maker, data, err := readBytes(data[8:])
	if err != nil {
		return err
	}
	offered, data, err := unmarshalCoin(data)
	if err != nil {
		return err
	}
	wanted, data, err := unmarshalCoin(data)
	if err != nil {
		return err
	}
	if len(data) != 2 {
		return errors.Wrap(errors.ErrInput, "truncated offer")
	}
	o.ID = id
	o.Maker = tokenswap.Address(maker)
	o.Offered = offered
	o.Wanted = wanted
	o.Custody = CustodyMode(data[0])
	o.Status = Status(data[1])
	return nil
}

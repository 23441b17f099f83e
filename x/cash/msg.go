package cash

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
)

const (
	maxMemoSize int = 128
)

// Ensure we implement the Msg interface
var _ tokenswap.Msg = (*SendMsg)(nil)

// SendMsg is a request to move tokens between two accounts.
type SendMsg struct {
	Source      tokenswap.Address
	Destination tokenswap.Address
	Amount      *coin.Coin
	Memo        string
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	if coin.IsEmpty(s.Amount) || !s.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive SendMsg: %v", s.Amount)
	}
	if err := s.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := s.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := s.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	return nil
}

// Marshal implements the Persistent interface
func (s *SendMsg) Marshal() ([]byte, error) {
	var out []byte
	out = appendBytes(out, s.Source)
	out = appendBytes(out, s.Destination)
	out = marshalCoin(out, *s.Amount)
	return appendBytes(out, []byte(s.Memo)), nil
}

// Unmarshal implements the Persistent interface
func (s *SendMsg) Unmarshal(data []byte) error {
	src, data, err := readBytes(data)
	if err != nil {
		return err
	}
	dst, data, err := readBytes(data)
	if err != nil {
		return err
	}
	amount, data, err := unmarshalCoin(data)
	if err != nil {
		return err
	}
	memo, data, err := readBytes(data)
	if err != nil {
		return err
	}
	if len(data) != 0 {
		return errors.Wrap(errors.ErrInput, "trailing message bytes")
	}
	s.Source = src
	s.Destination = dst
	s.Amount = &amount
	s.Memo = string(memo)
	return nil
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

package swap

import (
	"encoding/binary"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
)

// Ensure we implement the Msg interface
var (
	_ tokenswap.Msg = (*MakeOfferMsg)(nil)
	_ tokenswap.Msg = (*TakeOfferMsg)(nil)
	_ tokenswap.Msg = (*CancelOfferMsg)(nil)
)

// MakeOfferMsg opens a new offer and immobilizes the offered tokens
// under the requested custody mode. Must be signed by the maker.
type MakeOfferMsg struct {
	Maker   tokenswap.Address
	ID      uint64
	Offered coin.Coin
	Wanted  coin.Coin
	Custody CustodyMode
}

// Path returns the routing path for this message
func (MakeOfferMsg) Path() string {
	return "swap/make"
}

// Validate makes sure that this is sensible
func (m *MakeOfferMsg) Validate() error {
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := validateLeg(m.Offered, "offered"); err != nil {
		return err
	}
	if err := validateLeg(m.Wanted, "wanted"); err != nil {
		return err
	}
	if m.Offered.Ticker == m.Wanted.Ticker {
		return errors.Wrap(errors.ErrMsg, "offered and wanted tickers must differ")
	}
	switch m.Custody {
	case CustodyVault, CustodyDelegated:
		return nil
	default:
		return errors.Wrapf(errors.ErrMsg, "invalid custody mode %d", m.Custody)
	}
}

func validateLeg(c coin.Coin, field string) error {
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, field)
	}
	if !c.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "%s amount must be positive", field)
	}
	return nil
}

// Marshal implements the Persistent interface
func (m *MakeOfferMsg) Marshal() ([]byte, error) {
	out := appendBytes(nil, m.Maker)
	var id [8]byte
	binary.LittleEndian.PutUint64(id[:], m.ID)
	out = append(out, id[:]...)
	out = marshalCoin(out, m.Offered)
	out = marshalCoin(out, m.Wanted)
	return append(out, byte(m.Custody)), nil
}

// Unmarshal implements the Persistent interface
func (m *MakeOfferMsg) Unmarshal(data []byte) error {
	maker, data, err := readBytes(data)
	if err != nil {
		return err
	}
	if len(data) < 8 {
		return errors.Wrap(errors.ErrInput, "truncated message")
	}
	id := binary.LittleEndian.Uint64(data[:8])
	offered, data, err := unmarshalCoin(data[8:])
	if err != nil {
		return err
	}
	wanted, data, err := unmarshalCoin(data)
	if err != nil {
		return err
	}
	if len(data) != 1 {
		return errors.Wrap(errors.ErrInput, "trailing message bytes")
	}
	m.Maker = tokenswap.Address(maker)
	m.ID = id
	m.Offered = offered
	m.Wanted = wanted
	m.Custody = CustodyMode(data[0])
	return nil
}

// TakeOfferMsg settles an open offer: the offered tokens go to the
// taker, the wanted tokens go to the maker. Must be signed by the
// taker. The offer is referenced by maker and id, never by raw
// address, so the derivation stays the single source of truth.
type TakeOfferMsg struct {
	Taker tokenswap.Address
	Maker tokenswap.Address
	ID    uint64
}

// Path returns the routing path for this message
func (TakeOfferMsg) Path() string {
	return "swap/take"
}

// Validate makes sure that this is sensible
func (m *TakeOfferMsg) Validate() error {
	if err := m.Taker.Validate(); err != nil {
		return errors.Wrap(err, "taker")
	}
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	return nil
}

// Marshal implements the Persistent interface
func (m *TakeOfferMsg) Marshal() ([]byte, error) {
	out := appendBytes(nil, m.Taker)
	out = appendBytes(out, m.Maker)
	var id [8]byte
	binary.LittleEndian.PutUint64(id[:], m.ID)
	return append(out, id[:]...), nil
}

// Unmarshal implements the Persistent interface
func (m *TakeOfferMsg) Unmarshal(data []byte) error {
	taker, data, err := readBytes(data)
	if err != nil {
		return err
	}
	maker, data, err := readBytes(data)
	if err != nil {
		return err
	}
	if len(data) != 8 {
		return errors.Wrap(errors.ErrInput, "truncated message")
	}
	m.Taker = tokenswap.Address(taker)
	m.Maker = tokenswap.Address(maker)
	m.ID = binary.LittleEndian.Uint64(data)
	return nil
}

// CancelOfferMsg withdraws an open offer and returns custody of the
// offered tokens to the maker. Must be signed by the maker.
type CancelOfferMsg struct {
	Maker tokenswap.Address
	ID    uint64
}

// Path returns the routing path for this message
func (CancelOfferMsg) Path() string {
	return "swap/cancel"
}

// Validate makes sure that this is sensible
func (m *CancelOfferMsg) Validate() error {
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	return nil
}

// Marshal implements the Persistent interface
func (m *CancelOfferMsg) Marshal() ([]byte, error) {
	out := appendBytes(nil, m.Maker)
	var id [8]byte
	binary.LittleEndian.PutUint64(id[:], m.ID)
	return append(out, id[:]...), nil
}

// Unmarshal implements the Persistent interface
func (m *CancelOfferMsg) Unmarshal(data []byte) error {
	maker, data, err := readBytes(data)
	if err != nil {
		return err
	}
	if len(data) != 8 {
		return errors.Wrap(errors.ErrInput, "truncated message")
	}
	m.Maker = tokenswap.Address(maker)
	m.ID = binary.LittleEndian.Uint64(data)
	return nil
}

package tokenswap

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/tokenswap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionDeterminism(t *testing.T) {
	data := []byte("some stable payload")

	a := NewCondition("swap", "offer", data)
	b := NewCondition("swap", "offer", data)
	assert.True(t, a.Equals(b))
	assert.True(t, a.Address().Equals(b.Address()))
	assert.Equal(t, AddressLength, len(a.Address()))

	// any input change must change the address
	c := NewCondition("swap", "vault", data)
	assert.False(t, a.Address().Equals(c.Address()))
	d := NewCondition("swap", "offer", []byte("some stable payloae"))
	assert.False(t, a.Address().Equals(d.Address()))
}

func TestConditionParse(t *testing.T) {
	cond := NewCondition("sigs", "ed25519", []byte{1, 2, 3, 4})
	require.NoError(t, cond.Validate())

	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)

	err = Condition("garbage").Validate()
	assert.Error(t, err)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestAddressValidate(t *testing.T) {
	cases := map[string]struct {
		addr    Address
		wantErr *errors.Error
	}{
		"valid address":   {addr: make(Address, AddressLength)},
		"empty address":   {addr: nil, wantErr: errors.ErrInput},
		"address too short": {addr: make(Address, 5), wantErr: errors.ErrInput},
		"address too long":  {addr: make(Address, 32), wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.addr.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err))
			}
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := NewCondition("swap", "offer", []byte("x")).Address()

	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var loaded Address
	require.NoError(t, json.Unmarshal(raw, &loaded))
	assert.True(t, addr.Equals(loaded))

	var bad Address
	assert.Error(t, json.Unmarshal([]byte(`"not hex"`), &bad))
}

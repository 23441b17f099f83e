package swap

import "github.com/iov-one/tokenswap/errors"

var (
	// ErrOfferNotFound is returned when no offer exists at the
	// address derived from the referenced maker and id.
	ErrOfferNotFound = errors.Register(1100, "offer not found")

	// ErrOfferNotOpen is returned when the referenced offer exists
	// but was already settled or cancelled.
	ErrOfferNotOpen = errors.Register(1101, "offer not open")

	// ErrAddressCollision is returned when a maker reuses an id that
	// already hosts a live offer.
	ErrAddressCollision = errors.Register(1102, "offer address collision")

	// ErrVaultClosed is returned when a vault custody release finds
	// the vault account already emptied and closed.
	ErrVaultClosed = errors.Register(1103, "vault already closed")

	// ErrMakerBalanceBelowOffered is returned when a delegated
	// custody release finds the maker wallet no longer covers the
	// offered amount.
	ErrMakerBalanceBelowOffered = errors.Register(1104, "maker balance below offered amount")
)

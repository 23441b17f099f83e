package swap

import (
	"encoding/binary"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
)

// BucketName is where we store the offers
const BucketName = "offer"

// CustodyMode selects how the offered tokens are immobilized while the
// offer is open.
type CustodyMode byte

const (
	// CustodyVault moves the offered tokens into a dedicated
	// program-owned vault wallet for the lifetime of the offer.
	CustodyVault CustodyMode = 1
	// CustodyDelegated leaves the offered tokens in the maker wallet
	// under a spending delegation granted to the offer.
	CustodyDelegated CustodyMode = 2
)

// Status tracks the offer through its lifecycle. Settled and cancelled
// offers are kept in the bucket so a stale take can be rejected with a
// precise error rather than a generic not-found.
type Status byte

const (
	StatusOpen      Status = 1
	StatusSettled   Status = 2
	StatusCancelled Status = 3
)

// Offer is the stored state of one exchange proposal.
type Offer struct {
	// ID is chosen by the maker and scopes the offer address, so one
	// maker can keep many offers open at once.
	ID uint64
	// Maker opened the offer and receives the wanted tokens.
	Maker tokenswap.Address
	// Offered is what the maker locked up for the taker.
	Offered coin.Coin
	// Wanted is what the maker asks in return.
	Wanted coin.Coin
	Custody CustodyMode
	Status  Status
}

var _ orm.CloneableData = (*Offer)(nil)

// Validate ensures the offer is self-consistent. Both legs must be
// positive, there is no exchange of a token for itself.
func (o *Offer) Validate() error {
	if err := o.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := o.Offered.Validate(); err != nil {
		return errors.Wrap(err, "offered")
	}
	if err := o.Wanted.Validate(); err != nil {
		return errors.Wrap(err, "wanted")
	}
	if !o.Offered.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "offered amount must be positive")
	}
	if !o.Wanted.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "wanted amount must be positive")
	}
	if o.Offered.Ticker == o.Wanted.Ticker {
		return errors.Wrap(errors.ErrMsg, "offered and wanted tickers must differ")
	}
	switch o.Custody {
	case CustodyVault, CustodyDelegated:
	default:
		return errors.Wrapf(errors.ErrMsg, "invalid custody mode %d", o.Custody)
	}
	switch o.Status {
	case StatusOpen, StatusSettled, StatusCancelled:
	default:
		return errors.Wrapf(errors.ErrState, "invalid status %d", o.Status)
	}
	return nil
}

// Copy makes a new offer with the same data
func (o *Offer) Copy() orm.CloneableData {
	cpy := *o
	cpy.Maker = o.Maker.Clone()
	return &cpy
}

func sequenceID(id uint64) []byte {
	bz := make([]byte, 8)
	binary.LittleEndian.PutUint64(bz, id)
	return bz
}

// OfferCondition derives the deterministic offer condition from the
// maker address and the maker-chosen id. Anyone can recompute it.
func OfferCondition(maker tokenswap.Address, id uint64) tokenswap.Condition {
	return tokenswap.NewCondition("swap", "offer", append(maker.Clone(), sequenceID(id)...))
}

// OfferAddress is the address form of OfferCondition. It keys the
// offer in the bucket, holds delegations in delegated custody and acts
// as authority over the vault in vault custody.
func OfferAddress(maker tokenswap.Address, id uint64) tokenswap.Address {
	return OfferCondition(maker, id).Address()
}

// VaultCondition derives the vault wallet condition for an offer under
// vault custody. Distinct from the offer condition so offer state and
// held funds never share a key.
func VaultCondition(maker tokenswap.Address, id uint64) tokenswap.Condition {
	return tokenswap.NewCondition("swap", "vault", append(maker.Clone(), sequenceID(id)...))
}

// VaultAddress is the address form of VaultCondition.
func VaultAddress(maker tokenswap.Address, id uint64) tokenswap.Address {
	return VaultCondition(maker, id).Address()
}

// NewOfferObj wraps an offer for bucket storage.
func NewOfferObj(key []byte, offer *Offer) orm.Object {
	return orm.NewSimpleObj(key, offer)
}

// AsOffer extracts an *Offer value or nil from the object
func AsOffer(obj orm.Object) *Offer {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Offer)
}

// Bucket is a type-safe wrapper around the offer storage.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes an offer bucket.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewOfferObj(nil, &Offer{})),
	}
}

// Save enforces the proper model for this bucket.
func (b Bucket) Save(db tokenswap.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Offer); !ok {
		return errors.WithType(errors.ErrModel, obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

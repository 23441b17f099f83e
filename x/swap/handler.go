package swap

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
	"github.com/iov-one/tokenswap/x"
	"github.com/iov-one/tokenswap/x/cash"
)

const (
	makeOfferCost   int64 = 300
	takeOfferCost   int64 = 300
	cancelOfferCost int64 = 150
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r tokenswap.Registry, auth x.Authenticator, control cash.Controller) {
	bucket := NewBucket()
	r.Handle(MakeOfferMsg{}.Path(), MakeOfferHandler{auth, bucket, control})
	r.Handle(TakeOfferMsg{}.Path(), TakeOfferHandler{auth, bucket, control})
	r.Handle(CancelOfferMsg{}.Path(), CancelOfferHandler{auth, bucket, control})
}

// MakeOfferHandler opens offers.
type MakeOfferHandler struct {
	auth    x.Authenticator
	bucket  Bucket
	control cash.Controller
}

var _ tokenswap.Handler = MakeOfferHandler{}

// Check does the validation and sets the cost of the transaction
func (h MakeOfferHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: makeOfferCost}, nil
}

// Deliver stores the open offer and immobilizes the offered tokens.
// The offer address is returned as result data so the caller does not
// have to derive it.
func (h MakeOfferHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	addr := OfferAddress(msg.Maker, msg.ID)
	offer := &Offer{
		ID:      msg.ID,
		Maker:   msg.Maker,
		Offered: msg.Offered,
		Wanted:  msg.Wanted,
		Custody: msg.Custody,
		Status:  StatusOpen,
	}
	if err := h.bucket.Save(db, NewOfferObj(addr, offer)); err != nil {
		return nil, err
	}
	if err := immobilize(db, h.control, offer); err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{Data: addr}, nil
}

func (h MakeOfferHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*MakeOfferMsg, error) {
	var msg MakeOfferMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}

	// The derived address must be free. A terminal offer still counts
	// as a collision: ids are never recycled, so a reused id is a
	// client bug worth surfacing.
	obj, err := h.bucket.Get(db, OfferAddress(msg.Maker, msg.ID))
	if err != nil {
		return nil, err
	}
	if obj != nil {
		return nil, errors.Wrapf(ErrAddressCollision, "offer %d of %s", msg.ID, msg.Maker)
	}

	// Both custody modes require the maker to hold the offered amount
	// right now. Vault custody would catch it on the move, delegated
	// custody would not until a take, so check up front for both.
	balance, err := h.control.Balance(db, msg.Maker)
	if err != nil {
		return nil, err
	}
	if balance.AmountOf(msg.Offered.Ticker) < msg.Offered.Amount {
		return nil, errors.Wrapf(cash.ErrInsufficientFunds, "maker %s cannot cover %v", msg.Maker, msg.Offered)
	}
	return &msg, nil
}

// TakeOfferHandler settles open offers.
type TakeOfferHandler struct {
	auth    x.Authenticator
	bucket  Bucket
	control cash.Controller
}

var _ tokenswap.Handler = TakeOfferHandler{}

// Check does the validation and sets the cost of the transaction
func (h TakeOfferHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: takeOfferCost}, nil
}

// Deliver executes both legs of the exchange and marks the offer
// settled. The settled offer stays in the bucket so a second take of
// the same offer fails loudly instead of looking like a missing offer.
func (h TakeOfferHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, obj, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	offer := AsOffer(obj)

	if err := release(db, h.control, offer, msg.Taker); err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Taker, offer.Maker, offer.Wanted); err != nil {
		return nil, err
	}

	offer.Status = StatusSettled
	if err := h.bucket.Save(db, obj); err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{Data: obj.Key()}, nil
}

func (h TakeOfferHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*TakeOfferMsg, orm.Object, error) {
	var msg TakeOfferMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Taker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}

	obj, err := h.bucket.Get(db, OfferAddress(msg.Maker, msg.ID))
	if err != nil {
		return nil, nil, err
	}
	offer := AsOffer(obj)
	if offer == nil {
		return nil, nil, errors.Wrapf(ErrOfferNotFound, "offer %d of %s", msg.ID, msg.Maker)
	}
	if offer.Status != StatusOpen {
		return nil, nil, errors.Wrapf(ErrOfferNotOpen, "offer %d of %s", msg.ID, msg.Maker)
	}

	balance, err := h.control.Balance(db, msg.Taker)
	if err != nil {
		return nil, nil, err
	}
	if balance.AmountOf(offer.Wanted.Ticker) < offer.Wanted.Amount {
		return nil, nil, errors.Wrapf(cash.ErrInsufficientFunds, "taker %s cannot cover %v", msg.Taker, offer.Wanted)
	}
	return &msg, obj, nil
}

// CancelOfferHandler withdraws open offers.
type CancelOfferHandler struct {
	auth    x.Authenticator
	bucket  Bucket
	control cash.Controller
}

var _ tokenswap.Handler = CancelOfferHandler{}

// Check does the validation and sets the cost of the transaction
func (h CancelOfferHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: cancelOfferCost}, nil
}

// Deliver returns custody of the offered tokens to the maker and marks
// the offer cancelled.
func (h CancelOfferHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	obj, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	offer := AsOffer(obj)

	if err := releaseToMaker(db, h.control, offer); err != nil {
		return nil, err
	}

	offer.Status = StatusCancelled
	if err := h.bucket.Save(db, obj); err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{Data: obj.Key()}, nil
}

func (h CancelOfferHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (orm.Object, error) {
	var msg CancelOfferMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	obj, err := h.bucket.Get(db, OfferAddress(msg.Maker, msg.ID))
	if err != nil {
		return nil, err
	}
	offer := AsOffer(obj)
	if offer == nil {
		return nil, errors.Wrapf(ErrOfferNotFound, "offer %d of %s", msg.ID, msg.Maker)
	}
	// Only the maker may withdraw, and only while open.
	if !h.auth.HasAddress(ctx, offer.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	if offer.Status != StatusOpen {
		return nil, errors.Wrapf(ErrOfferNotOpen, "offer %d of %s", msg.ID, msg.Maker)
	}
	return obj, nil
}

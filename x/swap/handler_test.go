package swap

import (
	"context"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/swaptest"
	"github.com/iov-one/tokenswap/swaptest/assert"
	"github.com/iov-one/tokenswap/x/cash"
)

var (
	alice = swaptest.NewCondition()
	bob   = swaptest.NewCondition()
	eve   = swaptest.NewCondition()
)

func fund(t testing.TB, db tokenswap.KVStore, ctrl cash.Controller, addr tokenswap.Address, coins ...coin.Coin) {
	t.Helper()
	wallet := cash.NewWallet(addr)
	for _, c := range coins {
		if err := wallet.Add(c); err != nil {
			t.Fatalf("cannot fund wallet: %+v", err)
		}
	}
	if err := cash.NewBucket().Save(db, wallet); err != nil {
		t.Fatalf("cannot save wallet: %+v", err)
	}
}

func balanceOf(t testing.TB, db tokenswap.KVStore, ctrl cash.Controller, addr tokenswap.Address, ticker string) int64 {
	t.Helper()
	coins, err := ctrl.Balance(db, addr)
	if err != nil {
		t.Fatalf("cannot query balance: %+v", err)
	}
	return coins.AmountOf(ticker)
}

func TestMakeOfferHandler(t *testing.T) {
	cases := map[string]struct {
		msg        *MakeOfferMsg
		signer     tokenswap.Condition
		funds      []coin.Coin
		wantErr    error
		afterwards func(t *testing.T, db tokenswap.KVStore, ctrl cash.Controller)
	}{
		"vault custody moves the offered tokens into the vault": {
			msg: &MakeOfferMsg{
				Maker:   alice.Address(),
				ID:      1,
				Offered: coin.NewCoin(50, "IOV"),
				Wanted:  coin.NewCoin(7, "BTC"),
				Custody: CustodyVault,
			},
			signer: alice,
			funds:  []coin.Coin{coin.NewCoin(123, "IOV")},
			afterwards: func(t *testing.T, db tokenswap.KVStore, ctrl cash.Controller) {
				vault := VaultAddress(alice.Address(), 1)
				assert.Equal(t, int64(50), balanceOf(t, db, ctrl, vault, "IOV"))
				assert.Equal(t, int64(73), balanceOf(t, db, ctrl, alice.Address(), "IOV"))
			},
		},
		"delegated custody leaves the tokens with the maker": {
			msg: &MakeOfferMsg{
				Maker:   alice.Address(),
				ID:      2,
				Offered: coin.NewCoin(50, "IOV"),
				Wanted:  coin.NewCoin(7, "BTC"),
				Custody: CustodyDelegated,
			},
			signer: alice,
			funds:  []coin.Coin{coin.NewCoin(123, "IOV")},
			afterwards: func(t *testing.T, db tokenswap.KVStore, ctrl cash.Controller) {
				assert.Equal(t, int64(123), balanceOf(t, db, ctrl, alice.Address(), "IOV"))
				allowed, err := ctrl.Delegation(db, alice.Address(), OfferAddress(alice.Address(), 2), "IOV")
				assert.Nil(t, err)
				assert.Equal(t, int64(50), allowed.Amount)
			},
		},
		"maker cannot offer more than the wallet holds": {
			msg: &MakeOfferMsg{
				Maker:   alice.Address(),
				ID:      3,
				Offered: coin.NewCoin(500, "IOV"),
				Wanted:  coin.NewCoin(7, "BTC"),
				Custody: CustodyVault,
			},
			signer:  alice,
			funds:   []coin.Coin{coin.NewCoin(123, "IOV")},
			wantErr: cash.ErrInsufficientFunds,
		},
		"delegated custody checks the balance as well": {
			msg: &MakeOfferMsg{
				Maker:   alice.Address(),
				ID:      3,
				Offered: coin.NewCoin(500, "IOV"),
				Wanted:  coin.NewCoin(7, "BTC"),
				Custody: CustodyDelegated,
			},
			signer:  alice,
			funds:   []coin.Coin{coin.NewCoin(123, "IOV")},
			wantErr: cash.ErrInsufficientFunds,
		},
		"only the maker can open an offer": {
			msg: &MakeOfferMsg{
				Maker:   alice.Address(),
				ID:      4,
				Offered: coin.NewCoin(50, "IOV"),
				Wanted:  coin.NewCoin(7, "BTC"),
				Custody: CustodyVault,
			},
			signer:  bob,
			funds:   []coin.Coin{coin.NewCoin(123, "IOV")},
			wantErr: errors.ErrUnauthorized,
		},
		"offering a token for itself is rejected": {
			msg: &MakeOfferMsg{
				Maker:   alice.Address(),
				ID:      5,
				Offered: coin.NewCoin(50, "IOV"),
				Wanted:  coin.NewCoin(7, "IOV"),
				Custody: CustodyVault,
			},
			signer:  alice,
			funds:   []coin.Coin{coin.NewCoin(123, "IOV")},
			wantErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := cash.NewController(cash.NewBucket())
			fund(t, db, ctrl, tc.msg.Maker, tc.funds...)

			auth := &swaptest.Auth{Signer: tc.signer}
			h := MakeOfferHandler{auth, NewBucket(), ctrl}
			tx := &swaptest.Tx{Msg: tc.msg}
			ctx := context.Background()

			if _, err := h.Check(ctx, db, tx); tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
			} else {
				assert.Nil(t, err)
			}

			res, err := h.Deliver(ctx, db, tx)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, []byte(OfferAddress(tc.msg.Maker, tc.msg.ID)), res.Data)

			obj, err := NewBucket().Get(db, OfferAddress(tc.msg.Maker, tc.msg.ID))
			assert.Nil(t, err)
			offer := AsOffer(obj)
			assert.Equal(t, StatusOpen, offer.Status)
			assert.Equal(t, tc.msg.Offered, offer.Offered)
			assert.Equal(t, tc.msg.Wanted, offer.Wanted)

			if tc.afterwards != nil {
				tc.afterwards(t, db, ctrl)
			}
		})
	}
}

func TestMakeOfferAddressCollision(t *testing.T) {
	db := store.MemStore()
	ctrl := cash.NewController(cash.NewBucket())
	fund(t, db, ctrl, alice.Address(), coin.NewCoin(200, "IOV"))

	auth := &swaptest.Auth{Signer: alice}
	h := MakeOfferHandler{auth, NewBucket(), ctrl}
	msg := &MakeOfferMsg{
		Maker:   alice.Address(),
		ID:      11,
		Offered: coin.NewCoin(50, "IOV"),
		Wanted:  coin.NewCoin(7, "BTC"),
		Custody: CustodyVault,
	}
	ctx := context.Background()

	_, err := h.Deliver(ctx, db, &swaptest.Tx{Msg: msg})
	assert.Nil(t, err)

	// same maker and id again, even with different terms
	msg.Wanted = coin.NewCoin(9, "ETH")
	_, err = h.Deliver(ctx, db, &swaptest.Tx{Msg: msg})
	assert.IsErr(t, ErrAddressCollision, err)
}

// makeOffer opens an offer directly so the take and cancel tests do not
// depend on the make handler.
func makeOffer(t testing.TB, db tokenswap.KVStore, ctrl cash.Controller, id uint64, custody CustodyMode) *Offer {
	t.Helper()
	offer := &Offer{
		ID:      id,
		Maker:   alice.Address(),
		Offered: coin.NewCoin(50, "IOV"),
		Wanted:  coin.NewCoin(7, "BTC"),
		Custody: custody,
		Status:  StatusOpen,
	}
	addr := OfferAddress(offer.Maker, id)
	if err := NewBucket().Save(db, NewOfferObj(addr, offer)); err != nil {
		t.Fatalf("cannot save offer: %+v", err)
	}
	if err := immobilize(db, ctrl, offer); err != nil {
		t.Fatalf("cannot immobilize: %+v", err)
	}
	return offer
}

func TestTakeOfferHandler(t *testing.T) {
	for custodyName, custody := range map[string]CustodyMode{
		"vault":     CustodyVault,
		"delegated": CustodyDelegated,
	} {
		t.Run(custodyName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := cash.NewController(cash.NewBucket())
			fund(t, db, ctrl, alice.Address(), coin.NewCoin(123, "IOV"))
			fund(t, db, ctrl, bob.Address(), coin.NewCoin(20, "BTC"))
			makeOffer(t, db, ctrl, 1, custody)

			auth := &swaptest.Auth{Signer: bob}
			h := TakeOfferHandler{auth, NewBucket(), ctrl}
			tx := &swaptest.Tx{Msg: &TakeOfferMsg{
				Taker: bob.Address(),
				Maker: alice.Address(),
				ID:    1,
			}}
			ctx := context.Background()

			_, err := h.Deliver(ctx, db, tx)
			assert.Nil(t, err)

			// both legs executed
			assert.Equal(t, int64(50), balanceOf(t, db, ctrl, bob.Address(), "IOV"))
			assert.Equal(t, int64(13), balanceOf(t, db, ctrl, bob.Address(), "BTC"))
			assert.Equal(t, int64(73), balanceOf(t, db, ctrl, alice.Address(), "IOV"))
			assert.Equal(t, int64(7), balanceOf(t, db, ctrl, alice.Address(), "BTC"))

			if custody == CustodyVault {
				ok, err := ctrl.HasWallet(db, VaultAddress(alice.Address(), 1))
				assert.Nil(t, err)
				assert.Equal(t, false, ok)
			}

			obj, err := h.bucket.Get(db, OfferAddress(alice.Address(), 1))
			assert.Nil(t, err)
			assert.Equal(t, StatusSettled, AsOffer(obj).Status)

			// a second take of the settled offer must fail
			_, err = h.Deliver(ctx, db, tx)
			assert.IsErr(t, ErrOfferNotOpen, err)
		})
	}
}

func TestTakeOwnOffer(t *testing.T) {
	// a maker taking their own offer is a legal, pointless trade: both
	// legs cancel out and no balance may change on either side
	for custodyName, custody := range map[string]CustodyMode{
		"vault":     CustodyVault,
		"delegated": CustodyDelegated,
	} {
		t.Run(custodyName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := cash.NewController(cash.NewBucket())
			fund(t, db, ctrl, alice.Address(), coin.NewCoin(123, "IOV"), coin.NewCoin(20, "BTC"))
			makeOffer(t, db, ctrl, 1, custody)

			h := TakeOfferHandler{&swaptest.Auth{Signer: alice}, NewBucket(), ctrl}
			_, err := h.Deliver(context.Background(), db, &swaptest.Tx{Msg: &TakeOfferMsg{
				Taker: alice.Address(),
				Maker: alice.Address(),
				ID:    1,
			}})
			assert.Nil(t, err)

			assert.Equal(t, int64(123), balanceOf(t, db, ctrl, alice.Address(), "IOV"))
			assert.Equal(t, int64(20), balanceOf(t, db, ctrl, alice.Address(), "BTC"))

			if custody == CustodyVault {
				ok, err := ctrl.HasWallet(db, VaultAddress(alice.Address(), 1))
				assert.Nil(t, err)
				assert.Equal(t, false, ok)
			}

			obj, err := h.bucket.Get(db, OfferAddress(alice.Address(), 1))
			assert.Nil(t, err)
			assert.Equal(t, StatusSettled, AsOffer(obj).Status)
		})
	}
}

func TestTakeOfferFailures(t *testing.T) {
	cases := map[string]struct {
		custody CustodyMode
		// balance of bob the taker
		takerFunds []coin.Coin
		// coins the maker spends between make and take
		drain   *coin.Coin
		msg     *TakeOfferMsg
		wantErr error
	}{
		"unknown offer": {
			custody:    CustodyVault,
			takerFunds: []coin.Coin{coin.NewCoin(20, "BTC")},
			msg:        &TakeOfferMsg{Taker: bob.Address(), Maker: alice.Address(), ID: 666},
			wantErr:    ErrOfferNotFound,
		},
		"taker cannot cover the wanted amount": {
			custody:    CustodyVault,
			takerFunds: []coin.Coin{coin.NewCoin(6, "BTC")},
			msg:        &TakeOfferMsg{Taker: bob.Address(), Maker: alice.Address(), ID: 1},
			wantErr:    cash.ErrInsufficientFunds,
		},
		"taker signature required": {
			custody:    CustodyVault,
			takerFunds: []coin.Coin{coin.NewCoin(20, "BTC")},
			msg:        &TakeOfferMsg{Taker: eve.Address(), Maker: alice.Address(), ID: 1},
			wantErr:    errors.ErrUnauthorized,
		},
		"delegated custody fails when the maker drained the wallet": {
			custody:    CustodyDelegated,
			takerFunds: []coin.Coin{coin.NewCoin(20, "BTC")},
			drain:      coin.NewCoinp(100, "IOV"),
			msg:        &TakeOfferMsg{Taker: bob.Address(), Maker: alice.Address(), ID: 1},
			wantErr:    ErrMakerBalanceBelowOffered,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := cash.NewController(cash.NewBucket())
			fund(t, db, ctrl, alice.Address(), coin.NewCoin(123, "IOV"))
			fund(t, db, ctrl, bob.Address(), tc.takerFunds...)
			makeOffer(t, db, ctrl, 1, tc.custody)

			if tc.drain != nil {
				// the maker still holds the keys in delegated custody
				err := ctrl.MoveCoins(db, alice.Address(), eve.Address(), *tc.drain)
				assert.Nil(t, err)
			}

			auth := &swaptest.Auth{Signer: bob}
			h := TakeOfferHandler{auth, NewBucket(), ctrl}
			ctx := context.Background()

			_, err := h.Deliver(ctx, db, &swaptest.Tx{Msg: tc.msg})
			assert.IsErr(t, tc.wantErr, err)

			// the offer is untouched and the taker kept the funds
			if tc.msg.ID == 1 {
				obj, err := h.bucket.Get(db, OfferAddress(alice.Address(), 1))
				assert.Nil(t, err)
				assert.Equal(t, StatusOpen, AsOffer(obj).Status)
			}
			assert.Equal(t, tc.takerFunds[0].Amount, balanceOf(t, db, ctrl, bob.Address(), "BTC"))
		})
	}
}

func TestCancelOfferHandler(t *testing.T) {
	cases := map[string]struct {
		custody CustodyMode
		signer  tokenswap.Condition
		settle  bool
		wantErr error
	}{
		"maker cancels a vault offer":     {custody: CustodyVault, signer: alice},
		"maker cancels a delegated offer": {custody: CustodyDelegated, signer: alice},
		"only the maker may cancel": {
			custody: CustodyVault,
			signer:  bob,
			wantErr: errors.ErrUnauthorized,
		},
		"a settled offer cannot be cancelled": {
			custody: CustodyVault,
			signer:  alice,
			settle:  true,
			wantErr: ErrOfferNotOpen,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := cash.NewController(cash.NewBucket())
			fund(t, db, ctrl, alice.Address(), coin.NewCoin(123, "IOV"))
			fund(t, db, ctrl, bob.Address(), coin.NewCoin(20, "BTC"))
			makeOffer(t, db, ctrl, 1, tc.custody)

			ctx := context.Background()
			if tc.settle {
				take := TakeOfferHandler{&swaptest.Auth{Signer: bob}, NewBucket(), ctrl}
				_, err := take.Deliver(ctx, db, &swaptest.Tx{Msg: &TakeOfferMsg{
					Taker: bob.Address(), Maker: alice.Address(), ID: 1,
				}})
				assert.Nil(t, err)
			}

			h := CancelOfferHandler{&swaptest.Auth{Signer: tc.signer}, NewBucket(), ctrl}
			tx := &swaptest.Tx{Msg: &CancelOfferMsg{Maker: alice.Address(), ID: 1}}

			_, err := h.Deliver(ctx, db, tx)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			// the maker got custody back in full
			assert.Equal(t, int64(123), balanceOf(t, db, ctrl, alice.Address(), "IOV"))
			if tc.custody == CustodyVault {
				ok, err := ctrl.HasWallet(db, VaultAddress(alice.Address(), 1))
				assert.Nil(t, err)
				assert.Equal(t, false, ok)
			} else {
				allowed, err := ctrl.Delegation(db, alice.Address(), OfferAddress(alice.Address(), 1), "IOV")
				assert.Nil(t, err)
				assert.Equal(t, true, allowed.IsZero())
			}

			obj, err := h.bucket.Get(db, OfferAddress(alice.Address(), 1))
			assert.Nil(t, err)
			assert.Equal(t, StatusCancelled, AsOffer(obj).Status)

			// cancelled offers are terminal
			take := TakeOfferHandler{&swaptest.Auth{Signer: bob}, NewBucket(), ctrl}
			_, err = take.Deliver(ctx, db, &swaptest.Tx{Msg: &TakeOfferMsg{
				Taker: bob.Address(), Maker: alice.Address(), ID: 1,
			}})
			assert.IsErr(t, ErrOfferNotOpen, err)
		})
	}
}

package app

import (
	"sync"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/x/cash"
	"github.com/iov-one/tokenswap/x/swap"
)

// Ledger is an in-memory ledger running the cash and swap extensions.
//
// Submissions are serialized by a mutex, so handlers always observe a
// settled state: of two competing takes of one offer, whichever runs
// first settles it and the other fails cleanly.
type Ledger struct {
	mu     sync.Mutex
	db     tokenswap.CacheableKVStore
	router *Router
	ctrl   cash.Controller
	offers swap.Bucket
}

// NewLedger assembles a ledger with all routes registered.
func NewLedger() *Ledger {
	router := NewRouter()
	auth := Authenticate()
	ctrl := cash.NewController(cash.NewBucket())
	cash.RegisterRoutes(router, auth, ctrl)
	swap.RegisterRoutes(router, auth, ctrl)
	return &Ledger{
		db:     store.MemStore(),
		router: router,
		ctrl:   ctrl,
		offers: swap.NewBucket(),
	}
}

// Submit runs the transaction against a cache wrap of the state and
// commits only on success. A failed transaction leaves every account
// and every offer record untouched. Handlers never roll back by hand,
// this discard is the single atomicity mechanism.
func (l *Ledger) Submit(ctx tokenswap.Context, tx tokenswap.Tx, signers ...tokenswap.Condition) (*tokenswap.DeliverResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx = withSigners(ctx, signers)
	cache := l.db.CacheWrap()
	res, err := l.router.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	return res, nil
}

// GetBalance returns the spendable amount of one token, zero when the
// account does not exist.
func (l *Ledger) GetBalance(account tokenswap.Address, ticker string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	coins, err := l.ctrl.Balance(l.db, account)
	if err != nil {
		return 0, err
	}
	return coins.AmountOf(ticker), nil
}

// FetchOffer returns the offer stored at the given derived address.
func (l *Ledger) FetchOffer(address tokenswap.Address) (*swap.Offer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	obj, err := l.offers.Get(l.db, address)
	if err != nil {
		return nil, err
	}
	offer := swap.AsOffer(obj)
	if offer == nil {
		return nil, errors.Wrapf(swap.ErrOfferNotFound, "no offer at %s", address)
	}
	return offer, nil
}

// Delegation returns the remaining allowance the owner granted the
// delegate for one token, a zero coin when none exists.
func (l *Ledger) Delegation(owner, delegate tokenswap.Address, ticker string) (coin.Coin, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.ctrl.Delegation(l.db, owner, delegate, ticker)
}

// InitAccount credits an account outside of transaction processing.
// This is the genesis hook: test fixtures and bootstrapping only, there
// is no faucet at runtime.
func (l *Ledger) InitAccount(account tokenswap.Address, coins ...coin.Coin) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket := cash.NewBucket()
	obj, err := bucket.GetOrCreate(l.db, account)
	if err != nil {
		return err
	}
	wallet := cash.AsWallet(obj)
	for _, c := range coins {
		if err := wallet.Add(c); err != nil {
			return err
		}
	}
	return bucket.Save(l.db, wallet)
}

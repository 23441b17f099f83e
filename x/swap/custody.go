package swap

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x/cash"
)

// immobilize takes custody of the offered tokens when an offer opens.
//
// Vault custody moves them into the offer vault wallet, so a later
// maker spend cannot touch them. Delegated custody only grants the
// offer address a spending allowance over the maker wallet, the tokens
// themselves stay put.
func immobilize(db tokenswap.KVStore, ctrl cash.Controller, offer *Offer) error {
	switch offer.Custody {
	case CustodyVault:
		vault := VaultAddress(offer.Maker, offer.ID)
		return ctrl.MoveCoins(db, offer.Maker, vault, offer.Offered)
	case CustodyDelegated:
		addr := OfferAddress(offer.Maker, offer.ID)
		return ctrl.GrantDelegation(db, offer.Maker, addr, offer.Offered)
	default:
		return errors.Wrapf(errors.ErrState, "invalid custody mode %d", offer.Custody)
	}
}

// release hands the offered tokens to dest, on take to the taker and
// on cancel back to the maker.
//
// Vault custody empties and closes the vault. Delegated custody spends
// the allowance out of the maker wallet, which must still cover the
// offered amount: the maker kept the keys the whole time, so the check
// is done here, at execution, not at offer time.
func release(db tokenswap.KVStore, ctrl cash.Controller, offer *Offer, dest tokenswap.Address) error {
	switch offer.Custody {
	case CustodyVault:
		vault := VaultAddress(offer.Maker, offer.ID)
		ok, err := ctrl.HasWallet(db, vault)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(ErrVaultClosed, "offer %d of %s", offer.ID, offer.Maker)
		}
		if err := ctrl.MoveCoins(db, vault, dest, offer.Offered); err != nil {
			return err
		}
		return ctrl.CloseEmptyWallet(db, vault)
	case CustodyDelegated:
		balance, err := ctrl.Balance(db, offer.Maker)
		if err != nil {
			return err
		}
		if balance.AmountOf(offer.Offered.Ticker) < offer.Offered.Amount {
			return errors.Wrapf(ErrMakerBalanceBelowOffered,
				"maker %s holds less than %v", offer.Maker, offer.Offered)
		}
		addr := OfferAddress(offer.Maker, offer.ID)
		return ctrl.MoveDelegatedCoins(db, offer.Maker, addr, dest, offer.Offered)
	default:
		return errors.Wrapf(errors.ErrState, "invalid custody mode %d", offer.Custody)
	}
}

// releaseToMaker returns custody on cancel. In delegated mode nothing
// ever left the maker wallet, so revoking the allowance is enough and
// avoids a pointless self-transfer.
func releaseToMaker(db tokenswap.KVStore, ctrl cash.Controller, offer *Offer) error {
	if offer.Custody == CustodyDelegated {
		addr := OfferAddress(offer.Maker, offer.ID)
		return ctrl.RevokeDelegation(db, offer.Maker, addr, offer.Offered.Ticker)
	}
	return release(db, ctrl, offer, offer.Maker)
}

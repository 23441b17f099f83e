package coin

import (
	"testing"

	"github.com/iov-one/tokenswap/errors"
)

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid coin": {
			coin: NewCoin(42, "TKA"),
		},
		"valid four letter ticker": {
			coin: NewCoin(1, "TOKE"),
		},
		"negative amount is valid": {
			coin: NewCoin(-5, "TKA"),
		},
		"lowercase ticker": {
			coin:    NewCoin(1, "tka"),
			wantErr: errors.ErrAmount,
		},
		"too short ticker": {
			coin:    NewCoin(1, "TK"),
			wantErr: errors.ErrAmount,
		},
		"missing ticker": {
			coin:    NewCoin(1, ""),
			wantErr: errors.ErrAmount,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.coin.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestCoinAddSubtract(t *testing.T) {
	a := NewCoin(100, "TKA")
	b := NewCoin(25, "TKA")

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if !sum.Equals(NewCoin(125, "TKA")) {
		t.Fatalf("unexpected sum: %v", sum)
	}

	diff, err := a.Subtract(b)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if !diff.Equals(NewCoin(75, "TKA")) {
		t.Fatalf("unexpected difference: %v", diff)
	}

	if _, err := a.Add(NewCoin(1, "TKB")); !errors.ErrAmount.Is(err) {
		t.Fatalf("mixing tickers must fail, got %+v", err)
	}
}

func TestCoinAddOverflow(t *testing.T) {
	a := NewCoin(MaxAmount, "TKA")
	if _, err := a.Add(NewCoin(MaxAmount, "TKA")); !errors.ErrOverflow.Is(err) {
		t.Fatalf("want overflow, got %+v", err)
	}
}

func TestCoinsNormalization(t *testing.T) {
	cs, err := CombineCoins(
		NewCoin(7, "TKB"),
		NewCoin(5, "TKA"),
		NewCoin(3, "TKB"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if err := cs.Validate(); err != nil {
		t.Fatalf("combined set must be normalized: %+v", err)
	}
	if got := cs.AmountOf("TKA"); got != 5 {
		t.Fatalf("unexpected TKA amount: %d", got)
	}
	if got := cs.AmountOf("TKB"); got != 10 {
		t.Fatalf("unexpected TKB amount: %d", got)
	}
	if got := cs.AmountOf("TKC"); got != 0 {
		t.Fatalf("missing ticker must give zero, got %d", got)
	}
}

func TestCoinsContains(t *testing.T) {
	cs, err := CombineCoins(NewCoin(10, "TKA"))
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}

	if !cs.Contains(NewCoin(10, "TKA")) {
		t.Fatal("must contain the full amount")
	}
	if !cs.Contains(NewCoin(3, "TKA")) {
		t.Fatal("must contain a part of the amount")
	}
	if cs.Contains(NewCoin(11, "TKA")) {
		t.Fatal("must not contain more than owned")
	}
	if cs.Contains(NewCoin(1, "TKB")) {
		t.Fatal("must not contain unknown ticker")
	}
}

func TestCoinsZeroDropsOut(t *testing.T) {
	cs, err := CombineCoins(NewCoin(10, "TKA"))
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	cs, err = cs.Subtract(NewCoin(10, "TKA"))
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if !cs.IsEmpty() {
		t.Fatalf("zero coins must drop out of the set: %v", cs)
	}
}

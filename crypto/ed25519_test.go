package crypto

import (
	"bytes"
	"testing"
)

func TestSignVerify(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()

	msg := []byte("take my offer")
	sig, err := priv.Sign(msg)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if !pub.Verify(msg, sig) {
		t.Fatal("signature must verify")
	}
	if pub.Verify([]byte("another message"), sig) {
		t.Fatal("signature must not verify a different message")
	}
}

func TestDeterministicKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)

	if !a.PublicKey().Address().Equals(b.PublicKey().Address()) {
		t.Fatal("same seed must give the same address")
	}
}

func TestConditionFormat(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()

	ext, typ, data, err := pub.Condition().Parse()
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if ext != ExtensionName || typ != "ed25519" {
		t.Fatalf("unexpected condition sections: %s/%s", ext, typ)
	}
	if !bytes.Equal(data, pub.Ed25519) {
		t.Fatal("condition data must be the raw public key")
	}
}

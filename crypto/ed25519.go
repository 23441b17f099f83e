package crypto

import (
	"github.com/iov-one/tokenswap"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is the condition namespace claimed by signature identities
const ExtensionName = "sigs"

// PublicKey identifies a signing party. The address of its condition is
// the party's account address on the ledger.
type PublicKey struct {
	Ed25519 []byte
}

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig []byte) bool {
	publicKey := ed25519.PublicKey(p.Ed25519)
	return ed25519.Verify(publicKey, message, sig)
}

// Condition encodes the public key into a permission
func (p *PublicKey) Condition() tokenswap.Condition {
	return tokenswap.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address is a shortcut for Condition().Address()
func (p *PublicKey) Address() tokenswap.Address {
	return p.Condition().Address()
}

// PrivateKey is the private half of a signing identity. Key storage is
// the embedding application's concern, the core only ever sees
// addresses.
type PrivateKey struct {
	Ed25519 []byte
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) ([]byte, error) {
	privateKey := ed25519.PrivateKey(p.Ed25519)
	return ed25519.Sign(privateKey, message), nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	privateKey := ed25519.PrivateKey(p.Ed25519)
	pub := privateKey.Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	priv := ed25519.NewKeyFromSeed(seed)
	return &PrivateKey{Ed25519: priv}
}

package wallet

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/golang-walletauth/base58"
)

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 17/12/2025
 * Time: 14:05
 */

// Wallet system constants
const (
	// legacyVersion is the network version byte of legacy (Bitcoin-style) addresses.
	// 0x00 is the Bitcoin mainnet P2PKH prefix, so legacy addresses start with '1'.
	legacyVersion = byte(0x00)
)

// Wallet holds an ed25519 key pair, the key type used by Solana wallets.
// The wallet address is the public key itself, rendered in Base58.
type Wallet struct {
	PrivateKey ed25519.PrivateKey // Signs sign-in messages (KEEP SECRET!)
	PublicKey  ed25519.PublicKey  // 32 bytes, doubles as the address
}

// MakeWallet creates a new wallet with a fresh key pair read from crypto/rand.
func MakeWallet() (*Wallet, error) {
	return NewWallet(rand.Reader)
}

// NewWallet creates a wallet with key material read from r.
func NewWallet(r io.Reader) (*Wallet, error) {
	public, private, err := ed25519.GenerateKey(r)
	if err != nil {
		return nil, fmt.Errorf("wallet: generate key: %w", err)
	}
	return &Wallet{PrivateKey: private, PublicKey: public}, nil
}

// FromSeed rebuilds a wallet from its 32 byte private seed.
func FromSeed(seed []byte) (*Wallet, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("wallet: seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	private := ed25519.NewKeyFromSeed(seed)
	return &Wallet{PrivateKey: private, PublicKey: private.Public().(ed25519.PublicKey)}, nil
}

// Address returns the Solana-style address of the wallet: Base58(PublicKey).
// Unlike Bitcoin there is no hashing, version byte or checksum; the 32 byte
// key is the address and a typo simply decodes to a different key.
//
// Address: FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z
// PublicKey: d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a
func (w Wallet) Address() string {
	return base58.Encode(w.PublicKey)
}

// LegacyAddress returns a Bitcoin-style address for the same key:
// PublicKey → SHA256 → RIPEMD160 → add version → add checksum → Base58
//
// Address: 1EoY7BwXeKEjxASqqy7XTGXucjHgXvENZh
// [Version]: 00
// [PubKeyHash]: 9766bc6a50b376bd6fb25ecc5bd3288a663bbec9
func (w Wallet) LegacyAddress() string {
	// Steps 1-5 live in PublicKeyHash and base58.CheckEncode
	return base58.CheckEncode(PublicKeyHash(w.PublicKey), legacyVersion)
}

// Sign signs message and returns the signature in Base58, the form wallets
// hand back to the sign-in flow.
func (w Wallet) Sign(message []byte) string {
	return base58.Encode(ed25519.Sign(w.PrivateKey, message))
}

// GobEncode implements gob.GobEncoder.
// Only the 32 byte seed is stored; the rest of the key is derived from it.
func (w *Wallet) GobEncode() ([]byte, error) {
	// ed25519.PrivateKey is seed || public key, so the seed is enough
	data := struct {
		Seed []byte
	}{
		Seed: w.PrivateKey.Seed(),
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (w *Wallet) GobDecode(b []byte) error {
	var data struct {
		Seed []byte
	}
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&data); err != nil {
		return err
	}

	// Derive private and public key again from the stored seed
	restored, err := FromSeed(data.Seed)
	if err != nil {
		return err
	}
	*w = *restored
	return nil
}

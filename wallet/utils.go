package wallet

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 17/12/2025
 * Time: 15:20
 */

import (
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/golang-walletauth/base58"
	"golang.org/x/crypto/ripemd160"
)

var (
	// ErrInvalidAddress is returned for strings that are not a Base58 encoded ed25519 public key.
	ErrInvalidAddress = errors.New("wallet: invalid address")

	// ErrInvalidSignature is returned for strings that are not a Base58 encoded ed25519 signature.
	ErrInvalidSignature = errors.New("wallet: invalid signature format")

	// ErrSignatureMismatch is returned when a well-formed signature does not verify.
	ErrSignatureMismatch = errors.New("wallet: signature does not match address")
)

// ParseAddress decodes a Solana-style address back to its public key.
// Codec errors stay reachable through errors.Is(err, base58.ErrInvalidCharacter).
func ParseAddress(address string) (ed25519.PublicKey, error) {
	raw, err := base58.Decode(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: decoded to %d bytes, want %d", ErrInvalidAddress, len(raw), ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(raw), nil
}

// ParseSignature decodes a Base58 signature as returned by a wallet.
func ParseSignature(signature string) ([]byte, error) {
	raw, err := base58.Decode(signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	if len(raw) != ed25519.SignatureSize {
		return nil, fmt.Errorf("%w: decoded to %d bytes, want %d", ErrInvalidSignature, len(raw), ed25519.SignatureSize)
	}
	return raw, nil
}

// VerifySignature checks that signature is a valid signature of message by the
// owner of address.
func VerifySignature(address string, message []byte, signature string) error {
	pub, err := ParseAddress(address)
	if err != nil {
		return err
	}
	sig, err := ParseSignature(signature)
	if err != nil {
		return err
	}
	if !ed25519.Verify(pub, message, sig) {
		return ErrSignatureMismatch
	}
	return nil
}

// ValidateAddress reports whether address is a well-formed Solana-style address.
func ValidateAddress(address string) bool {
	_, err := ParseAddress(address)
	return err == nil
}

// ValidateLegacyAddress checks a Bitcoin-style address:
// it must Base58Check decode, carry the legacy version byte and a 20 byte hash.
func ValidateLegacyAddress(address string) bool {
	pubKeyHash, version, err := base58.CheckDecode(address)
	if err != nil {
		return false
	}
	return version == legacyVersion && len(pubKeyHash) == ripemd160.Size
}

// PublicKeyHash creates the public key hash using Bitcoin's standard method:
// SHA256 followed by RIPEMD160 (often called "Hash160")
func PublicKeyHash(pubKey []byte) []byte {
	// Step 1: SHA256 of the raw public key
	pubHash := sha256.Sum256(pubKey)

	// Step 2: RIPEMD160 of that hash, giving a 20 byte fingerprint
	hasher := ripemd160.New()
	// hash.Hash writes never fail
	_, _ = hasher.Write(pubHash[:])

	return hasher.Sum(nil)
}

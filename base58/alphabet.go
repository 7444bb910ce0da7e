package base58

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 15/12/2025
 * Time: 10:04
 */

import (
	"errors"
	"fmt"
)

// Radix is the number of symbols in every base58 alphabet.
const Radix = 58

// invalidDigit marks bytes that are not part of an alphabet in the inverse table.
const invalidDigit = 0xFF

// ErrInvalidAlphabet is returned by NewAlphabet when the symbol set cannot be used.
var ErrInvalidAlphabet = errors.New("base58: invalid alphabet")

var (
	// BTCAlphabet is the modified base58 alphabet used by Bitcoin and Solana.
	BTCAlphabet = MustNewAlphabet("123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz")

	// FlickrAlphabet is the base58 alphabet used by Flickr short URLs.
	FlickrAlphabet = MustNewAlphabet("123456789abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ")
)

// Alphabet is a base58 symbol set together with its inverse lookup table.
// It is never modified after construction, so one value can be shared by any
// number of goroutines.
type Alphabet struct {
	encode [Radix]byte
	decode [256]byte
}

// NewAlphabet builds an Alphabet from exactly 58 distinct ASCII characters.
// The first character is the zero digit.
func NewAlphabet(symbols string) (*Alphabet, error) {
	if len(symbols) != Radix {
		return nil, fmt.Errorf("%w: need %d symbols, got %d", ErrInvalidAlphabet, Radix, len(symbols))
	}

	a := &Alphabet{}
	for i := range a.decode {
		a.decode[i] = invalidDigit
	}

	for i := 0; i < len(symbols); i++ {
		c := symbols[i]
		if c >= 0x80 {
			return nil, fmt.Errorf("%w: non-ASCII byte %#x at %d", ErrInvalidAlphabet, c, i)
		}
		if a.decode[c] != invalidDigit {
			return nil, fmt.Errorf("%w: duplicate symbol %q", ErrInvalidAlphabet, c)
		}
		a.encode[i] = c
		a.decode[c] = byte(i)
	}
	return a, nil
}

// MustNewAlphabet is like NewAlphabet but panics on a bad symbol set.
// It is meant for package-level variables.
func MustNewAlphabet(symbols string) *Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the symbols in digit order.
func (a *Alphabet) String() string {
	return string(a.encode[:])
}

// zero is the symbol standing for a leading zero byte.
func (a *Alphabet) zero() byte {
	return a.encode[0]
}

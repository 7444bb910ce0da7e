package base58

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 15/12/2025
 * Time: 10:31
 */

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidCharacter is matched (via errors.Is) by every *InvalidCharacterError.
var ErrInvalidCharacter = errors.New("base58: invalid character")

// InvalidCharacterError reports a character that is not part of the alphabet.
// Offset is the byte offset of the character in the decoded string.
type InvalidCharacterError struct {
	Char   rune
	Offset int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("base58: invalid character %q at offset %d", e.Char, e.Offset)
}

// Unwrap lets errors.Is(err, ErrInvalidCharacter) succeed.
func (e *InvalidCharacterError) Unwrap() error {
	return ErrInvalidCharacter
}

// Encode encodes b using the Bitcoin alphabet.
func Encode(b []byte) string {
	return BTCAlphabet.Encode(b)
}

// Decode decodes s using the Bitcoin alphabet.
func Decode(s string) ([]byte, error) {
	return BTCAlphabet.Decode(s)
}

// Encode converts b to its base58 form. Every leading zero byte of b becomes
// one leading zero symbol; the rest of b is treated as a big-endian number.
func (a *Alphabet) Encode(b []byte) string {
	zeros := 0
	for zeros < len(b) && b[zeros] == 0 {
		zeros++
	}

	// log(256)/log(58) ~= 1.3657, rounded up, plus one guard digit.
	size := (len(b)-zeros)*138/100 + 1

	// digits holds the base58 value least significant digit first;
	// only digits[:placed] is meaningful.
	digits := make([]byte, size)
	placed := 0

	// Multiply the digits by 256 and add the next byte, one byte at a time
	for _, v := range b[zeros:] {
		carry := uint32(v)
		for j := 0; j < placed; j++ {
			carry += uint32(digits[j]) << 8
			digits[j] = byte(carry % Radix)
			carry /= Radix
		}
		for carry > 0 && placed < size {
			digits[placed] = byte(carry % Radix)
			placed++
			carry /= Radix
		}
	}

	// Zero symbols first, then the digits most significant first
	out := make([]byte, zeros+placed)
	for i := 0; i < zeros; i++ {
		out[i] = a.zero()
	}
	for j := 0; j < placed; j++ {
		out[zeros+j] = a.encode[digits[placed-1-j]]
	}
	return string(out)
}

// Decode converts s back to bytes. It fails with an *InvalidCharacterError
// for the first character not in the alphabet and returns no partial result.
func (a *Alphabet) Decode(s string) ([]byte, error) {
	zeros := 0
	for zeros < len(s) && s[zeros] == a.zero() {
		zeros++
	}

	// log(58)/log(256) ~= 0.7322, rounded up, plus one guard byte.
	size := (len(s)-zeros)*733/1000 + 1

	// value holds the decoded number least significant byte first;
	// only value[:placed] is meaningful.
	value := make([]byte, size)
	placed := 0

	// Multiply the bytes by 58 and add the next digit, one character at a time
	for i := zeros; i < len(s); i++ {
		digit := a.decode[s[i]]
		if digit == invalidDigit {
			r, _ := utf8.DecodeRuneInString(s[i:])
			return nil, &InvalidCharacterError{Char: r, Offset: i}
		}

		carry := uint32(digit)
		for j := 0; j < placed; j++ {
			carry += uint32(value[j]) * Radix
			value[j] = byte(carry)
			carry >>= 8
		}
		for carry > 0 && placed < size {
			value[placed] = byte(carry)
			placed++
			carry >>= 8
		}
	}

	out := make([]byte, zeros+placed)
	for j := 0; j < placed; j++ {
		out[zeros+j] = value[placed-1-j]
	}
	return out, nil
}

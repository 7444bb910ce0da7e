package base58

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 16/12/2025
 * Time: 09:12
 */

import (
	"bytes"
	"crypto/sha256"
	"errors"
)

// ChecksumLength is the number of checksum bytes appended by CheckEncode.
const ChecksumLength = 4

var (
	// ErrChecksum indicates that the checksum of a check-encoded string does not verify.
	ErrChecksum = errors.New("base58: checksum mismatch")

	// ErrInvalidFormat indicates that the check-encoded string is too short to hold
	// a version byte and a checksum.
	ErrInvalidFormat = errors.New("base58: check-encoded string shorter than version byte plus checksum")
)

// checksum returns the first four bytes of SHA256(SHA256(input)).
func checksum(input []byte) (cksum [ChecksumLength]byte) {
	h := sha256.Sum256(input)
	h2 := sha256.Sum256(h[:])
	copy(cksum[:], h2[:ChecksumLength])
	return cksum
}

// CheckEncode prepends a version byte and appends a four byte checksum.
func CheckEncode(input []byte, version byte) string {
	b := make([]byte, 0, 1+len(input)+ChecksumLength)
	b = append(b, version)
	b = append(b, input...)
	cksum := checksum(b)
	b = append(b, cksum[:]...)
	return Encode(b)
}

// CheckDecode decodes a string that was encoded with CheckEncode and verifies the checksum.
func CheckDecode(input string) (result []byte, version byte, err error) {
	decoded, err := Decode(input)
	if err != nil {
		return nil, 0, err
	}
	if len(decoded) < 1+ChecksumLength {
		return nil, 0, ErrInvalidFormat
	}

	version = decoded[0]
	body := decoded[:len(decoded)-ChecksumLength]
	cksum := checksum(body)
	if !bytes.Equal(cksum[:], decoded[len(decoded)-ChecksumLength:]) {
		return nil, 0, ErrChecksum
	}

	return body[1:], version, nil
}

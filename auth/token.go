package auth

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 20/12/2025
 * Time: 11:05
 */

import (
	"github.com/google/uuid"

	"github.com/golang-walletauth/base58"
)

// TokenLength is the number of random bytes behind every challenge id and
// session token.
const TokenLength = 16

// Token identifies a challenge or a session. On the wire it is always the
// Base58 text of its 16 bytes (22 characters at most).
type Token [TokenLength]byte

// NewRandomToken draws a version 4 UUID and uses its bytes as the token.
func NewRandomToken() Token {
	return Token(uuid.New())
}

// TokenFromString parses the Base58 text of a token. Anything that does not
// decode to exactly TokenLength bytes is rejected, so lookups with garbage
// never reach the store.
func TokenFromString(s string) (Token, bool) {
	var tok Token
	raw, err := base58.Decode(s)
	if err != nil || len(raw) != TokenLength {
		return tok, false
	}
	copy(tok[:], raw)
	return tok, true
}

// String renders the token as Base58.
func (tok Token) String() string {
	return base58.Encode(tok[:])
}

package auth

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 20/12/2025
 * Time: 10:37
 */

import (
	"fmt"
	"strings"
	"time"
)

// Challenge is a one-time sign-in request. The wallet signs Message; the
// signature is then exchanged for a Session.
type Challenge struct {
	ID        string
	Address   string
	Nonce     string
	Message   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the challenge can no longer be answered at now.
func (c *Challenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Session is an authenticated wallet session.
type Session struct {
	Token     string
	Address   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// signInMessage renders the text a wallet is asked to sign.
func signInMessage(domain, address, nonce string, issuedAt, expiresAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s wants you to sign in with your Solana account:\n", domain)
	fmt.Fprintf(&b, "%s\n\n", address)
	fmt.Fprintf(&b, "Nonce: %s\n", nonce)
	fmt.Fprintf(&b, "Issued At: %s\n", issuedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Expiration Time: %s", expiresAt.UTC().Format(time.RFC3339))
	return b.String()
}

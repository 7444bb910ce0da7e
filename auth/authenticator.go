// Package auth implements wallet sign-in: the server hands out a challenge
// message with a fresh nonce, the wallet signs it, and a valid signature is
// exchanged for a session token.
package auth

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 20/12/2025
 * Time: 15:48
 */

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/golang-walletauth/base58"
	"github.com/golang-walletauth/wallet"
)

const (
	// DefaultChallengeTTL is how long a challenge can be answered.
	DefaultChallengeTTL = 5 * time.Minute
	// DefaultSessionTTL is how long a session token stays valid.
	DefaultSessionTTL = 24 * time.Hour
	// DefaultDomain is the domain named in sign-in messages.
	DefaultDomain = "aasdf.app"

	nonceLength = 32
)

var (
	// ErrInvalidAddress is returned when the address is not a Base58 ed25519 public key.
	ErrInvalidAddress = wallet.ErrInvalidAddress
	// ErrInvalidSignature is returned when the signature is not a Base58 ed25519 signature.
	ErrInvalidSignature = wallet.ErrInvalidSignature
	// ErrSignatureMismatch is returned when the signature does not verify against the challenge.
	ErrSignatureMismatch = wallet.ErrSignatureMismatch

	ErrChallengeNotFound = errors.New("auth: unknown challenge")
	ErrChallengeExpired  = errors.New("auth: challenge expired")
	ErrSessionNotFound   = errors.New("auth: unknown session")
	ErrSessionExpired    = errors.New("auth: session expired")
)

// Options configure an Authenticator. Zero values select the defaults.
type Options struct {
	Domain       string
	ChallengeTTL time.Duration
	SessionTTL   time.Duration

	// Now and Rand replace the clock and the nonce source, mostly for tests.
	Now  func() time.Time
	Rand io.Reader
}

// Authenticator runs the challenge/response sign-in flow on top of a Store.
type Authenticator struct {
	store        Store
	domain       string
	challengeTTL time.Duration
	sessionTTL   time.Duration
	now          func() time.Time
	rand         io.Reader
}

// New creates an Authenticator.
func New(store Store, opts Options) *Authenticator {
	a := &Authenticator{
		store:        store,
		domain:       opts.Domain,
		challengeTTL: opts.ChallengeTTL,
		sessionTTL:   opts.SessionTTL,
		now:          opts.Now,
		rand:         opts.Rand,
	}
	if a.domain == "" {
		a.domain = DefaultDomain
	}
	if a.challengeTTL <= 0 {
		a.challengeTTL = DefaultChallengeTTL
	}
	if a.sessionTTL <= 0 {
		a.sessionTTL = DefaultSessionTTL
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.rand == nil {
		a.rand = rand.Reader
	}
	return a
}

// Challenge issues a new sign-in challenge for address.
func (a *Authenticator) Challenge(ctx context.Context, address string) (*Challenge, error) {
	if _, err := wallet.ParseAddress(address); err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceLength)
	if _, err := io.ReadFull(a.rand, nonce); err != nil {
		return nil, fmt.Errorf("auth: read nonce: %w", err)
	}

	now := a.now().UTC().Truncate(time.Second)
	c := &Challenge{
		ID:        NewRandomToken().String(),
		Address:   address,
		Nonce:     base58.Encode(nonce),
		IssuedAt:  now,
		ExpiresAt: now.Add(a.challengeTTL),
	}
	c.Message = signInMessage(a.domain, c.Address, c.Nonce, c.IssuedAt, c.ExpiresAt)

	if err := a.store.PutChallenge(ctx, c); err != nil {
		return nil, fmt.Errorf("auth: store challenge: %w", err)
	}

	log.Ctx(ctx).Debug().
		Str("challenge_id", c.ID).
		Str("address", c.Address).
		Time("expires_at", c.ExpiresAt).
		Msg("auth: issued challenge")
	return c, nil
}

// Verify checks a wallet's signature over a challenge message and, if it is
// valid, starts a session. The challenge is consumed whatever the outcome.
func (a *Authenticator) Verify(ctx context.Context, challengeID, signature string) (*Session, error) {
	// ids are always tokens; anything else was never issued
	if _, ok := TokenFromString(challengeID); !ok {
		return nil, ErrChallengeNotFound
	}

	// Step 1: take the challenge out of the store; a replay finds nothing
	c, err := a.store.TakeChallenge(ctx, challengeID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrChallengeNotFound
	} else if err != nil {
		return nil, fmt.Errorf("auth: load challenge: %w", err)
	}

	now := a.now()
	if c.Expired(now) {
		return nil, ErrChallengeExpired
	}

	// Step 2: the signature must be Base58 of 64 bytes and verify against
	// the exact message the wallet was shown
	sig, err := wallet.ParseSignature(signature)
	if err != nil {
		return nil, err
	}
	pub, err := wallet.ParseAddress(c.Address)
	if err != nil {
		return nil, err
	}
	if !ed25519.Verify(pub, []byte(c.Message), sig) {
		log.Ctx(ctx).Info().
			Str("challenge_id", c.ID).
			Str("address", c.Address).
			Msg("auth: signature mismatch")
		return nil, ErrSignatureMismatch
	}

	// Step 3: start a session for the address that signed
	issuedAt := now.UTC().Truncate(time.Second)
	s := &Session{
		Token:     NewRandomToken().String(),
		Address:   c.Address,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(a.sessionTTL),
	}
	if err := a.store.PutSession(ctx, s); err != nil {
		return nil, fmt.Errorf("auth: store session: %w", err)
	}

	log.Ctx(ctx).Info().
		Str("address", s.Address).
		Time("expires_at", s.ExpiresAt).
		Msg("auth: wallet signed in")
	return s, nil
}

// Session looks up a live session by token.
func (a *Authenticator) Session(ctx context.Context, token string) (*Session, error) {
	if _, ok := TokenFromString(token); !ok {
		return nil, ErrSessionNotFound
	}

	s, err := a.store.GetSession(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrSessionNotFound
	} else if err != nil {
		return nil, fmt.Errorf("auth: load session: %w", err)
	}

	if s.Expired(a.now()) {
		return nil, ErrSessionExpired
	}
	return s, nil
}

// SignOut ends the session identified by token. Unknown tokens are ignored.
func (a *Authenticator) SignOut(ctx context.Context, token string) error {
	if err := a.store.DeleteSession(ctx, token); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("auth: delete session: %w", err)
	}
	log.Ctx(ctx).Debug().Msg("auth: signed out")
	return nil
}

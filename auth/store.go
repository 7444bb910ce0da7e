package auth

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 20/12/2025
 * Time: 10:12
 */

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Store when no live record exists for a key.
var ErrNotFound = errors.New("auth: record not found")

// Store persists challenges and sessions. Records are expected to disappear
// on their own once ExpiresAt has passed, but callers still check expiry.
type Store interface {
	PutChallenge(ctx context.Context, c *Challenge) error
	// TakeChallenge returns the challenge and deletes it in one step,
	// so a challenge can be answered at most once.
	TakeChallenge(ctx context.Context, id string) (*Challenge, error)

	PutSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, token string) (*Session, error)
	DeleteSession(ctx context.Context, token string) error
}

package store

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 19/12/2025
 * Time: 10:02
 */

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/golang-walletauth/auth"
)

// Key prefixes of the record kinds kept in the database
var (
	ChallengePrefix = []byte("challenge-")
	SessionPrefix   = []byte("session-")
)

// Options select where the database lives.
type Options struct {
	Dir      string // Keys, metadata and values are stored in this directory
	InMemory bool   // Keep everything in memory; Dir is ignored
}

// Store is a badger-backed auth.Store. Every record is written with a TTL
// matching its expiry, so badger drops stale challenges and sessions itself.
type Store struct {
	Database *badger.DB
}

var _ auth.Store = (*Store)(nil)

// Open opens (or creates) the database.
func Open(opts Options) (*Store, error) {
	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		bopts = badger.DefaultOptions(opts.Dir)
		bopts.Dir = opts.Dir      // Key and metadata will be stored in this directory
		bopts.ValueDir = opts.Dir // Value will be stored in this directory
	}
	// badger logs through its own logger; we only care about problems
	bopts = bopts.WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	return &Store{Database: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.Database.Close()
}

// PutChallenge implements auth.Store.
func (s *Store) PutChallenge(ctx context.Context, c *auth.Challenge) error {
	return s.put(ctx, key(ChallengePrefix, c.ID), c, c.IssuedAt, c.ExpiresAt)
}

// TakeChallenge implements auth.Store. The read and the delete run in one
// read-write transaction.
func (s *Store) TakeChallenge(ctx context.Context, id string) (*auth.Challenge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var c auth.Challenge
	k := key(ChallengePrefix, id)
	err := s.Database.Update(func(txn *badger.Txn) error {
		if err := get(txn, k, &c); err != nil {
			return err
		}
		return txn.Delete(k)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// PutSession implements auth.Store.
func (s *Store) PutSession(ctx context.Context, sess *auth.Session) error {
	return s.put(ctx, key(SessionPrefix, sess.Token), sess, sess.IssuedAt, sess.ExpiresAt)
}

// GetSession implements auth.Store.
func (s *Store) GetSession(ctx context.Context, token string) (*auth.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sess auth.Session
	err := s.Database.View(func(txn *badger.Txn) error {
		return get(txn, key(SessionPrefix, token), &sess)
	})
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// DeleteSession implements auth.Store.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.Database.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(SessionPrefix, token))
	})
}

// put writes v under k. The badger TTL is the record's own lifetime, taken
// from its timestamps rather than the wall clock, so a caller with its own
// clock still gets its records stored.
func (s *Store) put(ctx context.Context, k []byte, v any, issuedAt, expiresAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ttl := expiresAt.Sub(issuedAt)
	if ttl <= 0 {
		return fmt.Errorf("store: record for %q expires before it is issued", k)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}

	return s.Database.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(k, buf.Bytes()).WithTTL(ttl))
	})
}

func get(txn *badger.Txn, k []byte, v any) error {
	item, err := txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return auth.ErrNotFound
	} else if err != nil {
		return err
	}

	return item.Value(func(val []byte) error {
		return gob.NewDecoder(bytes.NewReader(val)).Decode(v)
	})
}

func key(prefix []byte, id string) []byte {
	return append(append([]byte{}, prefix...), id...)
}

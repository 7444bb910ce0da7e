package store

import (
	"github.com/dgraph-io/badger/v4"
)

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 19/12/2025
 * Time: 15:36
 */

// collectSize is the batch size used when deleting many keys.
const collectSize = 100000

// Count returns the number of live records whose key starts with prefix.
func (s *Store) Count(prefix []byte) (int, error) {
	counter := 0

	err := s.Database.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			counter++
		}
		return nil
	})
	return counter, err
}

// DeleteByPrefix deletes all keys with the given prefix, in batches so a large
// key set does not blow up a single transaction.
func (s *Store) DeleteByPrefix(prefix []byte) (int, error) {
	deleteKeys := func(keysForDelete [][]byte) error {
		return s.Database.Update(func(txn *badger.Txn) error {
			for _, key := range keysForDelete {
				if err := txn.Delete(key); err != nil {
					return err
				}
			}
			return nil
		})
	}

	deleted := 0
	err := s.Database.View(func(txn *badger.Txn) error {
		// Keys only, values are not needed
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		keysForDelete := make([][]byte, 0, collectSize)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keysForDelete = append(keysForDelete, it.Item().KeyCopy(nil))

			if len(keysForDelete) == collectSize {
				if err := deleteKeys(keysForDelete); err != nil {
					return err
				}
				deleted += len(keysForDelete)
				keysForDelete = make([][]byte, 0, collectSize)
			}
		}

		if len(keysForDelete) > 0 {
			if err := deleteKeys(keysForDelete); err != nil {
				return err
			}
			deleted += len(keysForDelete)
		}
		return nil
	})
	return deleted, err
}

// Package walletstore persists a wallet's UTXO snapshot (§6.5) to disk
// using BadgerDB, the same embedded store the teacher codebase used for
// block data.
package walletstore

import (
	"encoding/json"

	"github.com/dgraph-io/badger/v3"

	"coinwallet/utxo"
	"coinwallet/walleterr"
)

var snapshotKey = []byte("wallet_snapshot")

// Store wraps a BadgerDB instance dedicated to one wallet's snapshot.
type Store struct {
	db *badger.DB
}

// Open opens or creates the on-disk store at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, walleterr.Wrap(walleterr.Transport, "opening wallet store", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot persists snap, replacing any previously stored snapshot.
func (s *Store) SaveSnapshot(snap utxo.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return walleterr.Wrap(walleterr.CodecInvalid, "marshaling snapshot", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey, data)
	})
	if err != nil {
		return walleterr.Wrap(walleterr.Transport, "writing snapshot", err)
	}
	return nil
}

// LoadSnapshot retrieves the most recently saved snapshot. It returns
// (Snapshot{}, false, nil) if no snapshot has ever been saved.
func (s *Store) LoadSnapshot() (utxo.Snapshot, bool, error) {
	var snap utxo.Snapshot
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if err != nil {
		return utxo.Snapshot{}, false, walleterr.Wrap(walleterr.Transport, "reading snapshot", err)
	}
	return snap, found, nil
}

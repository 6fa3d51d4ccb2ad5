// Copyright 2025 Perceptic
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ledger records completed ingestions in an embedded BadgerDB
// so repeated runs over the same directory can skip files already
// processed.
package ledger

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/go-crypt/x/blake2b"
	"github.com/perceptic/audiograph/storage"
)

const entryPrefix = "ing:"

// keyFor derives a fixed-width key from the source path using BLAKE2b,
// so identical paths always map to the same ledger slot.
func keyFor(path string) []byte {
	h, _ := blake2b.New(8, nil)
	h.Write([]byte(path))
	sum := h.Sum(nil)

	key := make([]byte, len(entryPrefix)+8)
	copy(key, entryPrefix)
	binary.LittleEndian.PutUint64(key[len(entryPrefix):], binary.LittleEndian.Uint64(sum))
	return key
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Ledger implements storage.Ledger on BadgerDB.
type Ledger struct {
	db *badger.DB
}

// Open opens (creating if needed) the ledger database at filePath.
//
// Returns storage.Ledger interface to enforce abstraction.
func Open(filePath string) (storage.Ledger, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(filePath, 0755); err != nil {
				return nil, err
			}
			info, err = os.Stat(filePath)
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", filePath)
	}

	opts := badger.DefaultOptions(filePath)
	opts.Logger = &badgerLoggerAdapter{logger: slog.Default().With("component", "ledger")}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrStoreUnavailable, err)
	}
	return &Ledger{db: db}, nil
}

// Seen reports whether path has a recorded ingestion.
func (l *Ledger) Seen(path string) (bool, error) {
	err := l.db.View(func(tx *badger.Txn) error {
		_, err := tx.Get(keyFor(path))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Record writes the entry keyed by its source path, overwriting any
// earlier ingestion of the same file.
func (l *Ledger) Record(entry storage.LedgerEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	err = l.db.Update(func(tx *badger.Txn) error {
		return tx.Set(keyFor(entry.Path), data)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrWriteFailed, err)
	}
	return nil
}

// List returns all recorded ingestions, most recent first.
func (l *Ledger) List() ([]storage.LedgerEntry, error) {
	var entries []storage.LedgerEntry

	err := l.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				var entry storage.LedgerEntry
				if err := json.Unmarshal(val, &entry); err != nil {
					return err
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(entries, func(a, b storage.LedgerEntry) int {
		return b.IngestedAt.Compare(a.IngestedAt)
	})
	return entries, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

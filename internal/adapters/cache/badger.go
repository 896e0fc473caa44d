package cache

import (
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v3"
)

// Badger persists decision records on disk so verdicts survive across
// invocations of the engine.
type Badger struct {
	db     *badger.DB
	logger *slog.Logger
}

func NewBadger(dataDir string, logger *slog.Logger) (*Badger, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions(dataDir).
		WithLogger(nil).
		WithCompactL0OnClose(true)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Badger{
		db:     db,
		logger: logger.With("component", "cache", "backend", "badger"),
	}, nil
}

func (b *Badger) Get(key string) (value []byte, exists bool, err error) {
	err = b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		exists = true
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		b.logger.Error("cache read failed", "key", key, "error", err)
		return nil, false, err
	}
	return value, exists, nil
}

func (b *Badger) Put(key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		b.logger.Error("cache write failed", "key", key, "error", err)
	}
	return err
}

func (b *Badger) Delete(key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (b *Badger) Close() error {
	return b.db.Close()
}

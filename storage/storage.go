// Package storage persists contract state in BadgerDB so a sandbox chain
// survives process restarts.
package storage

import (
	"os"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/teia-community/teia-dao/sdk"
)

// Store implements sdk.State on top of a Badger database. The State interface
// has no error returns, so failed reads and writes are logged and remembered;
// callers that care check Err after a batch of operations.
type Store struct {
	db      *badger.DB
	log     *logrus.Logger
	lastErr error
}

var _ sdk.State = (*Store)(nil)

// Open opens (or creates) a Badger database under dir. An empty dir opens an
// in-memory database, which is handy for demos and tests.
func Open(dir string, log *logrus.Logger) (*Store, error) {
	if log == nil {
		log = logrus.New()
	}

	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create state directory")
		}
		opts = badger.DefaultOptions(dir)
	}
	opts = opts.
		WithLogger(&badgerLogger{log: log}).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open badger database")
	}
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	return errors.Wrap(s.db.Close(), "close badger database")
}

// Err returns the first error seen since the last call and clears it.
func (s *Store) Err() error {
	err := s.lastErr
	s.lastErr = nil
	return err
}

func (s *Store) fail(op, key string, err error) {
	if s.lastErr == nil {
		s.lastErr = errors.Wrapf(err, "%s %q", op, key)
	}
	s.log.WithError(err).WithField("key", key).Errorf("storage %s failed", op)
}

func (s *Store) Set(key, value string) {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		s.fail("set", key, err)
	}
}

func (s *Store) Get(key string) *string {
	var out *string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			v := string(val)
			out = &v
			return nil
		})
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		s.fail("get", key, err)
	}
	return out
}

func (s *Store) Delete(key string) {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		s.fail("delete", key, err)
	}
}

// badgerLogger forwards Badger's own log lines to logrus.
type badgerLogger struct {
	log *logrus.Logger
}

func (b *badgerLogger) Errorf(format string, args ...interface{}) {
	b.log.Errorf(format, args...)
}

func (b *badgerLogger) Warningf(format string, args ...interface{}) {
	b.log.Warnf(format, args...)
}

func (b *badgerLogger) Infof(format string, args ...interface{}) {
	b.log.Debugf(format, args...)
}

func (b *badgerLogger) Debugf(format string, args ...interface{}) {
	b.log.Debugf(format, args...)
}

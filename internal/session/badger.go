package session

import (
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/shopease/go_shop/internal/domain"
)

var (
	keySession    = []byte("session")
	keyLastSearch = []byte("last_search")
)

// BadgerStore keeps client state in a BadgerDB directory so sessions
// survive restarts. Values are JSON under fixed keys.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the store at path.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// OpenInMemory opens a store with no disk persistence. For tests.
func OpenInMemory() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory session store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (b *BadgerStore) get(key []byte, out any) error {
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	return err
}

func (b *BadgerStore) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

func (b *BadgerStore) Current() (domain.UserSession, bool) {
	var s domain.UserSession
	if err := b.get(keySession, &s); err != nil {
		return domain.UserSession{}, false
	}
	return s, true
}

func (b *BadgerStore) SetSession(s domain.UserSession) error {
	return b.set(keySession, s)
}

func (b *BadgerStore) Clear() error {
	return b.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(keySession)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

func (b *BadgerStore) LastSearch() (domain.LastSearch, bool) {
	var ls domain.LastSearch
	if err := b.get(keyLastSearch, &ls); err != nil {
		return domain.LastSearch{}, false
	}
	return ls, true
}

func (b *BadgerStore) SetLastSearch(ls domain.LastSearch) error {
	return b.set(keyLastSearch, ls)
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}

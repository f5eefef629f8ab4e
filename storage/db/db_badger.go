package db

import (
	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"
)

func init() {
	dbCreator := func(name string, dir string) (DB, error) {
		return NewBadgerDB(dir, dir)
	}
	registerDBCreator(GoBadgerBackend, dbCreator, false)
}

var _ DB = (*BadgerDB)(nil)

// BadgerDB is the badger-backed block store database.
type BadgerDB struct {
	db *badger.DB
}

// NewBadgerDB opens a badger database with default options.
func NewBadgerDB(valueDir string, dir string) (*BadgerDB, error) {
	opts := badger.DefaultOptions

	return NewBadgerDBWithOpts(valueDir, dir, opts)
}

// NewBadgerDBWithOpts opens a badger database with the given options.
func NewBadgerDBWithOpts(valueDir string, dir string, opts badger.Options) (*BadgerDB, error) {
	opts.Dir = dir
	opts.ValueDir = valueDir

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open badger db")
	}
	return &BadgerDB{db: db}, nil
}

func (db *BadgerDB) Get(key []byte) ([]byte, error) {
	key = nonNilBytes(key)
	var value []byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		valCopy, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		value = valCopy
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "badger get %X", key)
	}
	return value, nil
}

func (db *BadgerDB) Has(key []byte) (bool, error) {
	v, err := db.Get(key)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

func (db *BadgerDB) Set(key []byte, value []byte) error {
	key = nonNilBytes(key)
	value = nonNilBytes(value)
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	return errors.Wrapf(err, "badger set %X", key)
}

func (db *BadgerDB) Delete(key []byte) error {
	key = nonNilBytes(key)
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	return errors.Wrapf(err, "badger delete %X", key)
}

func (db *BadgerDB) ForEach(fn func(key, value []byte) error) error {
	return db.db.View(func(txn *badger.Txn) error {
		opt := badger.DefaultIteratorOptions
		it := txn.NewIterator(opt)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(item.Key(), v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (db *BadgerDB) Close() error {
	return db.db.Close()
}

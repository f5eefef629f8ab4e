package db

import (
	"sort"
	"sync"
)

func init() {
	registerDBCreator(MemDBBackend, func(name, dir string) (DB, error) {
		return NewMemDB(), nil
	}, false)
}

var _ DB = (*MemDB)(nil)

// MemDB is an in-process DB, for tests.
type MemDB struct {
	mtx sync.Mutex
	db  map[string][]byte
}

// NewMemDB returns an empty MemDB.
func NewMemDB() *MemDB {
	return &MemDB{db: make(map[string][]byte)}
}

func (db *MemDB) Get(key []byte) ([]byte, error) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	v, ok := db.db[string(nonNilBytes(key))]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (db *MemDB) Has(key []byte) (bool, error) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	_, ok := db.db[string(nonNilBytes(key))]
	return ok, nil
}

func (db *MemDB) Set(key []byte, value []byte) error {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	cp := make([]byte, len(nonNilBytes(value)))
	copy(cp, value)
	db.db[string(nonNilBytes(key))] = cp
	return nil
}

func (db *MemDB) Delete(key []byte) error {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	delete(db.db, string(nonNilBytes(key)))
	return nil
}

func (db *MemDB) ForEach(fn func(key, value []byte) error) error {
	db.mtx.Lock()
	keys := make([]string, 0, len(db.db))
	for k := range db.db {
		keys = append(keys, k)
	}
	db.mtx.Unlock()
	sort.Strings(keys)

	for _, k := range keys {
		v, err := db.Get([]byte(k))
		if err != nil {
			return err
		}
		if v == nil {
			continue
		}
		if err := fn([]byte(k), v); err != nil {
			return err
		}
	}
	return nil
}

func (db *MemDB) Close() error {
	return nil
}

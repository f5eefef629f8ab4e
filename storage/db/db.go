package db

import "fmt"

// DBBackendType names a key-value backend implementation.
type DBBackendType string

const (
	// GoBadgerBackend is the badger backend, used for the block store.
	GoBadgerBackend DBBackendType = "badgerdb"
	// MemDBBackend is an in-process map, used in tests.
	MemDBBackend DBBackendType = "memdb"
)

type dbCreator func(name string, dir string) (DB, error)

var backends = map[DBBackendType]dbCreator{}

func registerDBCreator(backend DBBackendType, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

// NewDB opens a database of the given backend under dir.
func NewDB(name string, backend DBBackendType, dir string) (DB, error) {
	creator, ok := backends[backend]
	if !ok {
		return nil, fmt.Errorf("unknown db backend %q", backend)
	}
	return creator(name, dir)
}

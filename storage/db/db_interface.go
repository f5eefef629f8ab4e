package db

// DB is the key-value contract the block store runs on.
// A nil key is interpreted as an empty byteslice.
type DB interface {

	// Get returns (nil, nil) if key doesn't exist.
	// CONTRACT: key, value readonly []byte
	Get([]byte) ([]byte, error)

	// Has checks if a key exists.
	// CONTRACT: key readonly []byte
	Has(key []byte) (bool, error)

	// Set sets the key.
	// CONTRACT: key, value readonly []byte
	Set([]byte, []byte) error

	// Delete deletes the key. Deleting a missing key is not an error.
	// CONTRACT: key readonly []byte
	Delete([]byte) error

	// ForEach calls fn for every key-value pair in ascending key order.
	// CONTRACT: No writes may happen while the iteration runs.
	ForEach(fn func(key, value []byte) error) error

	// Closes the connection.
	Close() error
}

// Turn nil keys or values into []byte{}
func nonNilBytes(bz []byte) []byte {
	if bz == nil {
		return []byte{}
	}
	return bz
}

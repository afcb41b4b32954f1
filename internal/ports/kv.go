package ports

// KeyValueStore is the opaque persistence used by the board's stateful stores.
// Values are JSON documents written as a single unit per key.
type KeyValueStore interface {
	// Get returns the value for key and whether it exists
	Get(key string) (string, bool, error)

	// Set replaces the value for key atomically
	Set(key, value string) error

	// Delete removes key; deleting a missing key is not an error
	Delete(key string) error
}

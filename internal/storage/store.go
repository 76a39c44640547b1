package storage

// Store is a JSON-valued key-value persistence facade. Each collection owns a
// single key and stores its full list as one opaque value, so consumers never
// share a schema through the store.
type Store interface {
	// Get decodes the value stored under key into dest. A missing key leaves
	// dest untouched and is not an error.
	Get(key string, dest any) error
	// Set stores value under key, replacing any previous value.
	Set(key string, value any) error
}

package redis

const (
	// KeyPrefixKV is the prefix for raw key-value blobs
	KeyPrefixKV = "meteo:kv:"
	// KeyPrefixName is the prefix for cached reverse-geocoded names
	KeyPrefixName = "meteo:name:"
)

// KVKey returns the Redis key for a key-value blob
func KVKey(key string) string {
	return KeyPrefixKV + key
}

// NameKey returns the Redis key for a cached city name
func NameKey(key string) string {
	return KeyPrefixName + key
}

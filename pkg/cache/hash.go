package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a namespaced key ("plan:<digest>", "artifact:<digest>")
// from the parts that determine an entry. Parts are JSON-marshaled before
// hashing so declared field order, not memory layout, defines the key.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 digest of data. The full 64-character
// digest is kept because plan hashes feed artifact keys; a truncated
// digest would let unrelated boards share rendered output.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// hashKey builds "prefix:sha256(json(parts))".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Hash computes a SHA-256 hash of the input data as 64 hex characters.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashStrings hashes an ordered list of strings. Each part is length-prefixed
// so ["ab", "c"] and ["a", "bc"] differ.
func HashStrings(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		data, _ := json.Marshal(p)
		b.Write(data)
		b.WriteByte('\n')
	}
	return Hash([]byte(b.String()))
}

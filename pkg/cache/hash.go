package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex-encoded SHA-256 digest of data. The pipeline
// fingerprints raw document bytes and serialized layout results with it
// before deriving stage keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a key of the form "prefix:digest", where the digest
// covers the JSON encoding of parts. The full 256-bit digest is kept;
// truncating would let two layouts of large maps collide on one entry.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

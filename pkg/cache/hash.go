package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA-256 hash of the input data as 64 hex characters.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// SVGKey is the key of the SVG rendered from a DOT source.
func SVGKey(dot string) string {
	return "svg:" + Hash([]byte(dot))
}

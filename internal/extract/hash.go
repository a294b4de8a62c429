package extract

import (
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// digestSize gives a 128-bit digest, rendered as 32 hex characters.
const digestSize = 16

var newHasher = func() (hash.Hash, error) {
	return blake2b.New(digestSize, nil)
}

// ContentHash returns a stable identity string for a byte payload. If the
// hasher cannot be built it falls back to a textual dump of the bytes, which
// is just as deterministic.
func ContentHash(data []byte) string {
	h, err := newHasher()
	if err != nil {
		return fmt.Sprint(data)
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

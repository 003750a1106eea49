package orders

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

const numberPrefix = "ORD-"

// NewOrderNumber returns a public order number: the fixed prefix plus eight
// uppercase hex characters. Each call draws fresh entropy and is safe for
// concurrent use. Uniqueness is enforced by the orders table constraint, not
// here; the creation workflow retries on a collision.
func NewOrderNumber() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return numberPrefix + strings.ToUpper(hex.EncodeToString(b[:]))
}

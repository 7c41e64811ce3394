package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// Unambiguous charset: no 0/O, 1/I/L.
const refCharset = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// NewBookingReference returns a human-readable booking code like SF-7K2M9XQD.
func NewBookingReference() string {
	buf := make([]byte, 8)
	max := big.NewInt(int64(len(refCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform is broken; fall back to uuid bytes
			return "SF-" + uuid.NewString()[:8]
		}
		buf[i] = refCharset[n.Int64()]
	}
	return "SF-" + string(buf)
}

// NewTransactionID returns an opaque payment transaction identifier.
func NewTransactionID() string {
	return uuid.NewString()
}

// Package daily derives the shared "puzzle of the day": every player asking
// for the same date and size gets the same grid.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns a deterministic generator seed from HMAC(salt, date|size).
func Seed(date time.Time, salt string, size int) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	h.Write([]byte("|" + strconv.Itoa(size)))
	sum := h.Sum(nil)
	// first 8 bytes are plenty of entropy for a PCG seed
	return binary.BigEndian.Uint64(sum[:8])
}

package utils

import (
	"crypto/rand"
	"math/big"
)

const randTextChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandText returns a random alphanumeric string of length n.
func RandText(n int) string {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(randTextChars)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform entropy source is broken
			buf[i] = randTextChars[i%len(randTextChars)]
			continue
		}
		buf[i] = randTextChars[idx.Int64()]
	}
	return string(buf)
}

package utils

import (
	"crypto/rand"
	"math/big"
)

const alnumChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// randomAlnum returns n random lowercase alphanumeric characters.
func randomAlnum(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alnumChars)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to a fixed character rather than panic mid-sync.
			out[i] = '0'
			continue
		}
		out[i] = alnumChars[idx.Int64()]
	}
	return string(out)
}

// randomDigits returns n random decimal digits.
func randomDigits(n int) string {
	out := make([]byte, n)
	ten := big.NewInt(10)
	for i := range out {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			out[i] = '0'
			continue
		}
		out[i] = byte('0' + d.Int64())
	}
	return string(out)
}

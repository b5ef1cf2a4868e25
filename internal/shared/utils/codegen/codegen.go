package codegen

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generate returns an n-character uppercase alphanumeric code drawn from
// crypto/rand.
func Generate(n int) (string, error) {
	code := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range code {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = alphabet[num.Int64()]
	}
	return string(code), nil
}

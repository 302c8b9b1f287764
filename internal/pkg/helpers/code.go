package helpers

import (
	"crypto/rand"
	"math/big"
)

const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// UniqueCodeLength is the length of the user unique code.
const UniqueCodeLength = 8

// GenerateUniqueCode returns a random alphanumeric code. Global uniqueness is
// enforced by the users.unique_code constraint; callers retry on collision.
func GenerateUniqueCode() (string, error) {
	buf := make([]byte, UniqueCodeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	alphanumericCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	productCodeCharset  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	ProductCodePrefix = "PRD"
	productCodeLength = 9
)

func GenerateRandomString(length int) (string, error) {
	return randomFromCharset(alphanumericCharset, length)
}

// GenerateProductCode returns a human readable product id like PRD7K2M9QX4A.
func GenerateProductCode() (string, error) {
	suffix, err := randomFromCharset(productCodeCharset, productCodeLength)
	if err != nil {
		return "", err
	}
	return ProductCodePrefix + suffix, nil
}

func randomFromCharset(charset string, length int) (string, error) {
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}

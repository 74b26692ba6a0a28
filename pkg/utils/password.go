package utils

import (
	"github.com/oarkflow/hash"
)

// HashPassword hashes password with algo, the library default when empty.
func HashPassword(password, algo string) (string, error) {
	hashed, err := hash.Make(password, algo)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

package domain

import (
	"crypto/rand"
	"encoding/base32"
)

func generateID() string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return base32.StdEncoding.EncodeToString(b)[:8]
}

package service

import (
	"crypto/rand"
	"encoding/base64"
)

func newID() string {
	buf := make([]byte, 12)
	_, _ = rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}

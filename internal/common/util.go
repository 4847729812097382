package common

import (
	"crypto/rand"
	"fmt"
	"strings"
	"unicode"
)

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// This is useful for removing passwords from memory after use.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

// GenerateRandByteArray returns size bytes read from crypto/rand.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// ValidateName checks that s can be used as a user, database, table or field
// name. Names end up as path components and inside comma-joined lists, so they
// must not contain separators, whitespace, commas or parentheses.
func ValidateName(s string) error {
	if s == "" || s == "." || s == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, s)
	}
	if strings.ContainsAny(s, `,()/\;:"'`) || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidName, s)
	}
	return nil
}


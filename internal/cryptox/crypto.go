// Package cryptox verifies account credentials. The Verifier interface keeps
// the comparison strategy out of the account service so that plaintext
// storage can be swapped for salted hashes without touching callers.
package cryptox

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/csvdb/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	ModePlain  = "plain"
	ModeArgon2 = "argon2"

	argon2Prefix = "argon2id$"
	saltSize     = 16
)

// Verifier turns a password into its stored form and checks candidates
// against a stored form.
type Verifier interface {
	Encode(password []byte) (string, error)
	Verify(stored string, password []byte) bool
}

// NewVerifier returns the verifier for mode (plain or argon2).
func NewVerifier(mode string) (Verifier, error) {
	switch mode {
	case ModePlain, "":
		return PlainVerifier{}, nil
	case ModeArgon2:
		return Argon2Verifier{}, nil
	default:
		return nil, fmt.Errorf("unknown password hashing mode %q", mode)
	}
}

// PlainVerifier stores passwords verbatim.
type PlainVerifier struct{}

func (PlainVerifier) Encode(password []byte) (string, error) {
	if strings.ContainsAny(string(password), "\r\n") {
		return "", fmt.Errorf("password must be a single line")
	}
	return string(password), nil
}

func (PlainVerifier) Verify(stored string, password []byte) bool {
	return subtle.ConstantTimeCompare([]byte(stored), password) == 1
}

// Argon2Verifier stores argon2id$<hex salt>$<hex key>. Stored values without
// the prefix are treated as plaintext, so accounts created before switching
// modes can still log in.
type Argon2Verifier struct{}

func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

func (Argon2Verifier) Encode(password []byte) (string, error) {
	salt := common.GenerateRandByteArray(saltSize)
	key := DeriveKey(password, salt)
	return argon2Prefix + hex.EncodeToString(salt) + "$" + hex.EncodeToString(key), nil
}

func (Argon2Verifier) Verify(stored string, password []byte) bool {
	encoded, ok := strings.CutPrefix(stored, argon2Prefix)
	if !ok {
		return PlainVerifier{}.Verify(stored, password)
	}

	saltHex, keyHex, ok := strings.Cut(encoded, "$")
	if !ok {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return false
	}

	candidate := DeriveKey(password, salt)
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

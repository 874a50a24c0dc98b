// Package crypto implements salted password hashing.
//
// The stored hash is bcrypt over HMAC-SHA256(salt, password). Pre-hashing
// keeps the bcrypt input at a fixed 64 bytes, under bcrypt's 72 byte limit,
// and binds the separately stored per-user salt into the hash.
package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// SaltBytes is the length of a generated salt before hex encoding.
const SaltBytes = 16

// Cost is the bcrypt work factor. Tests lower it to bcrypt.MinCost.
var Cost = bcrypt.DefaultCost

var ErrEmptyPassword = errors.New("password must not be empty")

// GenerateSalt returns a new random salt, hex encoded.
func GenerateSalt() (string, error) {
	b := make([]byte, SaltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashPassword hashes password with salt.
func HashPassword(password, salt string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword(prehash(password, salt), Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password and salt produce hash. The
// comparison is constant time.
func CheckPassword(password, salt, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(password, salt)) == nil
}

var (
	dummyOnce sync.Once
	dummySalt string
	dummyHash string
)

// CheckDummy spends the same work as CheckPassword against a throwaway
// hash. Callers use it when the account does not exist so that response
// time does not reveal whether a username is registered.
func CheckDummy(password string) {
	dummyOnce.Do(func() {
		dummySalt, _ = GenerateSalt()
		dummyHash, _ = HashPassword("dummy-password", dummySalt)
	})
	_ = CheckPassword(password, dummySalt, dummyHash)
}

func prehash(password, salt string) []byte {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(password))
	sum := mac.Sum(nil)
	out := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(out, sum)
	return out
}

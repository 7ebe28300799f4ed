package service

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

// HashPassword returns a salted bcrypt hash
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword verifies password against a stored hash. Besides bcrypt it
// accepts the "method$salt$hex" pbkdf2 and scrypt hashes written by the
// previous deployment. legacy is true when the stored hash should be
// upgraded to bcrypt.
func CheckPassword(stored, password string) (ok bool, legacy bool) {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil, false
	}
	return checkLegacyHash(stored, password), true
}

func checkLegacyHash(stored, password string) bool {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method, salt, want := parts[0], parts[1], parts[2]

	expected, err := hex.DecodeString(want)
	if err != nil || len(expected) == 0 {
		return false
	}

	var got []byte
	params := strings.Split(method, ":")
	switch params[0] {
	case "pbkdf2":
		if len(params) != 3 {
			return false
		}
		newHash := hashByName(params[1])
		iterations, err := strconv.Atoi(params[2])
		if newHash == nil || err != nil || iterations <= 0 {
			return false
		}
		got = pbkdf2.Key([]byte(password), []byte(salt), iterations, len(expected), newHash)
	case "scrypt":
		if len(params) != 4 {
			return false
		}
		n, errN := strconv.Atoi(params[1])
		r, errR := strconv.Atoi(params[2])
		p, errP := strconv.Atoi(params[3])
		if errN != nil || errR != nil || errP != nil {
			return false
		}
		got, err = scrypt.Key([]byte(password), []byte(salt), n, r, p, len(expected))
		if err != nil {
			return false
		}
	default:
		return false
	}

	return subtle.ConstantTimeCompare(got, expected) == 1
}

func hashByName(name string) func() hash.Hash {
	switch name {
	case "sha1":
		return sha1.New
	case "sha256":
		return sha256.New
	case "sha512":
		return sha512.New
	}
	return nil
}

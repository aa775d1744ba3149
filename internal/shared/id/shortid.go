package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// referenceAlphabet drops look-alike characters (0/O, 1/I/L) because
	// reference codes are typed by hand into bank transfer memo fields.
	referenceAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12

	// ReferenceCodeLength is the length of the random part of a reference code
	ReferenceCodeLength = 8

	// ReferenceCodePrefix marks bank wire reference codes
	ReferenceCodePrefix = "PL"
)

// Generate creates a cryptographically random Base62 ID of the given length.
func Generate(length int) (string, error) {
	return generateFrom(alphabet, length)
}

func generateFrom(chars string, length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(chars)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = chars[num.Int64()]
	}

	return string(result), nil
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_randomstring".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, id), nil
}

// NewReferenceCode returns a human-typeable bank wire reference such as "PL-7KQ2M9XA".
func NewReferenceCode() (string, error) {
	code, err := generateFrom(referenceAlphabet, ReferenceCodeLength)
	if err != nil {
		return "", err
	}
	return ReferenceCodePrefix + "-" + code, nil
}

// IsReferenceCode reports whether s has the reference code shape.
func IsReferenceCode(s string) bool {
	code, ok := strings.CutPrefix(s, ReferenceCodePrefix+"-")
	if !ok || len(code) != ReferenceCodeLength {
		return false
	}
	for _, c := range code {
		if !strings.ContainsRune(referenceAlphabet, c) {
			return false
		}
	}
	return true
}

// NewUUID returns a random RFC 4122 UUID string.
func NewUUID() string {
	return uuid.NewString()
}

// IsUUID reports whether s parses as a UUID.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

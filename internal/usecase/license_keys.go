package usecase

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// keyAlphabet deliberately omits characters that are easy to confuse
// when a customer types a key by hand (0/O, 1/I/L, U/V).
const keyAlphabet = "ABCDEFGHJKMNPQRSTVWXYZ23456789"

const (
	keyPrefix    = "TF"
	keyChars     = 28 // 28 chars over a 30-char alphabet ≈ 137 bits
	keyGroupSize = 7
)

// GenerateLicenseKey produces a globally unique license key from a
// cryptographically sound random source, rendered in a human-typeable
// character set, e.g. TF-XXXXXXX-XXXXXXX-XXXXXXX-XXXXXXX.
func GenerateLicenseKey() (string, error) {
	chars := make([]byte, 0, keyChars)
	buf := make([]byte, 64)

	for len(chars) < keyChars {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			// Rejection sampling keeps the alphabet distribution uniform.
			if int(b) >= 8*len(keyAlphabet) {
				continue
			}
			chars = append(chars, keyAlphabet[int(b)%len(keyAlphabet)])
			if len(chars) == keyChars {
				break
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(keyPrefix)
	for i := 0; i < keyChars; i += keyGroupSize {
		sb.WriteByte('-')
		sb.Write(chars[i : i+keyGroupSize])
	}

	return sb.String(), nil
}

package models

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

const (
	slugCharset      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	requestIDCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	requestIDLength  = 5
	// SlugSuffixLength is appended to a derived profile slug on collision.
	SlugSuffixLength = 5
)

// RandomSlug returns n random characters from the uppercase+digit charset.
func RandomSlug(n int) string {
	return randomString(slugCharset, n)
}

// RandomRequestID returns the short semi-unique id attached to friend requests.
func RandomRequestID() string {
	return randomString(requestIDCharset, requestIDLength)
}

func randomString(charset string, n int) string {
	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(charset)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to the first character rather than panic.
			b.WriteByte(charset[0])
			continue
		}
		b.WriteByte(charset[idx.Int64()])
	}
	return b.String()
}

// Slugify lowercases s and collapses every run of non-alphanumeric
// characters into a single hyphen, trimming hyphens at both ends.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

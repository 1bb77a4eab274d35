package record

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"
)

// Analyze computes every property of value and returns a new record stamped with now.
func Analyze(value string, now time.Time) StringRecord {
	hash := ContentHash(value)
	return StringRecord{
		ID:    hash,
		Value: value,
		Properties: Properties{
			Length:                utf8.RuneCountInString(value),
			IsPalindrome:          IsPalindrome(value),
			UniqueCharacters:      UniqueCharacters(value),
			WordCount:             WordCount(value),
			SHA256Hash:            hash,
			CharacterFrequencyMap: LetterFrequency(value),
		},
		CreatedAt: now.UTC(),
	}
}

// ContentHash returns the hex SHA-256 of the exact bytes of s.
// No trimming or case folding is applied.
func ContentHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// IsPalindrome reports whether s reads the same reversed, ignoring case.
// Spaces, digits, and punctuation are compared like any other character.
func IsPalindrome(s string) bool {
	runes := []rune(strings.ToLower(s))
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return false
		}
	}
	return true
}

// UniqueCharacters counts distinct characters in s, case-sensitively.
func UniqueCharacters(s string) int {
	seen := make(map[rune]struct{})
	for _, r := range s {
		seen[r] = struct{}{}
	}
	return len(seen)
}

// WordCount counts whitespace-delimited tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// LetterFrequency lower-cases s and counts each ASCII letter a-z.
// Everything else is skipped.
func LetterFrequency(s string) map[string]int {
	freq := make(map[string]int)
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			freq[string(r)]++
		}
	}
	return freq
}

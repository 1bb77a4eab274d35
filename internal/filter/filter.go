// Package filter selects stored records by their analyzed properties.
package filter

import (
	"strings"
	"unicode/utf8"

	"github.com/hpungsan/stringlens/internal/errors"
	"github.com/hpungsan/stringlens/internal/record"
)

// Filter is a set of optional predicates. A nil field is not applied.
// The JSON form echoes only the predicates that are set.
type Filter struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// IsEmpty reports whether no predicate is set.
func (f Filter) IsEmpty() bool {
	return f.IsPalindrome == nil && f.MinLength == nil && f.MaxLength == nil &&
		f.WordCount == nil && f.ContainsCharacter == nil
}

// Normalize checks predicates that arrive already typed (MCP arguments) and
// lower-cases ContainsCharacter.
func (f Filter) Normalize() (Filter, error) {
	if f.ContainsCharacter != nil {
		c := *f.ContainsCharacter
		if utf8.RuneCountInString(c) != 1 {
			return Filter{}, errors.NewInvalidRequest("contains_character must be a single character")
		}
		f.ContainsCharacter = ptr(strings.ToLower(c))
	}
	return f, nil
}

// Matches reports whether r satisfies every set predicate.
func (f Filter) Matches(r record.StringRecord) bool {
	p := r.Properties

	if f.IsPalindrome != nil && p.IsPalindrome != *f.IsPalindrome {
		return false
	}
	if f.MinLength != nil && p.Length < *f.MinLength {
		return false
	}
	if f.MaxLength != nil && p.Length > *f.MaxLength {
		return false
	}
	if f.WordCount != nil && p.WordCount != *f.WordCount {
		return false
	}
	if f.ContainsCharacter != nil && !strings.Contains(strings.ToLower(r.Value), *f.ContainsCharacter) {
		return false
	}
	return true
}

// Apply returns the records that match f, preserving order. The result is never nil.
func (f Filter) Apply(records []record.StringRecord) []record.StringRecord {
	out := make([]record.StringRecord, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }

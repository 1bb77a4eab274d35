package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/hpungsan/stringlens/internal/errors"
)

// Query parameter names understood by Parse.
const (
	ParamIsPalindrome      = "is_palindrome"
	ParamMinLength         = "min_length"
	ParamMaxLength         = "max_length"
	ParamWordCount         = "word_count"
	ParamContainsCharacter = "contains_character"
)

// Parse builds a Filter from query parameters. A parameter that is present
// but malformed fails the whole parse with INVALID_REQUEST; nothing is
// partially applied.
func Parse(q url.Values) (Filter, error) {
	var f Filter

	if q.Has(ParamIsPalindrome) {
		switch q.Get(ParamIsPalindrome) {
		case "true":
			f.IsPalindrome = ptr(true)
		case "false":
			f.IsPalindrome = ptr(false)
		default:
			return Filter{}, errors.NewInvalidRequest(`is_palindrome must be "true" or "false"`)
		}
	}

	var err error
	if f.MinLength, err = parseInt(q, ParamMinLength); err != nil {
		return Filter{}, err
	}
	if f.MaxLength, err = parseInt(q, ParamMaxLength); err != nil {
		return Filter{}, err
	}
	if f.WordCount, err = parseInt(q, ParamWordCount); err != nil {
		return Filter{}, err
	}

	if q.Has(ParamContainsCharacter) {
		f.ContainsCharacter = ptr(q.Get(ParamContainsCharacter))
	}

	return f.Normalize()
}

// parseInt returns nil when name is absent.
func parseInt(q url.Values, name string) (*int, error) {
	if !q.Has(name) {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(q.Get(name)))
	if err != nil {
		return nil, errors.NewInvalidRequest(name + " must be an integer")
	}
	return &v, nil
}

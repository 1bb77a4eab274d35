package filter

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/hpungsan/stringlens/internal/errors"
)

var (
	longerThanRegex = regexp.MustCompile(`longer than (\d+)`)
	letterRegex     = regexp.MustCompile(`containing the letter ([a-z])`)
)

// Translate maps a free-text query to a Filter using fixed phrase rules,
// evaluated in order against the lower-cased query. Later rules overwrite
// earlier ones on the same field:
//
//	"palindromic"                 -> is_palindrome = true
//	"single word"                 -> word_count = 1
//	"longer than N"               -> min_length = N+1
//	"containing the letter C"     -> contains_character = C
//	"containing the first vowel"  -> contains_character = "a"
//
// A query no rule understands fails with UNPARSEABLE_QUERY.
func Translate(query string) (Filter, error) {
	q := strings.ToLower(query)
	var f Filter

	if strings.Contains(q, "palindromic") {
		f.IsPalindrome = ptr(true)
	}
	if strings.Contains(q, "single word") {
		f.WordCount = ptr(1)
	}
	if m := longerThanRegex.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n < math.MaxInt {
			f.MinLength = ptr(n + 1)
		}
	}
	if m := letterRegex.FindStringSubmatch(q); m != nil {
		f.ContainsCharacter = ptr(m[1])
	}
	if strings.Contains(q, "containing the first vowel") {
		f.ContainsCharacter = ptr("a")
	}

	if f.IsEmpty() {
		return Filter{}, errors.NewUnparseableQuery(query)
	}
	return f, nil
}

package record

import "time"

// StringRecord is an analyzed string as kept in the store.
// A record is created once per distinct value and never mutated.
type StringRecord struct {
	// ID is the hex SHA-256 of Value's exact bytes
	ID string `json:"id"`

	// Value is the original input, case and whitespace preserved
	Value string `json:"value"`

	Properties Properties `json:"properties"`

	// CreatedAt is the UTC time of the first successful insert
	CreatedAt time.Time `json:"created_at"`
}

// Properties holds the values derived from a record's Value.
type Properties struct {
	// Length is the character count (runes, not bytes)
	Length int `json:"length"`

	IsPalindrome     bool `json:"is_palindrome"`
	UniqueCharacters int  `json:"unique_characters"`
	WordCount        int  `json:"word_count"`

	// SHA256Hash repeats the record ID
	SHA256Hash string `json:"sha256_hash"`

	// CharacterFrequencyMap counts ASCII letters a-z after lower-casing.
	// Letters that do not occur are absent.
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

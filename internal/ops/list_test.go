package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/stringlens/internal/errors"
	"github.com/hpungsan/stringlens/internal/filter"
)

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func TestList_NoFilter(t *testing.T) {
	for name, st := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, st, "level", "go", "noon")

			output, err := List(context.Background(), st, ListInput{})
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if output.Count != 3 || len(output.Data) != 3 {
				t.Errorf("Count = %d, len(Data) = %d, want 3", output.Count, len(output.Data))
			}
			if !output.FiltersApplied.IsEmpty() {
				t.Errorf("FiltersApplied = %+v, want empty", output.FiltersApplied)
			}
		})
	}
}

func TestList_MinLengthPalindrome(t *testing.T) {
	for name, st := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, st, "level", "go")

			f := filter.Filter{MinLength: intPtr(5), IsPalindrome: boolPtr(true)}
			output, err := List(context.Background(), st, ListInput{Filter: f})
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if output.Count != 1 {
				t.Fatalf("Count = %d, want 1", output.Count)
			}
			if output.Data[0].Value != "level" {
				t.Errorf("Data[0].Value = %q, want %q", output.Data[0].Value, "level")
			}
			if *output.FiltersApplied.MinLength != 5 || !*output.FiltersApplied.IsPalindrome {
				t.Errorf("FiltersApplied = %+v, want echo of input", output.FiltersApplied)
			}
		})
	}
}

func TestList_EmptyStore(t *testing.T) {
	for name, st := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			output, err := List(context.Background(), st, ListInput{})
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if output.Data == nil {
				t.Error("Data should be an empty slice, not nil")
			}
			if output.Count != 0 {
				t.Errorf("Count = %d, want 0", output.Count)
			}
		})
	}
}

func TestListNatural(t *testing.T) {
	for name, st := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, st, "abc", "abcd", "racecar", "a toyota", "kayak")

			output, err := ListNatural(context.Background(), st, ListNaturalInput{
				Query: "strings longer than 3 characters",
			})
			if err != nil {
				t.Fatalf("ListNatural failed: %v", err)
			}

			if got := *output.InterpretedQuery.ParsedFilters.MinLength; got != 4 {
				t.Errorf("MinLength = %d, want 4", got)
			}
			if output.InterpretedQuery.Original != "strings longer than 3 characters" {
				t.Errorf("Original = %q", output.InterpretedQuery.Original)
			}
			if output.Count != 4 {
				t.Errorf("Count = %d, want 4", output.Count)
			}
		})
	}
}

func TestListNatural_SingleWordPalindromes(t *testing.T) {
	for name, st := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, st, "kayak", "race car", "nope", "a b a")

			output, err := ListNatural(context.Background(), st, ListNaturalInput{
				Query: "all single word palindromic strings",
			})
			if err != nil {
				t.Fatalf("ListNatural failed: %v", err)
			}
			if output.Count != 1 || output.Data[0].Value != "kayak" {
				t.Errorf("Data = %+v, want only kayak", output.Data)
			}
		})
	}
}

func TestListNatural_Errors(t *testing.T) {
	st := setupStores(t)["memory"]
	ctx := context.Background()

	_, err := ListNatural(ctx, st, ListNaturalInput{Query: ""})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("empty query error = %v, want INVALID_REQUEST", err)
	}

	_, err = ListNatural(ctx, st, ListNaturalInput{Query: "tell me a joke"})
	if !errors.Is(err, errors.ErrUnparseableQuery) {
		t.Errorf("unparseable query error = %v, want UNPARSEABLE_QUERY", err)
	}
}

package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/stringlens/internal/errors"
	"github.com/hpungsan/stringlens/internal/filter"
	"github.com/hpungsan/stringlens/internal/store"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Filter filter.Filter
}

// List returns every stored record matching input.Filter, in store order.
func List(ctx context.Context, st store.Store, input ListInput) (*ListOutput, error) {
	all, err := st.List(ctx)
	if err != nil {
		return nil, err
	}

	data := input.Filter.Apply(all)

	return &ListOutput{
		Data:           data,
		Count:          len(data),
		FiltersApplied: input.Filter,
	}, nil
}

// ListNaturalInput contains parameters for the ListNatural operation.
type ListNaturalInput struct {
	Query string // required
}

// ListNatural translates input.Query into a filter and lists the matches.
// A blank query is INVALID_REQUEST; a query no rule understands is UNPARSEABLE_QUERY.
func ListNatural(ctx context.Context, st store.Store, input ListNaturalInput) (*ListNaturalOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, errors.NewInvalidRequest("Missing query parameter")
	}

	f, err := filter.Translate(input.Query)
	if err != nil {
		return nil, err
	}

	listed, err := List(ctx, st, ListInput{Filter: f})
	if err != nil {
		return nil, err
	}

	return &ListNaturalOutput{
		Data:  listed.Data,
		Count: listed.Count,
		InterpretedQuery: InterpretedQuery{
			Original:      input.Query,
			ParsedFilters: f,
		},
	}, nil
}

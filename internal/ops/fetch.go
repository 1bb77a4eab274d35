package ops

import (
	"context"

	"github.com/hpungsan/stringlens/internal/record"
	"github.com/hpungsan/stringlens/internal/store"
)

// GetInput contains parameters for the Get operation.
type GetInput struct {
	Value string
}

// Get retrieves the record whose value is exactly input.Value.
func Get(ctx context.Context, st store.Store, input GetInput) (*record.StringRecord, error) {
	return st.Get(ctx, record.ContentHash(input.Value))
}

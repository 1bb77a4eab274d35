package ops

import (
	"context"
	"time"

	"github.com/hpungsan/stringlens/internal/record"
	"github.com/hpungsan/stringlens/internal/store"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Value string // required; stored verbatim, may be empty

	// Now stamps created_at. Defaults to time.Now.
	Now func() time.Time
}

// Create analyzes input.Value and inserts it. A value already in the store
// fails with ALREADY_EXISTS and leaves the existing record untouched.
func Create(ctx context.Context, st store.Store, input CreateInput) (*record.StringRecord, error) {
	r := record.Analyze(input.Value, clock(input.Now))

	if err := st.Insert(ctx, &r); err != nil {
		return nil, err
	}

	return &r, nil
}

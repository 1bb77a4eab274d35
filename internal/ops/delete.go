package ops

import (
	"context"

	"github.com/hpungsan/stringlens/internal/record"
	"github.com/hpungsan/stringlens/internal/store"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	Value string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete permanently removes the record whose value is exactly input.Value.
func Delete(ctx context.Context, st store.Store, input DeleteInput) (*DeleteOutput, error) {
	id := record.ContentHash(input.Value)

	if err := st.Delete(ctx, id); err != nil {
		return nil, err
	}

	return &DeleteOutput{
		Deleted: true,
		ID:      id,
	}, nil
}

package vote

import "context"

type Vote struct {
	ID     int64  `json:"id"`
	Choice string `json:"choice"`
}

// Results maps each choice present in the store to its vote count.
// Choices without votes are absent.
type Results map[string]int64

type Repository interface {
	Create(ctx context.Context, v *Vote) error
	CountByChoice(ctx context.Context) (Results, error)
}

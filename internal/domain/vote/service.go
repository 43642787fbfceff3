package vote

import (
	"context"
	"errors"
)

var (
	ErrChoiceRequired = errors.New("choice is required")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Vote records one vote for choice. Any non-empty label is accepted.
func (s *Service) Vote(ctx context.Context, choice string) (*Vote, error) {
	if choice == "" {
		return nil, ErrChoiceRequired
	}

	v := &Vote{Choice: choice}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Results(ctx context.Context) (Results, error) {
	counts, err := s.repo.CountByChoice(ctx)
	if err != nil {
		return nil, err
	}

	res := make(Results, len(counts))
	for choice, c := range counts {
		if c > 0 {
			res[choice] = c
		}
	}
	return res, nil
}

package match

import (
	"context"
	"errors"

	"skill-exchange/internal/domain/matching"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInternal     = errors.New("internal error")
)

type Discoverer interface {
	DiscoverMatches(ctx context.Context, focalID int64) (matching.Discovery, error)
}

type Service struct {
	engine Discoverer
}

func NewService(engine Discoverer) *Service {
	return &Service{engine: engine}
}

func (s *Service) FindMatches(ctx context.Context, userID int64) (matching.Discovery, error) {
	res, err := s.engine.DiscoverMatches(ctx, userID)
	if err != nil {
		if errors.Is(err, matching.ErrUserNotFound) {
			return matching.Discovery{}, ErrUserNotFound
		}
		return matching.Discovery{}, ErrInternal
	}
	if res.Matches == nil {
		res.Matches = []matching.Match{}
	}
	return res, nil
}

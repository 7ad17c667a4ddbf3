package rating

import (
	"context"
	"errors"
	"time"
)

const (
	MinValue = 1
	MaxValue = 5
)

var ErrAlreadyRated = errors.New("chat already rated by this user")

type Rating struct {
	ID        int64
	RaterID   int64
	RatedID   int64
	ChatID    int64
	RaterName string
	Value     int
	Comment   *string
	Timestamp time.Time
}

type Repository interface {
	Create(ctx context.Context, r Rating) (Rating, error)
}

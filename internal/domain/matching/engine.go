package matching

import (
	"context"
	"errors"
	"fmt"

	"skill-exchange/internal/domain/user"
	"skill-exchange/internal/worker"

	"go.uber.org/zap"
)

var (
	ErrUserNotFound = errors.New("focal user not found")

	errNotEvaluated = errors.New("candidate not evaluated")
)

// Directory is the read-only view of users the engine scans.
// GetUser must report a missing user with user.ErrNotFound.
type Directory interface {
	GetUser(ctx context.Context, id int64) (user.User, error)
	ListUsersExcluding(ctx context.Context, id int64) ([]user.User, error)
}

type Match struct {
	Candidate user.User
	Evidence  Evidence
}

type Discovery struct {
	Matches         []Match
	SemanticEnabled bool
}

func (d Discovery) Count() int {
	return len(d.Matches)
}

// outcome is the result of evaluating one candidate: a match, no match
// (both nil), or a skip with its reason.
type outcome struct {
	match   *Match
	skipped error
}

type Engine struct {
	users   Directory
	matcher *Matcher
	workers int
	logger  *zap.Logger
}

func NewEngine(users Directory, matcher *Matcher, workers int, logger *zap.Logger) *Engine {
	if matcher == nil {
		matcher = NewMatcher(nil)
	}
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{users: users, matcher: matcher, workers: workers, logger: logger}
}

func (e *Engine) SemanticEnabled() bool {
	return e.matcher.SemanticEnabled()
}

// DiscoverMatches returns every other user with a two-way skill exchange
// available with focalID. Only ErrUserNotFound is returned as an error; any
// other fault yields an empty result.
func (e *Engine) DiscoverMatches(ctx context.Context, focalID int64) (res Discovery, err error) {
	semantic := e.SemanticEnabled()
	empty := Discovery{Matches: []Match{}, SemanticEnabled: semantic}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("match discovery panicked, returning empty result",
				zap.Int64("user_id", focalID), zap.Any("panic", r))
			res, err = empty, nil
		}
	}()

	focal, err := e.users.GetUser(ctx, focalID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Discovery{}, fmt.Errorf("%w: %d", ErrUserNotFound, focalID)
		}
		e.logger.Error("match discovery: load focal user failed, returning empty result",
			zap.Int64("user_id", focalID), zap.Error(err))
		return empty, nil
	}

	candidates, err := e.users.ListUsersExcluding(ctx, focal.ID)
	if err != nil {
		e.logger.Error("match discovery: list candidates failed, returning empty result",
			zap.Int64("user_id", focalID), zap.Error(err))
		return empty, nil
	}

	outcomes := e.evaluate(ctx, focal, candidates)

	matches := make([]Match, 0)
	skipped := 0
	for i, o := range outcomes {
		if o.skipped != nil {
			skipped++
			e.logger.Warn("skipping candidate",
				zap.Int64("user_id", focalID),
				zap.Int64("candidate_id", candidates[i].ID),
				zap.Error(o.skipped))
			continue
		}
		if o.match != nil {
			matches = append(matches, *o.match)
		}
	}

	e.logger.Debug("match discovery finished",
		zap.Int64("user_id", focalID),
		zap.Int("candidates", len(candidates)),
		zap.Int("matches", len(matches)),
		zap.Int("skipped", skipped),
		zap.Bool("semantic", semantic))

	return Discovery{Matches: matches, SemanticEnabled: semantic}, nil
}

func (e *Engine) evaluate(ctx context.Context, focal user.User, candidates []user.User) []outcome {
	outcomes := make([]outcome, len(candidates))
	if len(candidates) == 0 {
		return outcomes
	}

	pool := worker.NewWorkerPool(e.workers, len(candidates))
	results := pool.Run(ctx)

	focalSkills := profileOf(focal)
	for i := range candidates {
		outcomes[i] = outcome{skipped: errNotEvaluated}
		if candidates[i].ID == focal.ID {
			outcomes[i] = outcome{}
			continue
		}
		idx := i
		pool.Submit(func(ctx context.Context) error {
			outcomes[idx] = e.evaluateOne(ctx, focalSkills, candidates[idx])
			return outcomes[idx].skipped
		})
	}
	pool.Close()

	for range results {
	}

	for i := range outcomes {
		if errors.Is(outcomes[i].skipped, errNotEvaluated) && ctx.Err() != nil {
			outcomes[i].skipped = fmt.Errorf("%w: %w", errNotEvaluated, ctx.Err())
		}
	}
	return outcomes
}

func (e *Engine) evaluateOne(ctx context.Context, focal SkillProfile, candidate user.User) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{skipped: fmt.Errorf("candidate evaluation panicked: %v", r)}
		}
	}()

	ev, err := e.matcher.FindMatches(ctx, focal, profileOf(candidate))
	if err != nil {
		return outcome{skipped: err}
	}
	if !ev.IsMatch() {
		return outcome{}
	}
	return outcome{match: &Match{Candidate: candidate, Evidence: ev}}
}

func profileOf(u user.User) SkillProfile {
	return SkillProfile{Offer: u.SkillsToOffer, Learn: u.SkillsToLearn}
}

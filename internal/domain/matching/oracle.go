package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

var (
	// ErrProviderFailure covers transport errors, timeouts and unusable answers
	// from the semantic compatibility provider.
	ErrProviderFailure   = errors.New("skill compatibility provider failure")
	ErrUnparseableAnswer = fmt.Errorf("%w: unparseable answer", ErrProviderFailure)
)

// TextGenerator is the external text-completion service used in semantic mode.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type OracleConfig struct {
	Semantic    bool
	CallTimeout time.Duration
	MinInterval time.Duration
}

type OracleOption func(*Oracle)

func WithVerdictStore(s VerdictStore) OracleOption {
	return func(o *Oracle) { o.store = s }
}

func WithLogger(l *zap.Logger) OracleOption {
	return func(o *Oracle) {
		if l != nil {
			o.logger = l
		}
	}
}

// Oracle decides whether two skill labels are compatible. Exact matches
// (after normalization) never reach the provider. In exact mode it is a
// pure normalized-equality check.
type Oracle struct {
	gen      TextGenerator
	semantic bool
	timeout  time.Duration
	limiter  *rate.Limiter
	cache    *VerdictCache
	store    VerdictStore
	flight   singleflight.Group
	logger   *zap.Logger
}

func NewOracle(gen TextGenerator, cache *VerdictCache, cfg OracleConfig, opts ...OracleOption) *Oracle {
	if cache == nil {
		cache = NewVerdictCache(DefaultCacheSize)
	}
	o := &Oracle{
		gen:      gen,
		semantic: cfg.Semantic && gen != nil,
		timeout:  cfg.CallTimeout,
		cache:    cache,
		logger:   zap.NewNop(),
	}
	if cfg.MinInterval > 0 {
		o.limiter = rate.NewLimiter(rate.Every(cfg.MinInterval), 1)
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewExactOracle returns an oracle that never consults a provider.
func NewExactOracle() *Oracle {
	return NewOracle(nil, nil, OracleConfig{})
}

func (o *Oracle) SemanticEnabled() bool {
	return o != nil && o.semantic
}

func (o *Oracle) Compatible(ctx context.Context, a, b string) (bool, error) {
	na, nb := NormalizeSkill(a), NormalizeSkill(b)
	if na == nb {
		return true, nil
	}
	if !o.SemanticEnabled() {
		return false, nil
	}

	key := pairKey(na, nb)
	if v, ok := o.cache.Get(key); ok {
		return v, nil
	}

	// The shared call outlives any single waiter; ask still caps it with the call timeout.
	flightCtx := context.WithoutCancel(ctx)
	ch := o.flight.DoChan(key, func() (any, error) {
		return o.resolve(flightCtx, key, na, nb)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return false, res.Err
		}
		return res.Val.(bool), nil
	case <-ctx.Done():
		return false, fmt.Errorf("%w: %w", ErrProviderFailure, ctx.Err())
	}
}

func (o *Oracle) resolve(ctx context.Context, key, a, b string) (bool, error) {
	if v, ok := o.cache.Get(key); ok {
		return v, nil
	}

	if o.store != nil {
		v, found, err := o.store.GetVerdict(ctx, key)
		switch {
		case err != nil:
			o.logger.Debug("verdict store lookup failed", zap.Error(err))
		case found:
			o.cache.Add(key, v)
			return v, nil
		}
	}

	v, err := o.ask(ctx, a, b)
	if err != nil {
		o.logger.Debug("skill compatibility check failed", zap.String("skill_a", a), zap.String("skill_b", b), zap.Error(err))
		return false, err
	}

	o.cache.Add(key, v)
	if o.store != nil {
		if err := o.store.SetVerdict(ctx, key, v); err != nil {
			o.logger.Debug("verdict store write failed", zap.Error(err))
		}
	}
	return v, nil
}

func (o *Oracle) ask(ctx context.Context, a, b string) (bool, error) {
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return false, fmt.Errorf("%w: rate limit wait: %w", ErrProviderFailure, err)
		}
	}

	callCtx := ctx
	if o.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	out, err := o.gen.GenerateContent(callCtx, compatibilityPrompt(a, b))
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrProviderFailure, err)
	}
	return parseVerdict(out)
}

func parseVerdict(raw string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "YES":
		return true, nil
	case "NO":
		return false, nil
	}
	if len(raw) > 64 {
		raw = raw[:64] + "..."
	}
	return false, fmt.Errorf("%w: %q", ErrUnparseableAnswer, raw)
}

func compatibilityPrompt(a, b string) string {
	a, b = canonicalPair(a, b)
	return fmt.Sprintf(`Determine if these two skills are relevant for a skill exchange.
Return "YES" if:
- They are the same skill
- One is a specific type of the other (e.g., "classical piano" and "piano")
- OR they are in the same general category or domain (e.g., "hiking" and "walking" are both outdoor/fitness/foot-based activities)
Return "NO" if they are unrelated (e.g., "coding" and "swimming").
Skill 1: %s
Skill 2: %s
Return only "YES" or "NO".`, a, b)
}

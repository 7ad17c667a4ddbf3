package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"skill-exchange/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	users     []user.User
	getErr    error
	listErr   error
	leakFocal bool
	panics    bool
}

func (d *fakeDirectory) GetUser(_ context.Context, id int64) (user.User, error) {
	if d.panics {
		panic("directory exploded")
	}
	if d.getErr != nil {
		return user.User{}, d.getErr
	}
	for _, u := range d.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (d *fakeDirectory) ListUsersExcluding(_ context.Context, id int64) ([]user.User, error) {
	if d.listErr != nil {
		return nil, d.listErr
	}
	out := make([]user.User, 0, len(d.users))
	for _, u := range d.users {
		if u.ID == id && !d.leakFocal {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func member(id int64, name string, offer, learn []string) user.User {
	return user.User{ID: id, Name: name, SkillsToOffer: offer, SkillsToLearn: learn}
}

func matchedIDs(d Discovery) []int64 {
	ids := make([]int64, 0, len(d.Matches))
	for _, m := range d.Matches {
		ids = append(ids, m.Candidate.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func TestEngine_ExactModeFindsReciprocalMatch(t *testing.T) {
	dir := &fakeDirectory{users: []user.User{
		member(1, "Ana", []string{"Python", "Cooking"}, []string{"Guitar", "Spanish"}),
		member(2, "Ben", []string{"Guitar"}, []string{"Python"}),
		member(3, "Cy", []string{"Drawing"}, []string{"Python"}),
	}}
	e := NewEngine(dir, NewMatcher(nil), 2, nil)

	res, err := e.DiscoverMatches(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, res.SemanticEnabled)
	require.Equal(t, 1, res.Count())
	assert.Equal(t, int64(2), res.Matches[0].Candidate.ID)
	assert.True(t, res.Matches[0].Evidence.Exact)
	assert.NotEmpty(t, res.Matches[0].Evidence.OfferMatches)
	assert.NotEmpty(t, res.Matches[0].Evidence.LearnMatches)
}

func TestEngine_FocalNotFound(t *testing.T) {
	e := NewEngine(&fakeDirectory{}, nil, 1, nil)

	_, err := e.DiscoverMatches(context.Background(), 42)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestEngine_NeverMatchesSelf(t *testing.T) {
	dir := &fakeDirectory{
		leakFocal: true,
		users: []user.User{
			member(1, "Ana", []string{"Python"}, []string{"Python"}),
			member(2, "Ben", []string{"Python"}, []string{"Python"}),
		},
	}
	e := NewEngine(dir, nil, 4, nil)

	res, err := e.DiscoverMatches(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, matchedIDs(res))
}

func TestEngine_EmptySkillsYieldNothing(t *testing.T) {
	dir := &fakeDirectory{users: []user.User{
		member(1, "Ana", nil, nil),
		member(2, "Ben", []string{"Guitar"}, []string{"Python"}),
	}}
	gen := newFakeGenerator()
	e := NewEngine(dir, NewMatcher(semanticOracle(gen)), 2, nil)

	res, err := e.DiscoverMatches(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, res.SemanticEnabled)
	assert.Equal(t, 0, res.Count())
	assert.NotNil(t, res.Matches)
	assert.Equal(t, 0, gen.Calls())
}

func TestEngine_NoCompatibleCandidates(t *testing.T) {
	dir := &fakeDirectory{users: []user.User{
		member(1, "Ana", []string{"Coding"}, []string{"Painting"}),
		member(2, "Ben", []string{"Swimming"}, []string{"Knitting"}),
	}}
	e := NewEngine(dir, NewMatcher(semanticOracle(newFakeGenerator())), 1, nil)

	res, err := e.DiscoverMatches(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count())
}

func TestEngine_SemanticMatchesRelatedSkills(t *testing.T) {
	dir := &fakeDirectory{users: []user.User{
		member(1, "Ana", []string{"Piano"}, []string{"Hiking"}),
		member(2, "Ben", []string{"Walking"}, []string{"Classical Piano"}),
		member(3, "Cy", []string{"Walking"}, []string{"Welding"}),
	}}
	gen := newFakeGenerator([2]string{"piano", "classical piano"}, [2]string{"hiking", "walking"})
	e := NewEngine(dir, NewMatcher(semanticOracle(gen)), 3, nil)

	res, err := e.DiscoverMatches(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, res.SemanticEnabled)
	require.Equal(t, []int64{2}, matchedIDs(res))
	assert.Equal(t, "Piano matches Classical Piano", res.Matches[0].Evidence.OfferMatches[0].Sentence())
	assert.Equal(t, "Walking matches Hiking", res.Matches[0].Evidence.LearnMatches[0].Sentence())
}

func TestEngine_SkipsCandidateOnProviderFailure(t *testing.T) {
	dir := &fakeDirectory{users: []user.User{
		member(1, "Ana", []string{"Piano"}, []string{"Hiking"}),
		member(2, "Ben", []string{"Walking"}, []string{"Classical Piano"}),
		member(3, "Cy", []string{"Trail Running"}, []string{"Piano"}),
		member(4, "Di", []string{"Hiking"}, []string{"Jazz Piano"}),
	}}
	gen := newFakeGenerator(
		[2]string{"piano", "classical piano"},
		[2]string{"piano", "jazz piano"},
		[2]string{"hiking", "walking"},
	)
	gen.failFor["trail running"] = errors.New("upstream 503")
	e := NewEngine(dir, NewMatcher(semanticOracle(gen)), 2, nil)

	res, err := e.DiscoverMatches(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, matchedIDs(res))
}

func TestEngine_DirectoryFaultsDegradeToEmpty(t *testing.T) {
	users := []user.User{
		member(1, "Ana", []string{"Python"}, []string{"Guitar"}),
		member(2, "Ben", []string{"Guitar"}, []string{"Python"}),
	}

	cases := map[string]*fakeDirectory{
		"list fails": {users: users, listErr: errors.New("connection reset")},
		"get fails":  {users: users, getErr: errors.New("connection reset")},
		"panics":     {users: users, panics: true},
	}
	for name, dir := range cases {
		t.Run(name, func(t *testing.T) {
			e := NewEngine(dir, nil, 2, nil)
			res, err := e.DiscoverMatches(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, 0, res.Count())
			assert.NotNil(t, res.Matches)
		})
	}
}

func TestEngine_ManyCandidatesAcrossWorkers(t *testing.T) {
	users := []user.User{member(1, "Ana", []string{"Go"}, []string{"Rust"})}
	for i := int64(2); i <= 51; i++ {
		learn := []string{"Go"}
		if i%2 == 0 {
			learn = []string{"Haskell"}
		}
		users = append(users, member(i, fmt.Sprintf("user-%d", i), []string{"rust"}, learn))
	}
	e := NewEngine(&fakeDirectory{users: users}, nil, 8, nil)

	res, err := e.DiscoverMatches(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 25, res.Count())
	for _, id := range matchedIDs(res) {
		assert.Equal(t, int64(1), id%2)
	}
}

func TestEngine_CancelledContextSkipsCandidates(t *testing.T) {
	dir := &fakeDirectory{users: []user.User{
		member(1, "Ana", []string{"Python"}, []string{"Guitar"}),
		member(2, "Ben", []string{"Guitar"}, []string{"Python"}),
	}}
	gen := newFakeGenerator()
	e := NewEngine(dir, NewMatcher(semanticOracle(gen)), 1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := e.DiscoverMatches(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count())
}

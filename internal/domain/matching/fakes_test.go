package matching

import (
	"context"
	"strings"
	"sync"
)

// fakeGenerator answers from a table of related pairs, keyed by the
// normalized labels found on the prompt's "Skill 1/2" lines.
type fakeGenerator struct {
	mu      sync.Mutex
	calls   int
	related map[[2]string]bool
	failFor map[string]error
	answer  func(ctx context.Context, a, b string) (string, error)
}

func newFakeGenerator(pairs ...[2]string) *fakeGenerator {
	g := &fakeGenerator{related: map[[2]string]bool{}, failFor: map[string]error{}}
	for _, p := range pairs {
		a, b := canonicalPair(NormalizeSkill(p[0]), NormalizeSkill(p[1]))
		g.related[[2]string{a, b}] = true
	}
	return g
}

func (g *fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	a, b := skillsFromPrompt(prompt)

	g.mu.Lock()
	g.calls++
	answer := g.answer
	errA, failA := g.failFor[a]
	errB, failB := g.failFor[b]
	related := g.related[[2]string{a, b}]
	g.mu.Unlock()

	if answer != nil {
		return answer(ctx, a, b)
	}
	if failA {
		return "", errA
	}
	if failB {
		return "", errB
	}
	if related {
		return " yes\n", nil
	}
	return "NO", nil
}

func (g *fakeGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func skillsFromPrompt(prompt string) (string, string) {
	var a, b string
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Skill 1: "):
			a = strings.TrimPrefix(line, "Skill 1: ")
		case strings.HasPrefix(line, "Skill 2: "):
			b = strings.TrimPrefix(line, "Skill 2: ")
		}
	}
	return a, b
}

type memoryStore struct {
	mu       sync.Mutex
	verdicts map[string]bool
	err      error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{verdicts: map[string]bool{}}
}

func (s *memoryStore) GetVerdict(_ context.Context, key string) (bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, false, s.err
	}
	v, ok := s.verdicts[key]
	return v, ok, nil
}

func (s *memoryStore) SetVerdict(_ context.Context, key string, verdict bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.verdicts[key] = verdict
	return nil
}

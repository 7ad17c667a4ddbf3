package matching

import "strings"

// NormalizeSkill trims and case-folds a skill label for comparison.
func NormalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// pairKey is the cache key of an unordered pair of normalized labels.
func pairKey(a, b string) string {
	a, b = canonicalPair(a, b)
	return a + "\x1f" + b
}

func canonicalPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// SkillProfile is a read-only snapshot of what a user teaches and wants to learn.
type SkillProfile struct {
	Offer []string
	Learn []string
}

// SkillPair records one offered skill satisfying one desired skill.
type SkillPair struct {
	Offered string
	Desired string
}

func (p SkillPair) Sentence() string {
	return p.Offered + " matches " + p.Desired
}

// uniqueLabels drops blank labels and exact duplicates, keeping first-seen order.
func uniqueLabels(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

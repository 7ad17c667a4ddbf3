package matching

import "context"

// Compatibility is the contract the matcher needs from an oracle.
type Compatibility interface {
	Compatible(ctx context.Context, a, b string) (bool, error)
	SemanticEnabled() bool
}

// Evidence lists the skill pairs that justify (or fail to justify) a match.
// OfferMatches pair a focal offer with a candidate want; LearnMatches pair a
// candidate offer with a focal want. Exact is set when the pairs come from
// plain set intersection.
type Evidence struct {
	OfferMatches []SkillPair
	LearnMatches []SkillPair
	Exact        bool
}

// IsMatch requires willingness in both directions.
func (e Evidence) IsMatch() bool {
	return len(e.OfferMatches) > 0 && len(e.LearnMatches) > 0
}

type Matcher struct {
	oracle Compatibility
}

func NewMatcher(oracle Compatibility) *Matcher {
	if oracle == nil {
		oracle = NewExactOracle()
	}
	return &Matcher{oracle: oracle}
}

func (m *Matcher) SemanticEnabled() bool {
	return m.oracle.SemanticEnabled()
}

// FindMatches checks the full cross product in both directions. The first
// oracle failure abandons the evaluation.
func (m *Matcher) FindMatches(ctx context.Context, focal, candidate SkillProfile) (Evidence, error) {
	if !m.oracle.SemanticEnabled() {
		return intersect(focal, candidate), nil
	}

	focalOffer := uniqueLabels(focal.Offer)
	focalLearn := uniqueLabels(focal.Learn)
	candOffer := uniqueLabels(candidate.Offer)
	candLearn := uniqueLabels(candidate.Learn)

	var ev Evidence
	for _, mine := range focalOffer {
		for _, theirs := range candLearn {
			ok, err := m.oracle.Compatible(ctx, mine, theirs)
			if err != nil {
				return Evidence{}, err
			}
			if ok {
				ev.OfferMatches = append(ev.OfferMatches, SkillPair{Offered: mine, Desired: theirs})
			}
		}
	}

	for _, mine := range focalLearn {
		for _, theirs := range candOffer {
			ok, err := m.oracle.Compatible(ctx, mine, theirs)
			if err != nil {
				return Evidence{}, err
			}
			if ok {
				ev.LearnMatches = append(ev.LearnMatches, SkillPair{Offered: theirs, Desired: mine})
			}
		}
	}

	return ev, nil
}

// intersect computes focalOffer ∩ candLearn and focalLearn ∩ candOffer on
// normalized labels.
func intersect(focal, candidate SkillProfile) Evidence {
	ev := Evidence{Exact: true}

	candLearn := indexLabels(candidate.Learn)
	for _, mine := range dedupeNormalized(focal.Offer) {
		if theirs, ok := candLearn[NormalizeSkill(mine)]; ok {
			ev.OfferMatches = append(ev.OfferMatches, SkillPair{Offered: mine, Desired: theirs})
		}
	}

	candOffer := indexLabels(candidate.Offer)
	for _, mine := range dedupeNormalized(focal.Learn) {
		if theirs, ok := candOffer[NormalizeSkill(mine)]; ok {
			ev.LearnMatches = append(ev.LearnMatches, SkillPair{Offered: theirs, Desired: mine})
		}
	}

	return ev
}

func indexLabels(in []string) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		k := NormalizeSkill(s)
		if k == "" {
			continue
		}
		if _, ok := out[k]; !ok {
			out[k] = s
		}
	}
	return out
}

func dedupeNormalized(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		k := NormalizeSkill(s)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

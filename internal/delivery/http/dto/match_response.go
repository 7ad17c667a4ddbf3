package dto

import "skill-exchange/internal/domain/matching"

// MatchResponse is a candidate's public profile plus the evidence for the match.
type MatchResponse struct {
	UserResponse
	OfferMatches []string `json:"offer_matches"`
	LearnMatches []string `json:"learn_matches"`
}

type MatchesResponse struct {
	Matches   []MatchResponse `json:"matches"`
	Count     int             `json:"count"`
	AIEnabled bool            `json:"ai_enabled"`
}

func NewMatchesResponse(d matching.Discovery) MatchesResponse {
	out := MatchesResponse{
		Matches:   make([]MatchResponse, 0, len(d.Matches)),
		AIEnabled: d.SemanticEnabled,
	}
	for _, m := range d.Matches {
		out.Matches = append(out.Matches, MatchResponse{
			UserResponse: NewUserResponse(m.Candidate),
			OfferMatches: renderOffer(m.Evidence),
			LearnMatches: renderLearn(m.Evidence),
		})
	}
	out.Count = len(out.Matches)
	return out
}

// Exact evidence lists the shared skills as the focal user wrote them;
// semantic evidence is rendered as "<offered> matches <desired>".
func renderOffer(ev matching.Evidence) []string {
	out := make([]string, 0, len(ev.OfferMatches))
	for _, p := range ev.OfferMatches {
		if ev.Exact {
			out = append(out, p.Offered)
			continue
		}
		out = append(out, p.Sentence())
	}
	return out
}

func renderLearn(ev matching.Evidence) []string {
	out := make([]string, 0, len(ev.LearnMatches))
	for _, p := range ev.LearnMatches {
		if ev.Exact {
			out = append(out, p.Desired)
			continue
		}
		out = append(out, p.Sentence())
	}
	return out
}

package user

import "time"

type User struct {
	ID            int64
	Name          string
	Email         string
	PasswordHash  string
	Pronouns      *string
	Bio           *string
	Location      *string
	Availability  *string
	LearningStyle *string
	SkillsToOffer []string
	SkillsToLearn []string
	ImageURL      *string
	AverageRating float64
	CreatedAt     time.Time
}

// ProfileUpdate carries the mutable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Name          *string
	Pronouns      *string
	Bio           *string
	Location      *string
	Availability  *string
	LearningStyle *string
	SkillsToOffer *[]string
	SkillsToLearn *[]string
	ImageURL      *string
}

func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Pronouns == nil && p.Bio == nil && p.Location == nil &&
		p.Availability == nil && p.LearningStyle == nil && p.SkillsToOffer == nil &&
		p.SkillsToLearn == nil && p.ImageURL == nil
}

func (p ProfileUpdate) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Pronouns != nil {
		u.Pronouns = p.Pronouns
	}
	if p.Bio != nil {
		u.Bio = p.Bio
	}
	if p.Location != nil {
		u.Location = p.Location
	}
	if p.Availability != nil {
		u.Availability = p.Availability
	}
	if p.LearningStyle != nil {
		u.LearningStyle = p.LearningStyle
	}
	if p.SkillsToOffer != nil {
		u.SkillsToOffer = *p.SkillsToOffer
	}
	if p.SkillsToLearn != nil {
		u.SkillsToLearn = *p.SkillsToLearn
	}
	if p.ImageURL != nil {
		u.ImageURL = p.ImageURL
	}
	return u
}

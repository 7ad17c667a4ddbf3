package dto

import "skill-exchange/internal/domain/user"

type UserResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Pronouns      *string  `json:"pronouns"`
	Bio           *string  `json:"bio"`
	Location      *string  `json:"location"`
	Availability  *string  `json:"availability"`
	LearningStyle *string  `json:"learning_style"`
	SkillsToOffer []string `json:"skills_to_offer"`
	SkillsToLearn []string `json:"skills_to_learn"`
	AverageRating float64  `json:"average_rating"`
	ImageURL      *string  `json:"image_url"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Pronouns:      u.Pronouns,
		Bio:           u.Bio,
		Location:      u.Location,
		Availability:  u.Availability,
		LearningStyle: u.LearningStyle,
		SkillsToOffer: orEmpty(u.SkillsToOffer),
		SkillsToLearn: orEmpty(u.SkillsToLearn),
		AverageRating: u.AverageRating,
		ImageURL:      u.ImageURL,
	}
}

// ProfileUpdateRequest is the body of a profile edit and the optional
// profile part of a signup. Absent fields are left unchanged.
type ProfileUpdateRequest struct {
	Name          *string   `json:"name"`
	Pronouns      *string   `json:"pronouns"`
	Bio           *string   `json:"bio"`
	Location      *string   `json:"location"`
	Availability  *string   `json:"availability"`
	LearningStyle *string   `json:"learning_style"`
	SkillsToOffer *[]string `json:"skills_to_offer"`
	SkillsToLearn *[]string `json:"skills_to_learn"`
	ImageURL      *string   `json:"image_url"`
}

func (r ProfileUpdateRequest) ToDomain() user.ProfileUpdate {
	return user.ProfileUpdate{
		Name:          r.Name,
		Pronouns:      r.Pronouns,
		Bio:           r.Bio,
		Location:      r.Location,
		Availability:  r.Availability,
		LearningStyle: r.LearningStyle,
		SkillsToOffer: r.SkillsToOffer,
		SkillsToLearn: r.SkillsToLearn,
		ImageURL:      r.ImageURL,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

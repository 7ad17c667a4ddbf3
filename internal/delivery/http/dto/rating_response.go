package dto

import "skill-exchange/internal/domain/rating"

type CreateRatingRequest struct {
	RaterID int64   `json:"rater_id"`
	RatedID int64   `json:"rated_id"`
	ChatID  int64   `json:"chat_id"`
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

type RatingResponse struct {
	ID        int64   `json:"id"`
	RaterID   int64   `json:"rater_id"`
	RatedID   int64   `json:"rated_id"`
	ChatID    int64   `json:"chat_id"`
	RaterName string  `json:"rater_name"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
	Timestamp string  `json:"timestamp"`
}

func NewRatingResponse(r rating.Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		RaterID:   r.RaterID,
		RatedID:   r.RatedID,
		ChatID:    r.ChatID,
		RaterName: r.RaterName,
		Rating:    r.Value,
		Comment:   r.Comment,
		Timestamp: formatTime(r.Timestamp),
	}
}

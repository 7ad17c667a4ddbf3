package repository

import (
	"context"

	"skill-exchange/internal/database"
	dbpostgres "skill-exchange/internal/database/postgres"
	"skill-exchange/internal/domain/rating"
)

type PostgresRatingRepository struct {
	db database.DB
}

func NewPostgresRatingRepository(db database.DB) *PostgresRatingRepository {
	return &PostgresRatingRepository{db: db}
}

func (r *PostgresRatingRepository) Create(ctx context.Context, in rating.Rating) (rating.Rating, error) {
	row := r.db.QueryRow(ctx,
		`WITH ins AS (
			INSERT INTO ratings (rater_id, rated_id, chat_id, rating, comment)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, rater_id, rated_id, chat_id, rating, comment, timestamp
		 )
		 SELECT ins.id, ins.rater_id, ins.rated_id, ins.chat_id, u.name, ins.rating, ins.comment, ins.timestamp
		 FROM ins JOIN users u ON u.id = ins.rater_id`,
		in.RaterID, in.RatedID, in.ChatID, in.Value, in.Comment,
	)

	var out rating.Rating
	if err := row.Scan(&out.ID, &out.RaterID, &out.RatedID, &out.ChatID, &out.RaterName, &out.Value, &out.Comment, &out.Timestamp); err != nil {
		if dbpostgres.IsUniqueViolation(err) {
			return rating.Rating{}, rating.ErrAlreadyRated
		}
		return rating.Rating{}, err
	}
	return out, nil
}

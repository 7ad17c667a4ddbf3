package repository

import (
	"context"
	"strings"

	"skill-exchange/internal/database"
	dbpostgres "skill-exchange/internal/database/postgres"
	"skill-exchange/internal/domain/user"
)

// average_rating is derived from ratings received rather than stored.
const userColumns = `u.id, u.name, u.email, u.password_hash, u.pronouns, u.bio, u.location,
	u.availability, u.learning_style, u.skills_to_offer, u.skills_to_learn, u.image_url,
	COALESCE((SELECT AVG(r.rating)::float8 FROM ratings r WHERE r.rated_id = u.id), 0),
	u.created_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, pronouns, bio, location, availability,
			learning_style, skills_to_offer, skills_to_learn, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at`,
		u.Name, strings.TrimSpace(u.Email), u.PasswordHash, u.Pronouns, u.Bio, u.Location, u.Availability,
		u.LearningStyle, nonNil(u.SkillsToOffer), nonNil(u.SkillsToLearn), u.ImageURL,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		if dbpostgres.IsUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, err
	}
	u.SkillsToOffer = nonNil(u.SkillsToOffer)
	u.SkillsToLearn = nonNil(u.SkillsToLearn)
	return u, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users u WHERE lower(u.email) = lower($1)`,
		strings.TrimSpace(email),
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`,
		strings.TrimSpace(email),
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, u user.User) (user.User, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE users
		 SET name = $2, pronouns = $3, bio = $4, location = $5, availability = $6,
		     learning_style = $7, skills_to_offer = $8, skills_to_learn = $9, image_url = $10
		 WHERE id = $1`,
		u.ID, u.Name, u.Pronouns, u.Bio, u.Location, u.Availability,
		u.LearningStyle, nonNil(u.SkillsToOffer), nonNil(u.SkillsToLearn), u.ImageURL,
	)
	if err != nil {
		return user.User{}, err
	}
	if rowsAffected == 0 {
		return user.User{}, user.ErrNotFound
	}
	return r.GetByID(ctx, u.ID)
}

func (r *PostgresUserRepository) ListExcluding(ctx context.Context, id int64) ([]user.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.id <> $1 ORDER BY u.id ASC`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Pronouns, &u.Bio, &u.Location,
		&u.Availability, &u.LearningStyle, &u.SkillsToOffer, &u.SkillsToLearn, &u.ImageURL,
		&u.AverageRating, &u.CreatedAt,
	)
	if err != nil {
		if dbpostgres.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.SkillsToOffer = nonNil(u.SkillsToOffer)
	u.SkillsToLearn = nonNil(u.SkillsToLearn)
	return u, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

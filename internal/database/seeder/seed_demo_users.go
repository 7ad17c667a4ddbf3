package seeder

import (
	"context"
	"fmt"

	"skill-exchange/internal/database"

	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the login password of every seeded demo account.
const DemoPassword = "exchange-demo"

type demoUser struct {
	Name          string
	Email         string
	Location      string
	SkillsToOffer []string
	SkillsToLearn []string
}

// DemoUsers are chosen so every account has a reciprocal partner in exact mode.
var DemoUsers = []demoUser{
	{Name: "Ana Ruiz", Email: "ana@demo.skill-exchange.local", Location: "Madrid",
		SkillsToOffer: []string{"Spanish", "Salsa"}, SkillsToLearn: []string{"Guitar", "Python"}},
	{Name: "Ben Okafor", Email: "ben@demo.skill-exchange.local", Location: "Lagos",
		SkillsToOffer: []string{"Guitar", "Photography"}, SkillsToLearn: []string{"Spanish"}},
	{Name: "Chen Wei", Email: "chen@demo.skill-exchange.local", Location: "Taipei",
		SkillsToOffer: []string{"Python", "Mandarin"}, SkillsToLearn: []string{"Salsa", "Hiking"}},
	{Name: "Dana Levi", Email: "dana@demo.skill-exchange.local", Location: "Haifa",
		SkillsToOffer: []string{"Hiking", "Baking"}, SkillsToLearn: []string{"Python", "Photography"}},
}

type DemoUsersSeeder struct{}

func (DemoUsersSeeder) Name() string { return "demo_users" }

func (DemoUsersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "name", "email", "password_hash", "location", "skills_to_offer", "skills_to_learn"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, u := range DemoUsers {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO users (name, email, password_hash, location, skills_to_offer, skills_to_learn)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT ((lower(email))) DO NOTHING`,
			u.Name,
			u.Email,
			string(hash),
			u.Location,
			u.SkillsToOffer,
			u.SkillsToLearn,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

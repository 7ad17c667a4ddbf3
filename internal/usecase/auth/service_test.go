package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"skill-exchange/internal/domain/user"
	"skill-exchange/internal/pkg/jwt"
	"skill-exchange/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *memory.Store, *jwt.HMACService) {
	store := memory.NewStore()
	tokens := jwt.NewHMACService("test-secret", time.Hour)
	return NewService(store.Users(), tokens), store, tokens
}

func TestSignup_CreatesUserAndToken(t *testing.T) {
	svc, _, tokens := newTestService()
	offer := []string{"Python"}

	sess, err := svc.Signup(context.Background(), SignupInput{
		Name:     " Ana ",
		Email:    " Ana@Example.test ",
		Password: "correct-horse",
		Profile:  user.ProfileUpdate{SkillsToOffer: &offer},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", sess.User.Name)
	assert.Equal(t, "ana@example.test", sess.User.Email)
	assert.Equal(t, []string{"Python"}, sess.User.SkillsToOffer)
	assert.Empty(t, sess.User.PasswordHash)

	claims, err := tokens.ValidateToken(sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, claims.UserID)
}

func TestSignup_Validation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	cases := []SignupInput{
		{Email: "a@b.c", Password: "long-enough"},
		{Name: "A", Password: "long-enough"},
		{Name: "A", Email: "a@b.c", Password: "short"},
	}
	for _, in := range cases {
		_, err := svc.Signup(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Name: "A", Email: "a@b.c", Password: "long-enough"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupInput{Name: "B", Email: "A@B.C", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestLogin(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Signup(ctx, SignupInput{Name: "A", Email: "a@b.c", Password: "long-enough"})
	require.NoError(t, err)

	sess, err := svc.Login(ctx, LoginInput{Email: "A@b.c", Password: "long-enough"})
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, sess.User.ID)
	assert.NotEmpty(t, sess.AccessToken)

	_, err = svc.Login(ctx, LoginInput{Email: "a@b.c", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@b.c", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	store.Err = errors.New("db down")
	_, err = svc.Login(ctx, LoginInput{Email: "a@b.c", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrInternal)
}

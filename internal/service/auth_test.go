package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/exposuite/exposuite/internal/domain"
	"github.com/exposuite/exposuite/internal/repository"
)

type fakeUserRepo struct {
	byEmail map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return domain.User{}, repository.ErrUserEmailExists
	}
	user.ID = uint(len(f.byEmail) + 1)
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func TestSignupHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	created, err := svc.Signup(context.Background(), domain.User{
		Email:    "jane@example.com",
		Password: "secret1234",
		Name:     "Jane",
		Role:     domain.RoleExhibitor,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secret1234", created.Password)

	stored := repo.byEmail["jane@example.com"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1234")))
}

func TestSignupRejectsExistingEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	ctx := context.Background()

	_, err := svc.Signup(ctx, domain.User{Email: "jane@example.com", Password: "secret1234", Name: "Jane", Role: domain.RoleExhibitor})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, domain.User{Email: "jane@example.com", Password: "other5678", Name: "Janet", Role: domain.RoleExhibitor})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	ctx := context.Background()

	_, err := svc.Signup(ctx, domain.User{Email: "jane@example.com", Password: "secret1234", Name: "Jane", Role: domain.RoleExhibitor})
	require.NoError(t, err)

	user, err := svc.Login(ctx, "jane@example.com", "secret1234")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)

	_, err = svc.Login(ctx, "jane@example.com", "wrongpass1")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, "nobody@example.com", "secret1234")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

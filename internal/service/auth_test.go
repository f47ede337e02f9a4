package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository"
)

type mockAuthUserRepo struct {
	createFunc      func(ctx context.Context, user domain.User) (domain.User, error)
	findByEmailFunc func(ctx context.Context, email string) (domain.User, error)
}

func (m *mockAuthUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return domain.User{}, errNotImplemented
}

func (m *mockAuthUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return domain.User{}, errNotImplemented
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("hashes the password before storing", func(t *testing.T) {
		var stored domain.User
		repo := &mockAuthUserRepo{
			createFunc: func(_ context.Context, u domain.User) (domain.User, error) {
				stored = u
				u.ID = 1
				return u, nil
			},
		}
		svc := NewAuthService(repo)

		created, err := svc.Signup(context.Background(), domain.User{
			Email:    "delegate@example.com",
			Password: "password1",
			Name:     "Test Delegate",
		})

		require.NoError(t, err)
		assert.Equal(t, uint(1), created.ID)
		assert.NotEqual(t, "password1", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password1")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &mockAuthUserRepo{
			createFunc: func(_ context.Context, _ domain.User) (domain.User, error) {
				return domain.User{}, repository.ErrUserEmailExists
			},
		}
		svc := NewAuthService(repo)

		_, err := svc.Signup(context.Background(), domain.User{Email: "dup@example.com", Password: "password1"})

		assert.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockAuthUserRepo{
		findByEmailFunc: func(_ context.Context, email string) (domain.User, error) {
			if email != "delegate@example.com" {
				return domain.User{}, repository.ErrUserNotFound
			}
			return domain.User{ID: 1, Email: email, Password: string(hash)}, nil
		},
	}
	svc := NewAuthService(repo)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "delegate@example.com", "password1")

		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "delegate@example.com", "password2")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@example.com", "password1")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"snowrent/internal/domain"
	apperrors "snowrent/internal/errors"
)

type mockRepository struct {
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc      func(ctx context.Context, u *domain.User) error
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockRepository) Create(ctx context.Context, u *domain.User) error {
	return m.CreateFunc(ctx, u)
}

func newTestService(repo Repository) Service {
	return NewService(repo, testTokens(issuedAt), NewPasswordHasher(bcrypt.MinCost), zap.NewNop())
}

func TestRegister_Success(t *testing.T) {
	var stored *domain.User
	repo := &mockRepository{CreateFunc: func(_ context.Context, u *domain.User) error {
		u.ID = 3
		stored = u
		return nil
	}}

	resp, err := newTestService(repo).Register(context.Background(), RegisterRequest{
		Username: " hana ",
		Email:    "Hana@Example.com",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, UserDTO{ID: 3, Username: "hana", Email: "hana@example.com"}, resp.User)
	assert.NotEmpty(t, resp.Token)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
}

func TestRegister_Invalid(t *testing.T) {
	repo := &mockRepository{CreateFunc: func(context.Context, *domain.User) error {
		t.Fatal("create must not be called")
		return nil
	}}

	_, err := newTestService(repo).Register(context.Background(), RegisterRequest{
		Username: "ab",
		Email:    "not-an-email",
		Password: "123",
	})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	fields := []string{}
	for _, d := range ve.Details {
		fields = append(fields, d.Field)
	}
	assert.Equal(t, []string{"username", "email", "password"}, fields)
}

func TestRegister_Duplicate(t *testing.T) {
	repo := &mockRepository{CreateFunc: func(context.Context, *domain.User) error {
		return apperrors.NewConflictError("username or email already registered")
	}}

	_, err := newTestService(repo).Register(context.Background(), RegisterRequest{
		Username: "hana", Email: "hana@example.com", Password: "secret1",
	})

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestRegister_RepositoryFailure(t *testing.T) {
	repo := &mockRepository{CreateFunc: func(context.Context, *domain.User) error {
		return errors.New("connection reset")
	}}

	_, err := newTestService(repo).Register(context.Background(), RegisterRequest{
		Username: "hana", Email: "hana@example.com", Password: "secret1",
	})

	var ie *apperrors.InternalError
	assert.ErrorAs(t, err, &ie)
}

func TestLogin(t *testing.T) {
	hash, err := NewPasswordHasher(bcrypt.MinCost).Hash("secret1")
	require.NoError(t, err)

	repo := &mockRepository{FindByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
		if email != "hana@example.com" {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return &domain.User{ID: 3, Username: "hana", Email: email, PasswordHash: hash}, nil
	}}
	svc := newTestService(repo)

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), LoginRequest{Email: "HANA@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, uint(3), resp.User.ID)

		claims, err := testTokens(issuedAt).Validate(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, uint(3), claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginRequest{Email: "hana@example.com", Password: "nope"})
		_, ok := apperrors.IsUnauthorizedError(err)
		assert.True(t, ok)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "secret1"})
		_, ok := apperrors.IsUnauthorizedError(err)
		assert.True(t, ok)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginRequest{Email: "hana@example.com"})
		_, ok := apperrors.IsValidationError(err)
		assert.True(t, ok)
	})
}

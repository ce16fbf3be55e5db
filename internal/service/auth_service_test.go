package service

import (
	"context"
	"testing"
	"time"

	"quill/internal/middleware"
	"quill/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-that-is-at-least-32-chars"

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	listFn       func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func TestAuthService_Signup(t *testing.T) {
	var stored *models.User
	repo := &userRepoStub{createFn: func(_ context.Context, u *models.User) error {
		u.ID = 3
		stored = u
		return nil
	}}
	svc := NewAuthService(repo, nil, testSecret)

	res, err := svc.Signup(context.Background(), SignupInput{
		Username: " writer ",
		Email:    "Writer@Example.com",
		Password: "Str0ng!Passw0rd",
	})
	require.NoError(t, err)
	assert.Equal(t, "writer", stored.Username)
	assert.Equal(t, "writer@example.com", stored.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("Str0ng!Passw0rd")))

	claims, err := middleware.ParseToken(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)
}

func TestAuthService_SignupValidation(t *testing.T) {
	repo := &userRepoStub{createFn: func(_ context.Context, _ *models.User) error {
		t.Fatal("create must not be called for invalid input")
		return nil
	}}
	svc := NewAuthService(repo, nil, testSecret)

	cases := []SignupInput{
		{Username: "x", Email: "a@example.com", Password: "Str0ng!Passw0rd"},
		{Username: "writer", Email: "not-an-email", Password: "Str0ng!Passw0rd"},
		{Username: "writer", Email: "a@example.com", Password: "weak"},
	}
	for _, in := range cases {
		_, err := svc.Signup(context.Background(), in)
		assert.True(t, models.IsCode(err, models.CodeValidation), "input %+v", in)
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Str0ng!Passw0rd"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &userRepoStub{getByEmailFn: func(_ context.Context, email string) (*models.User, error) {
		if email != "writer@example.com" {
			return nil, models.NewNotFoundError("User", email)
		}
		return &models.User{ID: 3, Email: email, Password: string(hash)}, nil
	}}
	svc := NewAuthService(repo, nil, testSecret)

	res, err := svc.Login(context.Background(), LoginInput{Email: "WRITER@example.com", Password: "Str0ng!Passw0rd"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Login(context.Background(), LoginInput{Email: "writer@example.com", Password: "wrong"})
	assert.True(t, models.IsCode(err, models.CodeUnauthorized))

	_, err = svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "Str0ng!Passw0rd"})
	assert.True(t, models.IsCode(err, models.CodeUnauthorized))
}

func TestAuthService_LogoutRevokesUntilExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	svc := NewAuthService(&userRepoStub{}, rdb, testSecret)
	ctx := context.Background()

	claims := middleware.TokenClaims{UserID: 3, JTI: "abc", ExpiresAt: time.Now().Add(time.Hour)}
	revoked, err := svc.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.Logout(ctx, claims))
	revoked, err = svc.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Hour)
	revoked, err = svc.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestAuthService_WithoutRedis(t *testing.T) {
	svc := NewAuthService(&userRepoStub{}, nil, testSecret)

	revoked, err := svc.IsRevoked(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	err = svc.Logout(context.Background(), middleware.TokenClaims{JTI: "abc", ExpiresAt: time.Now().Add(time.Hour)})
	assert.True(t, models.IsCode(err, models.CodeInternal))
}

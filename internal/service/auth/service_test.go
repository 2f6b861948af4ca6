package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"kabar/internal/config"
	"kabar/internal/domain"
	"kabar/internal/service/auth"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) AssignRole(ctx context.Context, userID, roleID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, roleID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.User, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

type mockRoleRepository struct {
	mock.Mock
}

func (m *mockRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *mockRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *mockRoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *mockRoleRepository) Update(ctx context.Context, role *domain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *mockRoleRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Role), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	memberRole := &domain.Role{ID: uuid.New(), Name: "member"}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		roleRepo := new(mockRoleRepository)
		svc := auth.NewService(userRepo, roleRepo, testConfig())

		userRepo.On("ExistsByEmail", ctx, "ana@example.com").Return(false, nil).Once()
		roleRepo.On("GetByName", ctx, "member").Return(memberRole, nil).Once()
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "ana@example.com" && u.RoleID == memberRole.ID && u.IsActive
		})).Return(nil).Once()

		user, tokens, err := svc.Register(ctx, domain.CreateUserInput{
			Email:    "ana@example.com",
			Password: "correct-horse",
			FullName: "Ana Wijaya",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.NotEqual(t, "correct-horse", user.PasswordHash)
		userRepo.AssertExpectations(t)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		roleRepo := new(mockRoleRepository)
		svc := auth.NewService(userRepo, roleRepo, testConfig())

		userRepo.On("ExistsByEmail", ctx, "ana@example.com").Return(true, nil).Once()

		_, _, err := svc.Register(ctx, domain.CreateUserInput{
			Email:    "ana@example.com",
			Password: "correct-horse",
			FullName: "Ana Wijaya",
		})

		assert.ErrorIs(t, err, auth.ErrEmailExists)
	})

	t.Run("Weak Password", func(t *testing.T) {
		svc := auth.NewService(new(mockUserRepository), new(mockRoleRepository), testConfig())

		_, _, err := svc.Register(ctx, domain.CreateUserInput{
			Email:    "ana@example.com",
			Password: "short",
			FullName: "Ana Wijaya",
		})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	activeUser := &domain.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}

	t.Run("Success And Token Round Trip", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := auth.NewService(userRepo, new(mockRoleRepository), testConfig())

		userRepo.On("GetByEmail", ctx, "ana@example.com").Return(activeUser, nil).Once()

		_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: "ana@example.com", Password: "correct-horse"})
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, activeUser.ID, claims.UserID)

		// The refresh token is not an access token.
		_, err = svc.ValidateAccessToken(tokens.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := auth.NewService(userRepo, new(mockRoleRepository), testConfig())

		userRepo.On("GetByEmail", ctx, "ana@example.com").Return(activeUser, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "ana@example.com", Password: "wrong"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Inactive Account", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := auth.NewService(userRepo, new(mockRoleRepository), testConfig())

		inactive := *activeUser
		inactive.IsActive = false
		userRepo.On("GetByEmail", ctx, "ana@example.com").Return(&inactive, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "ana@example.com", Password: "correct-horse"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "ana@example.com", IsActive: true}

	t.Run("Rotates Pair", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := auth.NewService(userRepo, new(mockRoleRepository), testConfig())

		hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
		stored := *user
		stored.PasswordHash = string(hash)
		userRepo.On("GetByEmail", ctx, user.Email).Return(&stored, nil).Once()
		userRepo.On("GetByID", ctx, user.ID).Return(&stored, nil).Once()

		_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-horse"})
		require.NoError(t, err)

		rotated, err := svc.RefreshToken(ctx, tokens.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, rotated.AccessToken)
	})

	t.Run("Rejects Garbage", func(t *testing.T) {
		svc := auth.NewService(new(mockUserRepository), new(mockRoleRepository), testConfig())

		_, err := svc.RefreshToken(ctx, "not.a.token")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

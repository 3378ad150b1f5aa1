package auth

import (
	"context"
	"testing"

	"mms/internal/domain"
	"mms/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(hash)
}

func TestRegister_DefaultsToTechnician(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	svc := NewService(users, tokens)

	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	u, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "New Tech",
		Email:    " Tech@MMS.local ",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleTechnician, u.Role)
	assert.Equal(t, "tech@mms.local", u.Email)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "secret123", u.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	svc := NewService(users, tokens)

	users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateEmail)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "New Tech",
		Email:    "tech@mms.local",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLogin_Succeeds(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	svc := NewService(users, tokens)

	users.On("GetByEmail", mock.Anything, "tech@mms.local").Return(&domain.User{
		ID:           1,
		Email:        "tech@mms.local",
		PasswordHash: hashOf(t, "secret123"),
		Role:         domain.RoleTechnician,
		IsActive:     true,
	}, nil)
	tokens.On("GenerateToken", int64(1), string(domain.RoleTechnician)).Return("token-abc", nil)

	out, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Tech@MMS.local",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-abc", out.Token)
	assert.Equal(t, int64(1), out.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	svc := NewService(users, tokens)

	users.On("GetByEmail", mock.Anything, "tech@mms.local").Return(&domain.User{
		ID:           1,
		PasswordHash: hashOf(t, "secret123"),
		IsActive:     true,
	}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "tech@mms.local",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	tokens.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmailIndistinguishable(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	svc := NewService(users, tokens)

	users.On("GetByEmail", mock.Anything, "nobody@mms.local").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@mms.local",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	svc := NewService(users, tokens)

	users.On("GetByEmail", mock.Anything, "tech@mms.local").Return(&domain.User{
		ID:           1,
		PasswordHash: hashOf(t, "secret123"),
		IsActive:     false,
	}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "tech@mms.local",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrUserInactive)
}

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository/mocks"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/service"
)

func newAuthService(t *testing.T, userRepo *mocks.UserRepository, profileRepo *mocks.ProfileRepository) *service.AuthService {
	t.Helper()
	svc, err := service.NewAuthService(userRepo, profileRepo, "test-secret", 24)
	require.NoError(t, err)
	return svc
}

func TestAuthService_Register_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	mockProfileRepo := new(mocks.ProfileRepository)
	authService := newAuthService(t, mockUserRepo, mockProfileRepo)

	ctx := context.Background()
	username := "newbie"
	password := "StrongPass123"
	email := "newbie@example.com"

	mockUserRepo.On("Save", ctx, mock.MatchedBy(func(user *domain.User) bool {
		assert.Equal(t, username, user.Username)
		assert.Equal(t, email, user.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)))
		return true
	})).
		Run(func(args mock.Arguments) {
			userArg := args.Get(1).(*domain.User)
			userArg.ID = 5
			userArg.CreatedAt = time.Now().Add(-time.Second)
		}).
		Return(nil).
		Once()

	// A profile must be created for the new user in the same call.
	mockProfileRepo.On("Save", ctx, mock.MatchedBy(func(profile *domain.Profile) bool {
		assert.Equal(t, uint(5), profile.UserID)
		assert.Equal(t, domain.VisibilityPublic, profile.ProfileVisibility)
		assert.Equal(t, "UTC", profile.Timezone)
		assert.True(t, profile.NotifyOnReply)
		assert.True(t, profile.ReceiveNewsletter)
		return true
	})).Return(nil).Once()

	// Act
	registeredUser, err := authService.Register(ctx, username, password, email)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, registeredUser)
	assert.Equal(t, uint(5), registeredUser.ID)
	assert.Equal(t, username, registeredUser.Username)
	assert.Empty(t, registeredUser.Password, "password hash must not leak out of the service")

	mockUserRepo.AssertExpectations(t)
	mockProfileRepo.AssertExpectations(t)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	mockProfileRepo := new(mocks.ProfileRepository)
	authService := newAuthService(t, mockUserRepo, mockProfileRepo)
	ctx := context.Background()

	mockUserRepo.On("Save", ctx, mock.AnythingOfType("*domain.User")).
		Return(repository.ErrDuplicateEntry).Once()

	// Act
	_, err := authService.Register(ctx, "existingUser", "password", "email@test.com")

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrRegistrationFailed))

	mockUserRepo.AssertExpectations(t)
	mockProfileRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Register_MissingCredentials(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockProfileRepo := new(mocks.ProfileRepository)
	authService := newAuthService(t, mockUserRepo, mockProfileRepo)

	_, err := authService.Register(context.Background(), "", "", "a@b.c")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidInput))
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	mockProfileRepo := new(mocks.ProfileRepository)
	authService := newAuthService(t, mockUserRepo, mockProfileRepo)
	ctx := context.Background()
	username := "testuser"
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userInDb := &domain.User{ID: 1, Username: username, Password: string(hashedPassword)}

	mockUserRepo.On("FindByUsername", ctx, username).Return(userInDb, nil).Once()

	// Act
	token, err := authService.Login(ctx, username, password)

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockProfileRepo := new(mocks.ProfileRepository)
	authService := newAuthService(t, mockUserRepo, mockProfileRepo)
	ctx := context.Background()

	mockUserRepo.On("FindByUsername", ctx, "nonexistent").
		Return(nil, repository.ErrUserNotFound).Once()

	token, err := authService.Login(ctx, "nonexistent", "password")

	require.Error(t, err)
	assert.Empty(t, token)
	assert.True(t, errors.Is(err, service.ErrAuthenticationFailed))
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Login_IncorrectPassword(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockProfileRepo := new(mocks.ProfileRepository)
	authService := newAuthService(t, mockUserRepo, mockProfileRepo)
	ctx := context.Background()
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	userInDb := &domain.User{ID: 1, Username: "testuser", Password: string(hashedPassword)}

	mockUserRepo.On("FindByUsername", ctx, "testuser").Return(userInDb, nil).Once()

	token, err := authService.Login(ctx, "testuser", "wrong")

	require.Error(t, err)
	assert.Empty(t, token)
	assert.True(t, errors.Is(err, service.ErrAuthenticationFailed))
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_ViewerFor(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockProfileRepo := new(mocks.ProfileRepository)
	authService := newAuthService(t, mockUserRepo, mockProfileRepo)
	ctx := context.Background()

	mockUserRepo.On("FindByID", ctx, uint(7)).
		Return(&domain.User{ID: 7, Username: "mod", IsStaff: true}, nil).Once()

	viewer, err := authService.ViewerFor(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, uint(7), viewer.UserID)
	assert.True(t, viewer.Authenticated)
	assert.True(t, viewer.IsStaff)
	assert.False(t, viewer.IsSuperuser)
	mockUserRepo.AssertExpectations(t)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrudenko/calendar-keeper/internal/config"
	"github.com/vrudenko/calendar-keeper/internal/logger"
	"github.com/vrudenko/calendar-keeper/internal/mock"
	"github.com/vrudenko/calendar-keeper/internal/store"
	"github.com/vrudenko/calendar-keeper/internal/validators"
	"github.com/vrudenko/calendar-keeper/models"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

// newTestAuthSvc builds an authService backed by a mocked UserRepository.
// bcrypt.MinCost keeps the hashing tests fast.
func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository) {
	t.Helper()
	mockUsers := mock.NewMockUserRepository(ctrl)

	cfg := config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "calendar-keeper-test",
		TokenDuration: time.Hour,
		BcryptCost:    bcrypt.MinCost,
	}

	svc := NewAuthService(mockUsers, cfg, logger.Nop()).(*authService)

	return svc, mockUsers
}

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		FirstName:   "John",
		LastName:    "Doe",
		Username:    "johndoe",
		Email:       "john@example.com",
		PhoneNumber: "5551234567",
		Password:    "secret-password",
	}
}

// ── RegisterUser ─────────────────────────────────────────────────────────────

func TestAuthService_RegisterUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	request := validRegisterRequest()

	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, request.FirstName, u.FirstName)
			assert.Equal(t, request.LastName, u.LastName)
			assert.Equal(t, request.Username, u.Username)
			assert.Equal(t, request.Email, u.Email)
			assert.Equal(t, request.PhoneNumber, u.PhoneNumber)
			// only the bcrypt hash may reach the repository
			assert.NotEqual(t, request.Password, u.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(request.Password)))

			u.UserID = 10
			return u, nil
		},
	)

	registered, err := svc.RegisterUser(ctx, request)
	require.NoError(t, err)
	assert.Equal(t, int64(10), registered.UserID)
	assert.Equal(t, request.Username, registered.Username)
}

func TestAuthService_RegisterUser_ValidationFailsBeforeStorage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	request := validRegisterRequest()
	request.Username = "abc"

	_, err := svc.RegisterUser(ctx, request)
	require.Error(t, err)
	assert.ErrorIs(t, err, validators.ErrUsernameTooShort)
}

func TestAuthService_RegisterUser_FirstViolatedRuleWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	request := validRegisterRequest()
	request.FirstName = ""
	request.Password = "short"

	_, err := svc.RegisterUser(ctx, request)
	require.Error(t, err)
	assert.ErrorIs(t, err, validators.ErrFirstNameRequired)
	assert.Equal(t, "First name is required", err.Error())
}

func TestAuthService_RegisterUser_DuplicateLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrUsernameOrEmailTaken)

	_, err := svc.RegisterUser(ctx, validRegisterRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrUsernameOrEmailTaken)
}

func TestAuthService_RegisterUser_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, errors.New("connection reset"))

	_, err := svc.RegisterUser(ctx, validRegisterRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user creation ended with error")
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := models.User{
		UserID:       42,
		Username:     "johndoe",
		Email:        "john@example.com",
		PasswordHash: string(hash),
	}

	mockUsers.EXPECT().FindUserByLogin(ctx, "johndoe").Return(storedUser, nil)

	foundUser, err := svc.Login(ctx, models.Credentials{Username: "johndoe", Password: "secret-password"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), foundUser.UserID)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByLogin(ctx, "ghost").Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Login(ctx, models.Credentials{Username: "ghost", Password: "whatever"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	mockUsers.EXPECT().FindUserByLogin(ctx, "johndoe").
		Return(models.User{UserID: 42, PasswordHash: string(hash)}, nil)

	_, err = svc.Login(ctx, models.Credentials{Username: "johndoe", Password: "wrong-password"})
	require.Error(t, err)

	// wrong password and unknown account must be indistinguishable
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_BlankCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.Login(ctx, models.Credentials{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.Credentials{Username: "johndoe"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByLogin(ctx, "johndoe").Return(models.User{}, errors.New("connection reset"))

	_, err := svc.Login(ctx, models.Credentials{Username: "johndoe", Password: "secret-password"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "user search by login failed")
}

// ── Tokens ───────────────────────────────────────────────────────────────────

func TestAuthService_CreateToken_ParseToken_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 42})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.ParseToken(ctx, "not.a.token")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_WrongIssuer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	otherCfg := config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "some-other-service",
		TokenDuration: time.Hour,
	}
	other := NewAuthService(mock.NewMockUserRepository(ctrl), otherCfg, logger.Nop())

	token, err := other.CreateToken(ctx, models.User{UserID: 42})
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, token.SignedString)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	expiredCfg := config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "calendar-keeper-test",
		TokenDuration: -time.Minute,
	}
	expired := NewAuthService(mock.NewMockUserRepository(ctrl), expiredCfg, logger.Nop())

	token, err := expired.CreateToken(ctx, models.User{UserID: 42})
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, token.SignedString)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

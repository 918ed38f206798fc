package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/AryanYadav09/Ecommerce/models"
	"github.com/AryanYadav09/Ecommerce/sender"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockPendingSignupRepository struct{ mock.Mock }

func (m *MockPendingSignupRepository) Save(ctx context.Context, signup *models.PendingSignup, ttl time.Duration) error {
	args := m.Called(ctx, signup, ttl)
	return args.Error(0)
}
func (m *MockPendingSignupRepository) Find(ctx context.Context, email string) (*models.PendingSignup, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingSignup), args.Error(1)
}
func (m *MockPendingSignupRepository) Delete(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// recordingEmailSender captures outbound mail so tests can read the OTP back.
type recordingEmailSender struct {
	to      string
	subject string
	body    string
	err     error
}

func (r *recordingEmailSender) SendEmail(ctx context.Context, to, subject, body string) (sender.SendResult, error) {
	r.to, r.subject, r.body = to, subject, body
	if r.err != nil {
		return sender.SendResult{}, r.err
	}
	return sender.SendResult{MessageID: "test", SentAt: time.Now()}, nil
}

var otpPattern = regexp.MustCompile(`\d{6}`)

type userServiceFixture struct {
	users   *MockUserRepository
	signups *MockPendingSignupRepository
	mail    *recordingEmailSender
	tokens  *TokenService
	service UserService
}

func newUserServiceFixture() *userServiceFixture {
	f := &userServiceFixture{
		users:   new(MockUserRepository),
		signups: new(MockPendingSignupRepository),
		mail:    &recordingEmailSender{},
		tokens:  NewTokenService("test-secret"),
	}
	f.service = NewUserService(
		f.users, f.signups, f.tokens, f.mail,
		"admin@example.com", "admin-password",
		zap.NewNop(),
	)
	return f
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	password := "strongpassword123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Asha",
		Email:        "asha@example.com",
		PasswordHash: string(hash),
	}

	t.Run("Success", func(t *testing.T) {
		f := newUserServiceFixture()
		f.users.On("FindByEmail", ctx, "asha@example.com").Return(user, nil)

		token, serr := f.service.Login(ctx, "Asha@Example.com", password)

		assert.Nil(t, serr)
		claims, err := f.tokens.ValidateToken(token, "user")
		assert.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims["id"])
	})

	t.Run("WrongPassword", func(t *testing.T) {
		f := newUserServiceFixture()
		f.users.On("FindByEmail", ctx, "asha@example.com").Return(user, nil)

		_, serr := f.service.Login(ctx, "asha@example.com", "wrong-password")

		assert.Equal(t, 401, serr.StatusCode)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		f := newUserServiceFixture()
		f.users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, errors.New("record not found"))

		_, serr := f.service.Login(ctx, "nobody@example.com", password)

		assert.Equal(t, 404, serr.StatusCode)
	})
}

func TestRegisterOTPFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("SendThenVerify", func(t *testing.T) {
		f := newUserServiceFixture()

		var saved *models.PendingSignup
		f.users.On("FindByEmail", ctx, "new@example.com").Return(nil, errors.New("record not found"))
		f.signups.On("Save", ctx, mock.AnythingOfType("*models.PendingSignup"), OTPExpiryMinutes*time.Minute).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*models.PendingSignup) }).
			Return(nil)

		serr := f.service.SendRegisterOTP(ctx, "New User", "New@Example.com", "longenoughpw")
		assert.Nil(t, serr)
		assert.Equal(t, "new@example.com", f.mail.to)

		otp := otpPattern.FindString(f.mail.body)
		assert.Len(t, otp, 6)
		assert.Equal(t, HashOTP(otp), saved.OTPHash)

		f.signups.On("Find", ctx, "new@example.com").Return(saved, nil)
		f.signups.On("Delete", ctx, "new@example.com").Return(nil)
		f.users.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)

		token, serr := f.service.VerifyRegisterOTP(ctx, "new@example.com", otp)
		assert.Nil(t, serr)

		claims, err := f.tokens.ValidateToken(token, "user")
		assert.NoError(t, err)
		assert.NotEmpty(t, claims["id"])
		f.signups.AssertCalled(t, "Delete", ctx, "new@example.com")
	})

	t.Run("ExistingEmailRejected", func(t *testing.T) {
		f := newUserServiceFixture()
		f.users.On("FindByEmail", ctx, "taken@example.com").Return(&models.User{ID: uuid.New()}, nil)

		serr := f.service.SendRegisterOTP(ctx, "Someone", "taken@example.com", "longenoughpw")

		assert.Equal(t, 409, serr.StatusCode)
		f.signups.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ShortPasswordRejected", func(t *testing.T) {
		f := newUserServiceFixture()

		serr := f.service.SendRegisterOTP(ctx, "Someone", "a@example.com", "short")

		assert.Equal(t, 400, serr.StatusCode)
	})

	t.Run("WrongOTP", func(t *testing.T) {
		f := newUserServiceFixture()
		signup := &models.PendingSignup{
			Name:      "New User",
			Email:     "new@example.com",
			OTPHash:   HashOTP("123456"),
			ExpiresAt: time.Now().Add(5 * time.Minute),
		}
		f.signups.On("Find", ctx, "new@example.com").Return(signup, nil)

		_, serr := f.service.VerifyRegisterOTP(ctx, "new@example.com", "654321")

		assert.Equal(t, 401, serr.StatusCode)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ExpiredOTP", func(t *testing.T) {
		f := newUserServiceFixture()
		signup := &models.PendingSignup{
			Name:      "New User",
			Email:     "new@example.com",
			OTPHash:   HashOTP("123456"),
			ExpiresAt: time.Now().Add(-time.Minute),
		}
		f.signups.On("Find", ctx, "new@example.com").Return(signup, nil)

		_, serr := f.service.VerifyRegisterOTP(ctx, "new@example.com", "123456")

		assert.Equal(t, 410, serr.StatusCode)
	})

	t.Run("MissingSignup", func(t *testing.T) {
		f := newUserServiceFixture()
		f.signups.On("Find", ctx, "new@example.com").Return(nil, nil)

		_, serr := f.service.VerifyRegisterOTP(ctx, "new@example.com", "123456")

		assert.Equal(t, 410, serr.StatusCode)
	})
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newUserServiceFixture()

		token, serr := f.service.AdminLogin(ctx, "Admin@Example.com", "admin-password")

		assert.Nil(t, serr)
		claims, err := f.tokens.ValidateToken(token, "admin")
		assert.NoError(t, err)
		assert.Equal(t, "admin@example.com", claims["email"])
	})

	t.Run("WrongCredentials", func(t *testing.T) {
		f := newUserServiceFixture()

		_, serr := f.service.AdminLogin(ctx, "admin@example.com", "nope")

		assert.Equal(t, 401, serr.StatusCode)
	})
}

func TestToggleWishlist(t *testing.T) {
	ctx := context.Background()
	userUUID := uuid.New()
	userID := userUUID.String()

	t.Run("AddThenRemove", func(t *testing.T) {
		f := newUserServiceFixture()
		user := &models.User{ID: userUUID, Wishlist: []string{"prod-1"}}

		f.users.On("FindByID", ctx, userUUID).Return(user, nil)
		f.users.On("Update", ctx, user).Return(nil)

		wishlist, wishlisted, serr := f.service.ToggleWishlist(ctx, userID, "prod-2")
		assert.Nil(t, serr)
		assert.True(t, wishlisted)
		assert.ElementsMatch(t, []string{"prod-1", "prod-2"}, wishlist)

		wishlist, wishlisted, serr = f.service.ToggleWishlist(ctx, userID, "prod-2")
		assert.Nil(t, serr)
		assert.False(t, wishlisted)
		assert.ElementsMatch(t, []string{"prod-1"}, wishlist)
	})

	t.Run("EmptyProductID", func(t *testing.T) {
		f := newUserServiceFixture()

		_, _, serr := f.service.ToggleWishlist(ctx, userID, "")

		assert.Equal(t, 400, serr.StatusCode)
	})
}

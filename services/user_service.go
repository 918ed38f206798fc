package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/AryanYadav09/Ecommerce/models"
	"github.com/AryanYadav09/Ecommerce/repository"
	"github.com/AryanYadav09/Ecommerce/sender"
)

// UserService covers password login, OTP-based registration, the
// env-configured admin login, and the profile/wishlist reads.
type UserService interface {
	Login(ctx context.Context, email, password string) (string, *ServiceError)
	SendRegisterOTP(ctx context.Context, name, email, password string) *ServiceError
	VerifyRegisterOTP(ctx context.Context, email, otp string) (string, *ServiceError)
	AdminLogin(ctx context.Context, email, password string) (string, *ServiceError)
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, []string, *ServiceError)
	GetWishlist(ctx context.Context, userID string) ([]string, *ServiceError)
	ToggleWishlist(ctx context.Context, userID, productID string) ([]string, bool, *ServiceError)
}

type userServiceImpl struct {
	users         repository.UserRepository
	signups       repository.PendingSignupRepository
	tokens        *TokenService
	mail          sender.EmailSender
	adminEmail    string
	adminPassword string
	logger        *zap.Logger
}

func NewUserService(
	users repository.UserRepository,
	signups repository.PendingSignupRepository,
	tokens *TokenService,
	mail sender.EmailSender,
	adminEmail, adminPassword string,
	logger *zap.Logger,
) UserService {
	return &userServiceImpl{
		users:         users,
		signups:       signups,
		tokens:        tokens,
		mail:          mail,
		adminEmail:    strings.ToLower(strings.TrimSpace(adminEmail)),
		adminPassword: adminPassword,
		logger:        logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userServiceImpl) Login(ctx context.Context, email, password string) (string, *ServiceError) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", &ServiceError{StatusCode: 400, Message: "Email and password are required"}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", &ServiceError{StatusCode: 404, Message: "No account found with this email"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", &ServiceError{StatusCode: 401, Message: "Invalid credentials"}
	}

	token, err := s.tokens.GenerateUserToken(user.ID.String())
	if err != nil {
		s.logger.Error("Failed to sign token", zap.String("user_id", user.ID.String()), zap.Error(err))
		return "", &ServiceError{StatusCode: 500, Message: "Failed to log in"}
	}
	return token, nil
}

// SendRegisterOTP validates the signup, stashes the hashed credentials and a
// hashed OTP in Redis under a TTL, and mails the code.
func (s *userServiceImpl) SendRegisterOTP(ctx context.Context, name, email, password string) *ServiceError {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" {
		return &ServiceError{StatusCode: 400, Message: "Please enter your name"}
	}
	if email == "" {
		return &ServiceError{StatusCode: 400, Message: "Please enter a valid email"}
	}
	if len(password) < 8 {
		return &ServiceError{StatusCode: 400, Message: "Password must be at least 8 characters"}
	}

	if s.mail == nil {
		return &ServiceError{StatusCode: 503, Message: "Registration is temporarily unavailable"}
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return &ServiceError{StatusCode: 409, Message: "User already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to start registration"}
	}

	otp, err := GenerateOTP()
	if err != nil {
		s.logger.Error("Failed to generate OTP", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to start registration"}
	}

	ttl := OTPExpiryMinutes * time.Minute
	signup := &models.PendingSignup{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		OTPHash:      HashOTP(otp),
		ExpiresAt:    time.Now().Add(ttl),
	}
	if err := s.signups.Save(ctx, signup, ttl); err != nil {
		s.logger.Error("Failed to store pending signup", zap.String("email", email), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to start registration"}
	}

	body := fmt.Sprintf(
		"<p>Your OTP is <strong>%s</strong>.</p><p>This OTP will expire in %d minutes.</p>",
		otp, OTPExpiryMinutes,
	)
	if _, err := s.mail.SendEmail(ctx, email, "Your OTP for account verification", body); err != nil {
		s.logger.Error("Failed to send OTP email", zap.String("email", email), zap.Error(err))
		return &ServiceError{StatusCode: 502, Message: "Failed to send OTP email"}
	}
	return nil
}

// VerifyRegisterOTP checks the code against the pending signup and creates
// the account. Expired or missing entries ask the user to restart.
func (s *userServiceImpl) VerifyRegisterOTP(ctx context.Context, email, otp string) (string, *ServiceError) {
	email = normalizeEmail(email)
	otp = strings.TrimSpace(otp)

	if len(otp) != 6 {
		return "", &ServiceError{StatusCode: 400, Message: "Please enter a valid 6-digit OTP"}
	}

	signup, err := s.signups.Find(ctx, email)
	if err != nil {
		s.logger.Error("Failed to load pending signup", zap.String("email", email), zap.Error(err))
		return "", &ServiceError{StatusCode: 500, Message: "Failed to verify OTP"}
	}
	if signup == nil || time.Now().After(signup.ExpiresAt) {
		return "", &ServiceError{StatusCode: 410, Message: "OTP expired. Please request a new OTP."}
	}

	if signup.OTPHash != HashOTP(otp) {
		return "", &ServiceError{StatusCode: 401, Message: "Invalid OTP"}
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		_ = s.signups.Delete(ctx, email)
		return "", &ServiceError{StatusCode: 409, Message: "User already exists"}
	}

	user := &models.User{
		Name:         signup.Name,
		Email:        email,
		PasswordHash: signup.PasswordHash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.String("email", email), zap.Error(err))
		return "", &ServiceError{StatusCode: 500, Message: "Failed to create account"}
	}
	_ = s.signups.Delete(ctx, email)

	token, err := s.tokens.GenerateUserToken(user.ID.String())
	if err != nil {
		s.logger.Error("Failed to sign token", zap.String("user_id", user.ID.String()), zap.Error(err))
		return "", &ServiceError{StatusCode: 500, Message: "Account created, please log in"}
	}
	return token, nil
}

func (s *userServiceImpl) AdminLogin(ctx context.Context, email, password string) (string, *ServiceError) {
	email = normalizeEmail(email)
	if email != s.adminEmail || password != s.adminPassword || s.adminEmail == "" {
		return "", &ServiceError{StatusCode: 401, Message: "Invalid credentials"}
	}

	token, err := s.tokens.GenerateAdminToken(email)
	if err != nil {
		s.logger.Error("Failed to sign admin token", zap.Error(err))
		return "", &ServiceError{StatusCode: 500, Message: "Failed to log in"}
	}
	return token, nil
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*models.UserProfile, []string, *ServiceError) {
	user, serr := s.findUser(ctx, userID)
	if serr != nil {
		return nil, nil, serr
	}

	profile := &models.UserProfile{
		Name:        user.Name,
		Email:       user.Email,
		Phone:       user.Phone,
		Avatar:      user.Avatar,
		MemberSince: user.CreatedAt.UTC().Format(time.RFC3339),
	}
	return profile, user.Wishlist, nil
}

func (s *userServiceImpl) GetWishlist(ctx context.Context, userID string) ([]string, *ServiceError) {
	user, serr := s.findUser(ctx, userID)
	if serr != nil {
		return nil, serr
	}
	return user.Wishlist, nil
}

// ToggleWishlist adds the product when absent, removes it when present, and
// reports whether it ended up wishlisted.
func (s *userServiceImpl) ToggleWishlist(ctx context.Context, userID, productID string) ([]string, bool, *ServiceError) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, false, &ServiceError{StatusCode: 400, Message: "Product id is required"}
	}

	user, serr := s.findUser(ctx, userID)
	if serr != nil {
		return nil, false, serr
	}

	wishlisted := true
	wishlist := make([]string, 0, len(user.Wishlist)+1)
	for _, id := range user.Wishlist {
		if id == productID {
			wishlisted = false
			continue
		}
		wishlist = append(wishlist, id)
	}
	if wishlisted {
		wishlist = append(wishlist, productID)
	}

	user.Wishlist = wishlist
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update wishlist", zap.String("user_id", userID), zap.Error(err))
		return nil, false, &ServiceError{StatusCode: 500, Message: "Failed to update wishlist"}
	}
	return wishlist, wishlisted, nil
}

func (s *userServiceImpl) findUser(ctx context.Context, userID string) (*models.User, *ServiceError) {
	userUUID, serr := parseUserID(userID)
	if serr != nil {
		return nil, serr
	}
	user, err := s.users.FindByID(ctx, userUUID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 404, Message: "User not found"}
	}
	return user, nil
}

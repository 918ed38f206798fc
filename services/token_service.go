package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenService is responsible for creating and validating JWTs. User tokens
// carry the user id; admin tokens carry the admin role instead.
type TokenService struct {
	secretKey []byte
	userTTL   time.Duration
	adminTTL  time.Duration
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secretKey: []byte(secret),
		userTTL:   7 * 24 * time.Hour,
		adminTTL:  24 * time.Hour,
	}
}

// GenerateUserToken creates a signed token identifying a storefront user.
func (s *TokenService) GenerateUserToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"typ": "user",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.userTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// GenerateAdminToken creates a signed token for the admin panel.
func (s *TokenService) GenerateAdminToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"typ":   "admin",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.adminTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken parses and validates a token, checking its type claim.
func (s *TokenService) ValidateToken(tokenStr, expectedType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if typ, ok := claims["typ"].(string); !ok || typ != expectedType {
		return nil, fmt.Errorf("invalid token type")
	}
	return claims, nil
}

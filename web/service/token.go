package service

import (
	"time"

	"postboard/database/model"
	"postboard/util/common"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies the HS256 bearer tokens that authenticate
// API requests. Verification is stateless; resolving the token back to a
// user costs one lookup.
type TokenService struct {
	settingService SettingService
	userService    UserService
}

// Login checks credentials and returns a signed token for the user.
func (s *TokenService) Login(email string, password string) (string, *model.User, error) {
	user, err := s.userService.CheckUser(email, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.Generate(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Generate signs a token carrying the user id and expiry.
func (s *TokenService) Generate(user *model.User) (string, error) {
	secret, err := s.settingService.GetJWTSecret()
	if err != nil {
		return "", err
	}
	minutes, err := s.settingService.GetTokenExpiryMinutes()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"user_id": user.Id,
		"exp":     time.Now().Add(time.Duration(minutes) * time.Minute).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Authenticate parses and verifies a bearer token and resolves the embedded
// user id against the users table. Every failure mode collapses into the
// same unauthorized error.
func (s *TokenService) Authenticate(tokenString string) (*model.User, error) {
	secret, err := s.settingService.GetJWTSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.NewErrorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, common.ErrUnauthorized("could not validate credentials")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, common.ErrUnauthorized("could not validate credentials")
	}
	idValue, ok := claims["user_id"].(float64)
	if !ok {
		return nil, common.ErrUnauthorized("could not validate credentials")
	}

	user, err := s.userService.GetUser(int(idValue))
	if err != nil {
		// the token subject no longer exists, or the lookup failed
		return nil, common.ErrUnauthorized("could not validate credentials")
	}
	return user, nil
}

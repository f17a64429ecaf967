package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Admin and user tokens are signed with different keys so one can never be
// replayed as the other. main overrides both from config.
var (
	AdminSecret = []byte("change-me-admin")
	UserSecret  = []byte("change-me-user")
)

var ErrInvalidToken = errors.New("invalid token")

type AdminClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type UserClaims struct {
	UserID      uint     `json:"user_id"`
	Username    string   `json:"username"`
	Permissions []string `json:"perms"`
	jwt.RegisteredClaims
}

func registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func GenerateAdminToken(id uint, username string, ttl time.Duration) (string, error) {
	claims := AdminClaims{AdminID: id, Username: username, RegisteredClaims: registered("admin", ttl)}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(AdminSecret)
}

func GenerateUserToken(id uint, username string, perms []string, ttl time.Duration) (string, error) {
	claims := UserClaims{UserID: id, Username: username, Permissions: perms, RegisteredClaims: registered("user", ttl)}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(UserSecret)
}

func ParseAdminToken(raw string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	if err := parse(raw, claims, AdminSecret); err != nil {
		return nil, err
	}
	if claims.Subject != "admin" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func ParseUserToken(raw string) (*UserClaims, error) {
	claims := &UserClaims{}
	if err := parse(raw, claims, UserSecret); err != nil {
		return nil, err
	}
	if claims.Subject != "user" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func parse(raw string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

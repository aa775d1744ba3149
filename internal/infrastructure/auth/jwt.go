// Package auth signs and verifies bearer tokens and hashes passwords.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	accountUsecases "github.com/perkloop/perkloop/internal/application/account/usecases"
	"github.com/perkloop/perkloop/internal/shared/authorization"
	"github.com/perkloop/perkloop/internal/shared/biztime"
)

const (
	defaultAccessExpMinutes = 60
	defaultIssuer           = "perkloop"
)

var _ accountUsecases.TokenIssuer = (*JWTService)(nil)

type Claims struct {
	UserUUID string                 `json:"user_uuid"`
	Role     authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
	issuer           string
	clock            func() time.Time
}

func NewJWTService(secret string, accessExpMinutes int, issuer string) *JWTService {
	if accessExpMinutes <= 0 {
		accessExpMinutes = defaultAccessExpMinutes
	}
	if issuer == "" {
		issuer = defaultIssuer
	}
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		issuer:           issuer,
		clock:            biztime.NowUTC,
	}
}

// Issue signs an HS256 access token for the user.
func (s *JWTService) Issue(userUUID string, role authorization.UserRole) (*accountUsecases.IssuedToken, error) {
	now := s.clock()
	exp := now.Add(time.Duration(s.accessExpMinutes) * time.Minute)

	claims := &Claims{
		UserUUID: userUUID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userUUID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &accountUsecases.IssuedToken{
		AccessToken: signed,
		ExpiresIn:   int64(s.accessExpMinutes * 60),
	}, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.clock),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.UserUUID != "" {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// AccessExpMinutes returns the access token expiration time in minutes
func (s *JWTService) AccessExpMinutes() int {
	return s.accessExpMinutes
}

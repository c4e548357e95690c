package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell-print/inkwell/internal/shared/authorization"
)

const issuer = "inkwell"

type Claims struct {
	UserID   uint                   `json:"uid"`
	Username string                 `json:"username"`
	Role     authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret    []byte
	accessExp time.Duration
	now       func() time.Time
}

// NewJWTService creates a new JWT service signing with HS256.
func NewJWTService(secret string, accessExpMinutes int) *JWTService {
	if accessExpMinutes <= 0 {
		accessExpMinutes = 60
	}
	return &JWTService{
		secret:    []byte(secret),
		accessExp: time.Duration(accessExpMinutes) * time.Minute,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Generate signs an HS256 access token and returns it with its lifetime
// in seconds.
func (s *JWTService) Generate(userID uint, username string, role authorization.UserRole) (string, int64, error) {
	now := s.now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, int64(s.accessExp.Seconds()), nil
}

// Verify parses and validates an access token.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

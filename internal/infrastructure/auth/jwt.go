package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chroma/internal/shared/biztime"
)

type TokenType string

// TokenTypeAnonymous is the only token type this service issues. There is no
// refresh token: expired credentials are replaced by authenticating again.
const TokenTypeAnonymous TokenType = "anonymous"

type Claims struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	TokenType TokenType `json:"type"`
	jwt.RegisteredClaims
}

type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
	ExpiresIn int64
}

type JWTService struct {
	secret        []byte
	tokenExpHours int
}

func NewJWTService(secret string, tokenExpHours int) *JWTService {
	return &JWTService{
		secret:        []byte(secret),
		tokenExpHours: tokenExpHours,
	}
}

// Generate issues an anonymous bearer token bound to an identity and session.
func (s *JWTService) Generate(userID string, sessionID string) (*IssuedToken, error) {
	now := biztime.NowUTC()
	exp := now.Add(time.Duration(s.tokenExpHours) * time.Hour)

	claims := &Claims{
		UserID:    userID,
		SessionID: sessionID,
		TokenType: TokenTypeAnonymous,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &IssuedToken{
		Token:     tokenString,
		ExpiresAt: exp,
		ExpiresIn: int64(s.tokenExpHours) * 3600,
	}, nil
}

// Verify parses and validates a bearer token. Expired tokens surface
// jwt.ErrTokenExpired in the error chain so callers can distinguish them
// from malformed or forged ones.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.TokenType != TokenTypeAnonymous {
		return nil, fmt.Errorf("unexpected token type: %s", claims.TokenType)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token missing user ID")
	}

	return claims, nil
}

// TokenExpHours returns the configured token lifetime in hours
func (s *JWTService) TokenExpHours() int {
	return s.tokenExpHours
}

package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"car-blog/models"
)

const (
	RoleUser  = models.RoleUser
	RoleAdmin = models.RoleAdmin
)

// ErrInvalidCredential wraps every token verification failure.
var ErrInvalidCredential = errors.New("invalid credential")

// JWTManager issues and verifies HS256 tokens signed with a single shared secret.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewJWTManager(secret, issuer string, ttl time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if issuer == "" {
		issuer = "car-blog"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTManager{secret: []byte(secret), issuer: issuer, ttl: ttl}, nil
}

// NewJWTManagerFromEnv reads JWT_SECRET (required) from the environment.
// issuer and ttl come from configuration.
func NewJWTManagerFromEnv(issuer string, ttl time.Duration) (*JWTManager, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return NewJWTManager(secret, issuer, ttl)
}

func (m *JWTManager) TTL() time.Duration { return m.ttl }

// Sign issues a token for userID carrying role.
func (m *JWTManager) Sign(userID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iss":  m.issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies tokenString and returns its subject and role. Missing,
// malformed, forged and expired tokens all fail with ErrInvalidCredential.
func (m *JWTManager) Parse(tokenString string) (string, string, error) {
	if tokenString == "" {
		return "", "", fmt.Errorf("%w: empty token", ErrInvalidCredential)
	}

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", "", fmt.Errorf("%w: invalid token claims", ErrInvalidCredential)
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return "", "", fmt.Errorf("%w: token missing sub claim", ErrInvalidCredential)
	}

	return sub, role, nil
}

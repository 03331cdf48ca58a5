package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"car-blog/cmd/api/dto"
	"car-blog/models"
	"car-blog/repositories"
)

// UserStore persists accounts.
type UserStore interface {
	UserFinder
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// TokenIssuer signs and verifies credentials.
type TokenIssuer interface {
	TokenVerifier
	Sign(userID, role string) (string, error)
	TTL() time.Duration
}

// maxPasswordBytes is the longest input bcrypt hashes. Binding counts runes,
// so multibyte passwords are checked again here.
const maxPasswordBytes = 72

type AuthService struct {
	users      UserStore
	tokens     TokenIssuer
	bcryptCost int
}

func NewAuthService(users UserStore, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcrypt.DefaultCost}
}

// WithBcryptCost overrides the hashing cost. Tests use bcrypt.MinCost.
func (s *AuthService) WithBcryptCost(cost int) *AuthService {
	s.bcryptCost = cost
	return s
}

// TokenTTL is the lifetime of issued tokens and of the cookie carrying them.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

// Signup creates a regular account. A taken email is a conflict.
func (s *AuthService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.UserProfileDTO, error) {
	if len(req.Password) > maxPasswordBytes {
		return nil, newError(dto.CodeValidationFailed, "Password must be at most 72 bytes", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, newError(dto.CodeValidationFailed, "Password must be at most 72 bytes", err)
		}
		return nil, internalError(err)
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, newError(dto.CodeConflict, "User already exists", err)
		}
		return nil, internalError(err)
	}

	out := dto.NewUserProfileDTO(*user)
	return &out, nil
}

// Login checks the password and issues a token. Unknown emails and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (string, *dto.UserProfileDTO, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, newError(dto.CodeUnauthorized, "Invalid email or password", nil)
		}
		return "", nil, internalError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, newError(dto.CodeUnauthorized, "Invalid email or password", nil)
	}

	token, err := s.tokens.Sign(user.ID.Hex(), user.Role)
	if err != nil {
		return "", nil, internalError(err)
	}

	out := dto.NewUserProfileDTO(*user)
	return token, &out, nil
}

// Profile returns the account behind token.
func (s *AuthService) Profile(ctx context.Context, token string) (*dto.UserProfileDTO, error) {
	if token == "" {
		return nil, newError(dto.CodeUnauthorized, "Not authorized, token not provided", nil)
	}
	sub, _, err := s.tokens.Parse(token)
	if err != nil {
		return nil, newError(dto.CodeUnauthorized, "Invalid or expired token", err)
	}

	user, err := s.users.FindByID(ctx, sub)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newError(dto.CodeUnauthorized, "Not authorized, user not found", err)
		}
		return nil, internalError(err)
	}

	out := dto.NewUserProfileDTO(*user)
	return &out, nil
}

// ListUsers returns every account for the admin listing.
func (s *AuthService) ListUsers(ctx context.Context) ([]dto.UserProfileDTO, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	out := make([]dto.UserProfileDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserProfileDTO(u))
	}
	return out, nil
}

// ParseAccessToken verifies token and returns its subject with the role of
// the stored account, so deleted or demoted users lose access before their
// token expires.
func (s *AuthService) ParseAccessToken(ctx context.Context, token string) (string, string, error) {
	sub, _, err := s.tokens.Parse(token)
	if err != nil {
		return "", "", newError(dto.CodeUnauthorized, "Invalid or expired token", err)
	}

	user, err := s.users.FindByID(ctx, sub)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", "", newError(dto.CodeUnauthorized, "Not authorized, user not found", err)
		}
		return "", "", internalError(err)
	}
	return user.ID.Hex(), user.Role, nil
}

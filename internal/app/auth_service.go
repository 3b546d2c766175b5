package app

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/cache"
	"blogapi/internal/model"
	"blogapi/internal/pkg/jwtutil"
	"blogapi/internal/repository"
)

type AuthService struct {
	userRepo   *repository.UserRepository
	tokens     *cache.TokenStore
	activities ActivityPublisher
	jwtSecret  string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token     string
	TokenType string
	User      *model.User
}

func NewAuthService(
	userRepo *repository.UserRepository,
	tokens *cache.TokenStore,
	activities ActivityPublisher,
	jwtSecret string,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		activities: activities,
		jwtSecret:  jwtSecret,
	}
}

// Login exchanges credentials for a bearer token. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := input.Password
	if email == "" || password == "" {
		return nil, ErrInvalidCredential
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, tokenID, err := jwtutil.GenerateToken(s.jwtSecret, user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, tokenID, user.ID); err != nil {
		return nil, err
	}

	publishActivity(ctx, s.activities, user.ID, ActionLogin, "user", user.ID)
	return &AuthResult{Token: token, TokenType: "Bearer", User: user}, nil
}

// Logout revokes the presenting token. Revoking an already-revoked token is
// still a success.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	claims, err := jwtutil.ParseToken(s.jwtSecret, rawToken)
	if err != nil {
		return nil
	}
	if err := s.tokens.Revoke(ctx, claims.ID); err != nil {
		return err
	}

	publishActivity(ctx, s.activities, claims.UserID, ActionLogout, "user", claims.UserID)
	return nil
}

// ResolveToken maps a presented bearer token to its principal. A token is
// valid only while its signature checks out, its server-side binding exists,
// and the bound user still exists.
func (s *AuthService) ResolveToken(ctx context.Context, rawToken string) (*model.User, error) {
	claims, err := jwtutil.ParseToken(s.jwtSecret, rawToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	userID, found, err := s.tokens.Resolve(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !found || userID != claims.UserID {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

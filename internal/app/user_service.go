package app

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

type UserService struct {
	userRepo       *repository.UserRepository
	activities     ActivityPublisher
	defaultPerPage int
	maxPerPage     int
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput carries partial-update semantics: nil means "leave the
// field unchanged". A non-nil password must be accompanied by a matching
// confirmation.
type UpdateUserInput struct {
	Name                 *string
	Email                *string
	Password             *string
	PasswordConfirmation *string
}

func NewUserService(
	userRepo *repository.UserRepository,
	activities ActivityPublisher,
	defaultPerPage, maxPerPage int,
) *UserService {
	if defaultPerPage <= 0 {
		defaultPerPage = 15
	}
	if maxPerPage <= 0 {
		maxPerPage = 100
	}
	return &UserService{
		userRepo:       userRepo,
		activities:     activities,
		defaultPerPage: defaultPerPage,
		maxPerPage:     maxPerPage,
	}
}

func (s *UserService) List(page, perPage int) ([]model.User, PageInfo, error) {
	page, perPage = normalizePage(page, perPage, s.defaultPerPage, s.maxPerPage)
	users, total, err := s.userRepo.List(page, perPage)
	if err != nil {
		return nil, PageInfo{}, err
	}
	return users, PageInfo{Page: page, PerPage: perPage, Total: total}, nil
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	publishActivity(ctx, s.activities, user.ID, ActionUserRegistered, "user", user.ID)
	return user, nil
}

func (s *UserService) Get(principalID, id uint) (*model.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if err := authorize(principalID, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, principalID, id uint, input UpdateUserInput) (*model.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if err := authorize(principalID, user); err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		user.Name = name
	}

	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email == "" {
			return nil, ErrInvalidInput
		}
		if email != user.Email {
			existing, err := s.userRepo.GetByEmail(email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != user.ID {
				return nil, ErrEmailExists
			}
		}
		user.Email = email
	}

	if input.Password != nil {
		if input.PasswordConfirmation == nil || *input.Password != *input.PasswordConfirmation {
			return nil, ErrPasswordConfirmation
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password failed: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	publishActivity(ctx, s.activities, principalID, ActionUserUpdated, "user", user.ID)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, principalID, id uint) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if err := authorize(principalID, user); err != nil {
		return err
	}

	if err := s.userRepo.DeleteWithPosts(user); err != nil {
		return err
	}

	publishActivity(ctx, s.activities, principalID, ActionUserDeleted, "user", id)
	return nil
}

package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogapi/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) List(page, perPage int) ([]model.User, int64, error) {
	var total int64
	if err := r.db.Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users failed: %w", err)
	}

	var users []model.User
	offset := (page - 1) * perPage
	if err := r.db.Order("id ASC").Limit(perPage).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("list users failed: %w", err)
	}
	return users, total, nil
}

func (r *UserRepository) Update(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("update user failed: %w", err)
	}
	return nil
}

// DeleteWithPosts removes the user and everything they authored in one
// transaction, so a half-deleted account can never be observed.
func (r *UserRepository) DeleteWithPosts(user *model.User) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", user.ID).Delete(&model.Post{}).Error; err != nil {
			return fmt.Errorf("delete user posts failed: %w", err)
		}
		if err := tx.Delete(user).Error; err != nil {
			return fmt.Errorf("delete user failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

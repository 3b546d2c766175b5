package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogapi/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) GetBySlug(slug string) (*model.Post, error) {
	var post model.Post
	if err := r.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by slug failed: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) List(page, perPage int) ([]model.Post, int64, error) {
	var total int64
	if err := r.db.Model(&model.Post{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count posts failed: %w", err)
	}

	var posts []model.Post
	offset := (page - 1) * perPage
	if err := r.db.Order("id ASC").Limit(perPage).Offset(offset).Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("list posts failed: %w", err)
	}
	return posts, total, nil
}

func (r *PostRepository) Update(post *model.Post) error {
	if err := r.db.Save(post).Error; err != nil {
		return fmt.Errorf("update post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(post *model.Post) error {
	if err := r.db.Delete(post).Error; err != nil {
		return fmt.Errorf("delete post failed: %w", err)
	}
	return nil
}

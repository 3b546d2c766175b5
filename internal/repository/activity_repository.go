package repository

import (
	"fmt"

	"gorm.io/gorm"

	"blogapi/internal/model"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(activity *model.Activity) error {
	if err := r.db.Create(activity).Error; err != nil {
		return fmt.Errorf("create activity failed: %w", err)
	}
	return nil
}

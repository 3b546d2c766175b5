package app

import (
	"context"
	"strings"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

type PostService struct {
	postRepo       *repository.PostRepository
	activities     ActivityPublisher
	defaultPerPage int
	maxPerPage     int
}

type CreatePostInput struct {
	Title   string
	Slug    string
	Content string
}

type UpdatePostInput struct {
	Title   *string
	Slug    *string
	Content *string
}

func NewPostService(
	postRepo *repository.PostRepository,
	activities ActivityPublisher,
	defaultPerPage, maxPerPage int,
) *PostService {
	if defaultPerPage <= 0 {
		defaultPerPage = 15
	}
	if maxPerPage <= 0 {
		maxPerPage = 100
	}
	return &PostService{
		postRepo:       postRepo,
		activities:     activities,
		defaultPerPage: defaultPerPage,
		maxPerPage:     maxPerPage,
	}
}

func (s *PostService) List(page, perPage int) ([]model.Post, PageInfo, error) {
	page, perPage = normalizePage(page, perPage, s.defaultPerPage, s.maxPerPage)
	posts, total, err := s.postRepo.List(page, perPage)
	if err != nil {
		return nil, PageInfo{}, err
	}
	return posts, PageInfo{Page: page, PerPage: perPage, Total: total}, nil
}

// Create persists a post authored by the principal. The author is always
// server-derived; there is no way for a client to write on another user's
// behalf.
func (s *PostService) Create(ctx context.Context, authorID uint, input CreatePostInput) (*model.Post, error) {
	if authorID == 0 {
		return nil, ErrInvalidInput
	}

	title := strings.TrimSpace(input.Title)
	slug := strings.TrimSpace(input.Slug)
	content := strings.TrimSpace(input.Content)
	if title == "" || slug == "" || content == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.postRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugExists
	}

	post := &model.Post{
		Title:    title,
		Slug:     slug,
		Content:  content,
		AuthorID: authorID,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	publishActivity(ctx, s.activities, authorID, ActionPostCreated, "post", post.ID)
	return post, nil
}

// Get has no ownership restriction: any authenticated user may read any post.
func (s *PostService) Get(id uint) (*model.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *PostService) Update(ctx context.Context, principalID, id uint, input UpdatePostInput) (*model.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if err := authorize(principalID, post); err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrInvalidInput
		}
		post.Title = title
	}

	if input.Slug != nil {
		slug := strings.TrimSpace(*input.Slug)
		if slug == "" {
			return nil, ErrInvalidInput
		}
		if slug != post.Slug {
			existing, err := s.postRepo.GetBySlug(slug)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != post.ID {
				return nil, ErrSlugExists
			}
		}
		post.Slug = slug
	}

	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if content == "" {
			return nil, ErrInvalidInput
		}
		post.Content = content
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	publishActivity(ctx, s.activities, principalID, ActionPostUpdated, "post", post.ID)
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, principalID, id uint) error {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	if err := authorize(principalID, post); err != nil {
		return err
	}

	if err := s.postRepo.Delete(post); err != nil {
		return err
	}

	publishActivity(ctx, s.activities, principalID, ActionPostDeleted, "post", id)
	return nil
}

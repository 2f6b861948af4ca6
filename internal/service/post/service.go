package post

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"kabar/internal/domain"
	"kabar/internal/repository"
)

type Service interface {
	Create(ctx context.Context, input domain.CreatePostInput, author *domain.User) (*domain.Post, error)
	Get(ctx context.Context, id uuid.UUID, includeDrafts bool) (*domain.Post, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListPublished(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Post], error)
}

type service struct {
	postRepo repository.PostRepository
}

func NewService(postRepo repository.PostRepository) Service {
	return &service{postRepo: postRepo}
}

func (s *service) Create(ctx context.Context, input domain.CreatePostInput, author *domain.User) (*domain.Post, error) {
	if input.Title == "" || input.Content == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrValidation)
	}

	status := input.Status
	if status == "" {
		status = domain.PostDraft
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown post status %q", domain.ErrValidation, status)
	}

	post := &domain.Post{
		ID:       uuid.New(),
		Title:    input.Title,
		Content:  input.Content,
		Status:   status,
		AuthorID: author.ID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, includeDrafts bool) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil || (!includeDrafts && !post.IsPublic()) {
		return nil, fmt.Errorf("%w: post does not exist", domain.ErrNotFound)
	}
	return post, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdatePostInput) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("%w: post does not exist", domain.ErrNotFound)
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown post status %q", domain.ErrValidation, *input.Status)
		}
		post.Status = *input.Status
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: post does not exist", domain.ErrNotFound)
	}
	return nil
}

func (s *service) ListPublished(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Post], error) {
	posts, total, err := s.postRepo.ListPublished(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Post]{}, err
	}

	params.Validate()
	return domain.NewPaginatedResponse(posts, params.Page, params.PageSize, total), nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"kabar/internal/domain"
)

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	ListPublished(ctx context.Context, params domain.PaginationParams) ([]domain.Post, int64, error)
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (post_id, title, content, status, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		post.ID, post.Title, post.Content, post.Status, post.AuthorID,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	query := `SELECT * FROM posts WHERE post_id = $1`
	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, status = $4, updated_at = NOW()
		WHERE post_id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		post.ID, post.Title, post.Content, post.Status,
	).Scan(&post.UpdatedAt)
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *postRepository) ListPublished(ctx context.Context, params domain.PaginationParams) ([]domain.Post, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM posts WHERE status = 'published'`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	var posts []domain.Post
	query := `
		SELECT * FROM posts
		WHERE status = 'published'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &posts, query, params.PageSize, params.Offset()); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

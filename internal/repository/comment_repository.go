package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"kabar/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID, statuses []domain.CommentStatus) ([]domain.Comment, error)
	List(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParams) ([]domain.Comment, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CommentStatus, moderatorID uuid.UUID, moderatedAt time.Time) (int64, error)
	UpdateStatusBulk(ctx context.Context, ids []uuid.UUID, status domain.CommentStatus, moderatorID uuid.UUID, moderatedAt time.Time) (int64, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteCascadeBulk(ctx context.Context, ids []uuid.UUID) (int64, error)
	Stats(ctx context.Context) (*domain.CommentStats, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Columns shared by every read path. The users join resolves the display name
// for registered authors; guest columns stay NULL for them and vice versa.
const commentColumns = `
	c.comment_id, c.post_id, c.parent_id,
	c.user_id, c.guest_name, c.guest_email, c.guest_website,
	c.content, c.status, c.moderated_by, c.moderated_at,
	c.ip_address, c.user_agent, c.created_at,
	u.full_name`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	var c domain.Comment
	var userID *uuid.UUID
	var guestName, guestEmail, guestWebsite, fullName *string

	err := row.Scan(
		&c.ID, &c.PostID, &c.ParentID,
		&userID, &guestName, &guestEmail, &guestWebsite,
		&c.Content, &c.Status, &c.ModeratedBy, &c.ModeratedAt,
		&c.IPAddress, &c.UserAgent, &c.CreatedAt,
		&fullName,
	)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		author := &domain.RegisteredAuthor{UserID: *userID}
		if fullName != nil {
			author.FullName = *fullName
		}
		c.Author.Registered = author
	} else if guestName != nil && guestEmail != nil {
		c.Author.Guest = &domain.GuestAuthor{
			Name:    *guestName,
			Email:   *guestEmail,
			Website: guestWebsite,
		}
	}

	return &c, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	var userID *uuid.UUID
	var guestName, guestEmail, guestWebsite *string

	switch {
	case comment.Author.Registered != nil:
		userID = &comment.Author.Registered.UserID
	case comment.Author.Guest != nil:
		guestName = &comment.Author.Guest.Name
		guestEmail = &comment.Author.Guest.Email
		guestWebsite = comment.Author.Guest.Website
	}

	query := `
		INSERT INTO comments (
			comment_id, post_id, parent_id,
			user_id, guest_name, guest_email, guest_website,
			content, status, ip_address, user_agent
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.ID, comment.PostID, comment.ParentID,
		userID, guestName, guestEmail, guestWebsite,
		comment.Content, comment.Status, comment.IPAddress, comment.UserAgent,
	).Scan(&comment.CreatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments c
		LEFT JOIN users u ON c.user_id = u.user_id
		WHERE c.comment_id = $1`

	comment, err := scanComment(r.db.QueryRowxContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uuid.UUID, statuses []domain.CommentStatus) ([]domain.Comment, error) {
	statusValues := make([]string, len(statuses))
	for i, s := range statuses {
		statusValues[i] = string(s)
	}

	query := `
		SELECT ` + commentColumns + `
		FROM comments c
		LEFT JOIN users u ON c.user_id = u.user_id
		WHERE c.post_id = $1 AND c.status = ANY($2)
		ORDER BY c.created_at ASC`

	rows, err := r.db.QueryxContext(ctx, query, postID, pq.Array(statusValues))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}

	return comments, rows.Err()
}

var commentSortColumns = map[string]string{
	"created_at": "c.created_at",
	"status":     "c.status",
	"post_id":    "c.post_id",
}

func (r *commentRepository) List(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParams) ([]domain.Comment, int64, error) {
	params.Validate()

	where := []string{"TRUE"}
	args := []any{}

	if filter.PostID != nil {
		args = append(args, *filter.PostID)
		where = append(where, fmt.Sprintf("c.post_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = append(where, fmt.Sprintf("c.status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(c.content ILIKE $%d OR c.guest_name ILIKE $%d OR c.guest_email ILIKE $%d)", n, n, n))
	}
	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM comments c WHERE ` + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	sortColumn, ok := commentSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "c.created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}

	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(`
		SELECT %s
		FROM comments c
		LEFT JOIN users u ON c.user_id = u.user_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		commentColumns, whereClause, sortColumn, direction, len(args)-1, len(args))

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, *c)
	}

	return comments, total, rows.Err()
}

func (r *commentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CommentStatus, moderatorID uuid.UUID, moderatedAt time.Time) (int64, error) {
	query := `
		UPDATE comments
		SET status = $2, moderated_by = $3, moderated_at = $4
		WHERE comment_id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, moderatorID, moderatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *commentRepository) UpdateStatusBulk(ctx context.Context, ids []uuid.UUID, status domain.CommentStatus, moderatorID uuid.UUID, moderatedAt time.Time) (int64, error) {
	query := `
		UPDATE comments
		SET status = $2, moderated_by = $3, moderated_at = $4
		WHERE comment_id = ANY($1)`

	result, err := r.db.ExecContext(ctx, query, pq.Array(ids), status, moderatorID, moderatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteCascade removes the comment and every transitive reply in a single
// statement, so the subtree either disappears whole or not at all.
func (r *commentRepository) DeleteCascade(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT comment_id FROM comments WHERE comment_id = $1
			UNION ALL
			SELECT c.comment_id
			FROM comments c
			INNER JOIN subtree s ON c.parent_id = s.comment_id
		)
		DELETE FROM comments WHERE comment_id IN (SELECT comment_id FROM subtree)`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *commentRepository) DeleteCascadeBulk(ctx context.Context, ids []uuid.UUID) (int64, error) {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT comment_id FROM comments WHERE comment_id = ANY($1)
			UNION ALL
			SELECT c.comment_id
			FROM comments c
			INNER JOIN subtree s ON c.parent_id = s.comment_id
		)
		DELETE FROM comments WHERE comment_id IN (SELECT comment_id FROM subtree)`

	result, err := r.db.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *commentRepository) Stats(ctx context.Context) (*domain.CommentStats, error) {
	stats := &domain.CommentStats{
		CountsByType: make(map[domain.CommentStatus]int64),
	}
	for _, s := range domain.AllCommentStatuses() {
		stats.CountsByType[s] = 0
	}

	totalsQuery := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '24 hours') AS last_24
		FROM comments`

	if err := r.db.QueryRowxContext(ctx, totalsQuery).Scan(&stats.Total, &stats.Last24Hours); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryxContext(ctx, `SELECT status, COUNT(*) FROM comments GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status domain.CommentStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.CountsByType[status] = count
	}

	return stats, rows.Err()
}

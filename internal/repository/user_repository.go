package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"kabar/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	AssignRole(ctx context.Context, userID, roleID uuid.UUID) (int64, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.User, int64, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, email, password_hash, full_name, role_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.RoleID, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

const userWithRoleQuery = `
	SELECT
		u.user_id, u.email, u.password_hash, u.full_name, u.role_id, u.is_active,
		u.created_at, u.updated_at,
		r.role_id AS r_role_id, r.name AS r_name, r.privileges AS r_privileges,
		r.is_superuser AS r_is_superuser, r.created_at AS r_created_at, r.updated_at AS r_updated_at
	FROM users u
	INNER JOIN roles r ON u.role_id = r.role_id`

func (r *userRepository) scanUserWithRole(row rowScanner) (*domain.User, error) {
	var u domain.User
	var role domain.Role

	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.RoleID, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
		&role.ID, &role.Name, &role.Privileges, &role.IsSuperuser,
		&role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Role = &role
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := userWithRoleQuery + ` WHERE u.user_id = $1`
	user, err := r.scanUserWithRole(r.db.QueryRowxContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := userWithRoleQuery + ` WHERE u.email = $1`
	user, err := r.scanUserWithRole(r.db.QueryRowxContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *userRepository) AssignRole(ctx context.Context, userID, roleID uuid.UUID) (int64, error) {
	query := `UPDATE users SET role_id = $2, updated_at = NOW() WHERE user_id = $1`
	result, err := r.db.ExecContext(ctx, query, userID, roleID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *userRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.User, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, 0, err
	}

	query := userWithRoleQuery + `
	ORDER BY u.created_at DESC
	LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryxContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := r.scanUserWithRole(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}

	return users, total, rows.Err()
}

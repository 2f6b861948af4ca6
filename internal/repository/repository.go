package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User    UserRepository
	Role    RoleRepository
	Post    PostRepository
	Comment CommentRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Role:    NewRoleRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
	}
}

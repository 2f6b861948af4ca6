package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"kabar/internal/domain"
	"kabar/internal/repository"
)

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error)
	AssignRole(ctx context.Context, input domain.AssignRoleInput) error
}

type service struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) Service {
	return &service{userRepo: userRepo, roleRepo: roleRepo}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user does not exist", domain.ErrNotFound)
	}
	return user, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error) {
	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}

	params.Validate()
	return domain.NewPaginatedResponse(users, params.Page, params.PageSize, total), nil
}

func (s *service) AssignRole(ctx context.Context, input domain.AssignRoleInput) error {
	role, err := s.roleRepo.GetByID(ctx, input.RoleID)
	if err != nil {
		return err
	}
	if role == nil {
		return fmt.Errorf("%w: role does not exist", domain.ErrNotFound)
	}

	affected, err := s.userRepo.AssignRole(ctx, input.UserID, input.RoleID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: user does not exist", domain.ErrNotFound)
	}
	return nil
}

package role

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"kabar/internal/domain"
	"kabar/internal/repository"
)

type Service interface {
	Create(ctx context.Context, input domain.CreateRoleInput) (*domain.Role, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateRoleInput) (*domain.Role, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Role, error)
}

type service struct {
	roleRepo repository.RoleRepository
}

func NewService(roleRepo repository.RoleRepository) Service {
	return &service{roleRepo: roleRepo}
}

func (s *service) Create(ctx context.Context, input domain.CreateRoleInput) (*domain.Role, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: role name is required", domain.ErrValidation)
	}

	existing, err := s.roleRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: role %q already exists", domain.ErrValidation, input.Name)
	}

	role := &domain.Role{
		ID:          uuid.New(),
		Name:        input.Name,
		Privileges:  input.Privileges,
		IsSuperuser: input.IsSuperuser,
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}

	return role, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("%w: role does not exist", domain.ErrNotFound)
	}
	return role, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateRoleInput) (*domain.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("%w: role does not exist", domain.ErrNotFound)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: role name cannot be empty", domain.ErrValidation)
		}
		role.Name = *input.Name
	}
	if input.Privileges != nil {
		role.Privileges = *input.Privileges
	}
	if input.IsSuperuser != nil {
		role.IsSuperuser = *input.IsSuperuser
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}

	return role, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.roleRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: role does not exist", domain.ErrNotFound)
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]domain.Role, error) {
	return s.roleRepo.List(ctx)
}

// internal/service/user.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/learnfield/campus/internal/domain"
	"github.com/learnfield/campus/internal/model"
	"github.com/learnfield/campus/internal/store"
	"github.com/learnfield/campus/internal/validate"
)

type UserService struct {
	users store.UserStore
	orgs  store.OrganizationStore
}

func NewUserService(users store.UserStore, orgs store.OrganizationStore) *UserService {
	return &UserService{users: users, orgs: orgs}
}

type CreateUserInput struct {
	FirstName      string           `json:"firstName" validate:"required"`
	LastName       string           `json:"lastName" validate:"required"`
	Email          string           `json:"email" validate:"required,email"`
	Phone          string           `json:"phone"`
	Role           model.UserRole   `json:"role" validate:"required,oneof=admin manager instructor support student"`
	OrganizationID string           `json:"organizationId"`
	Status         model.UserStatus `json:"status" validate:"required,oneof=active inactive"`
}

type UpdateUserInput struct {
	FirstName      *string           `json:"firstName" validate:"omitempty,min=1"`
	LastName       *string           `json:"lastName" validate:"omitempty,min=1"`
	Email          *string           `json:"email" validate:"omitempty,email"`
	Phone          *string           `json:"phone"`
	Role           *model.UserRole   `json:"role" validate:"omitempty,oneof=admin manager instructor support student"`
	OrganizationID *string           `json:"organizationId"`
	Status         *model.UserStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	LastActive     *time.Time        `json:"lastActive"`
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(ctx, input.Email, ""); err != nil {
		return nil, err
	}
	if input.OrganizationID != "" {
		if err := s.checkOrganization(ctx, input.OrganizationID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:             uuid.NewString(),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		Role:           input.Role,
		OrganizationID: input.OrganizationID,
		Status:         input.Status,
		LastActive:     &now,
		CreatedAt:      now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (*model.User, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.users.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil && *input.Email != user.Email {
		if err := s.checkEmailFree(ctx, *input.Email, id); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.OrganizationID != nil {
		if *input.OrganizationID != "" {
			if err := s.checkOrganization(ctx, *input.OrganizationID); err != nil {
				return nil, err
			}
		}
		user.OrganizationID = *input.OrganizationID
	}
	if input.Status != nil {
		user.Status = *input.Status
	}
	if input.LastActive != nil {
		user.LastActive = input.LastActive
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.DeleteUser(ctx, id)
}

func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	return s.users.FindUser(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.users.ListUsers(ctx)
}

// checkEmailFree rejects an email already held by a different user. The store
// enforces the same constraint, so a race between concurrent creates still
// resolves to domain.ErrEmailAlreadyExists rather than a duplicate row.
func (s *UserService) checkEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("checking email: %w", err)
	}
	if existing.ID != selfID {
		return domain.ErrEmailAlreadyExists
	}
	return nil
}

func (s *UserService) checkOrganization(ctx context.Context, orgID string) error {
	if _, err := s.orgs.FindOrganization(ctx, orgID); err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return domain.NewValidationError("organizationId", "exists")
		}
		return fmt.Errorf("checking organization: %w", err)
	}
	return nil
}

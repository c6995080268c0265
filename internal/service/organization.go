// internal/service/organization.go
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

// OrganizationService is the mutation facade for organizations. Deleting an
// organization is the widest cascade trigger point: the store removes its
// users, courses and their enrollments in one atomic step.
type OrganizationService struct {
	orgs  store.OrganizationStore
	users store.UserStore
}

func NewOrganizationService(orgs store.OrganizationStore, users store.UserStore) *OrganizationService {
	return &OrganizationService{orgs: orgs, users: users}
}

type CreateOrganizationInput struct {
	Name      string          `json:"name" validate:"required"`
	Address   string          `json:"address"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email" validate:"omitempty,email"`
	ManagerID string          `json:"managerId" validate:"required"`
	Status    model.OrgStatus `json:"status" validate:"required,oneof=active inactive"`
}

type UpdateOrganizationInput struct {
	Name      *string          `json:"name" validate:"omitempty,min=1"`
	Address   *string          `json:"address"`
	Phone     *string          `json:"phone"`
	Email     *string          `json:"email" validate:"omitempty,email"`
	ManagerID *string          `json:"managerId" validate:"omitempty,min=1"`
	Status    *model.OrgStatus `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (s *OrganizationService) Create(ctx context.Context, input CreateOrganizationInput) (*model.Organization, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if err := s.checkManager(ctx, input.ManagerID); err != nil {
		return nil, err
	}

	org := &model.Organization{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Address:   input.Address,
		Phone:     input.Phone,
		Email:     input.Email,
		ManagerID: input.ManagerID,
		Status:    input.Status,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.orgs.CreateOrganization(ctx, org); err != nil {
		return nil, fmt.Errorf("creating organization: %w", err)
	}
	return org, nil
}

func (s *OrganizationService) Update(ctx context.Context, id string, input UpdateOrganizationInput) (*model.Organization, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	org, err := s.orgs.FindOrganization(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		org.Name = *input.Name
	}
	if input.Address != nil {
		org.Address = *input.Address
	}
	if input.Phone != nil {
		org.Phone = *input.Phone
	}
	if input.Email != nil {
		org.Email = *input.Email
	}
	if input.ManagerID != nil && *input.ManagerID != org.ManagerID {
		if err := s.checkManager(ctx, *input.ManagerID); err != nil {
			return nil, err
		}
		org.ManagerID = *input.ManagerID
	}
	if input.Status != nil {
		org.Status = *input.Status
	}

	if err := s.orgs.UpdateOrganization(ctx, org); err != nil {
		return nil, fmt.Errorf("updating organization: %w", err)
	}
	return org, nil
}

func (s *OrganizationService) Delete(ctx context.Context, id string) error {
	return s.orgs.DeleteOrganization(ctx, id)
}

func (s *OrganizationService) Get(ctx context.Context, id string) (*model.Organization, error) {
	return s.orgs.FindOrganization(ctx, id)
}

func (s *OrganizationService) List(ctx context.Context) ([]*model.Organization, error) {
	return s.orgs.ListOrganizations(ctx)
}

func (s *OrganizationService) checkManager(ctx context.Context, managerID string) error {
	if _, err := s.users.FindUser(ctx, managerID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.NewValidationError("managerId", "exists")
		}
		return fmt.Errorf("checking manager: %w", err)
	}
	return nil
}

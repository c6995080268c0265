// internal/service/course.go
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

type CourseService struct {
	courses store.CourseStore
	orgs    store.OrganizationStore
	users   store.UserStore
}

func NewCourseService(courses store.CourseStore, orgs store.OrganizationStore, users store.UserStore) *CourseService {
	return &CourseService{courses: courses, orgs: orgs, users: users}
}

type CreateCourseInput struct {
	Title          string             `json:"title" validate:"required"`
	Description    string             `json:"description"`
	InstructorID   string             `json:"instructorId" validate:"required"`
	OrganizationID string             `json:"organizationId" validate:"required"`
	Duration       *int               `json:"duration" validate:"omitempty,min=1"`
	MaxStudents    *int               `json:"maxStudents" validate:"omitempty,min=1"`
	Status         model.CourseStatus `json:"status" validate:"required,oneof=draft active inactive"`
}

type UpdateCourseInput struct {
	Title          *string             `json:"title" validate:"omitempty,min=1"`
	Description    *string             `json:"description"`
	InstructorID   *string             `json:"instructorId" validate:"omitempty,min=1"`
	OrganizationID *string             `json:"organizationId" validate:"omitempty,min=1"`
	Duration       *int                `json:"duration" validate:"omitempty,min=1"`
	MaxStudents    *int                `json:"maxStudents" validate:"omitempty,min=1"`
	Status         *model.CourseStatus `json:"status" validate:"omitempty,oneof=draft active inactive"`
}

func (s *CourseService) Create(ctx context.Context, input CreateCourseInput) (*model.Course, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if err := s.checkOrganization(ctx, input.OrganizationID); err != nil {
		return nil, err
	}
	if err := s.checkInstructor(ctx, input.InstructorID); err != nil {
		return nil, err
	}

	course := &model.Course{
		ID:             uuid.NewString(),
		Title:          input.Title,
		Description:    input.Description,
		InstructorID:   input.InstructorID,
		OrganizationID: input.OrganizationID,
		Duration:       input.Duration,
		MaxStudents:    input.MaxStudents,
		Status:         input.Status,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.courses.CreateCourse(ctx, course); err != nil {
		return nil, fmt.Errorf("creating course: %w", err)
	}
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, id string, input UpdateCourseInput) (*model.Course, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	course, err := s.courses.FindCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.InstructorID != nil && *input.InstructorID != course.InstructorID {
		if err := s.checkInstructor(ctx, *input.InstructorID); err != nil {
			return nil, err
		}
		course.InstructorID = *input.InstructorID
	}
	if input.OrganizationID != nil && *input.OrganizationID != course.OrganizationID {
		if err := s.checkOrganization(ctx, *input.OrganizationID); err != nil {
			return nil, err
		}
		course.OrganizationID = *input.OrganizationID
	}
	if input.Duration != nil {
		course.Duration = input.Duration
	}
	if input.MaxStudents != nil {
		course.MaxStudents = input.MaxStudents
	}
	if input.Status != nil {
		course.Status = *input.Status
	}

	if err := s.courses.UpdateCourse(ctx, course); err != nil {
		return nil, fmt.Errorf("updating course: %w", err)
	}
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, id string) error {
	return s.courses.DeleteCourse(ctx, id)
}

func (s *CourseService) Get(ctx context.Context, id string) (*model.Course, error) {
	return s.courses.FindCourse(ctx, id)
}

func (s *CourseService) List(ctx context.Context) ([]*model.Course, error) {
	return s.courses.ListCourses(ctx)
}

func (s *CourseService) checkOrganization(ctx context.Context, orgID string) error {
	if _, err := s.orgs.FindOrganization(ctx, orgID); err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return domain.NewValidationError("organizationId", "exists")
		}
		return fmt.Errorf("checking organization: %w", err)
	}
	return nil
}

// checkInstructor requires the referenced user to exist and carry the
// instructor role.
func (s *CourseService) checkInstructor(ctx context.Context, instructorID string) error {
	user, err := s.users.FindUser(ctx, instructorID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.NewValidationError("instructorId", "exists")
		}
		return fmt.Errorf("checking instructor: %w", err)
	}
	if user.Role != model.RoleInstructor {
		return domain.NewValidationError("instructorId", "instructor_role")
	}
	return nil
}

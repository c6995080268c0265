// internal/service/enrollment.go
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

type EnrollmentService struct {
	enrollments store.EnrollmentStore
	users       store.UserStore
	courses     store.CourseStore
}

func NewEnrollmentService(enrollments store.EnrollmentStore, users store.UserStore, courses store.CourseStore) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments, users: users, courses: courses}
}

type CreateEnrollmentInput struct {
	StudentID string                 `json:"studentId" validate:"required"`
	CourseID  string                 `json:"courseId" validate:"required"`
	Status    model.EnrollmentStatus `json:"status" validate:"required,oneof=active completed dropped"`
	Progress  int                    `json:"progress" validate:"min=0,max=100"`
}

type UpdateEnrollmentInput struct {
	Status   *model.EnrollmentStatus `json:"status" validate:"omitempty,oneof=active completed dropped"`
	Progress *int                    `json:"progress" validate:"omitempty,min=0,max=100"`
}

// Create enrolls a student in a course. A second enrollment for the same
// (student, course) pair is rejected regardless of the existing record's
// status, and nothing is written on rejection.
func (s *EnrollmentService) Create(ctx context.Context, input CreateEnrollmentInput) (*model.Enrollment, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if err := s.checkStudent(ctx, input.StudentID); err != nil {
		return nil, err
	}
	if err := s.checkCourse(ctx, input.CourseID); err != nil {
		return nil, err
	}

	_, err := s.enrollments.FindEnrollmentByStudentCourse(ctx, input.StudentID, input.CourseID)
	if err == nil {
		return nil, domain.ErrDuplicateEnrollment
	}
	if !errors.Is(err, domain.ErrEnrollmentNotFound) {
		return nil, fmt.Errorf("checking existing enrollment: %w", err)
	}

	enrollment := &model.Enrollment{
		ID:             uuid.NewString(),
		StudentID:      input.StudentID,
		CourseID:       input.CourseID,
		Status:         input.Status,
		Progress:       input.Progress,
		EnrollmentDate: time.Now().UTC(),
	}
	if err := s.enrollments.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("creating enrollment: %w", err)
	}
	return enrollment, nil
}

func (s *EnrollmentService) Update(ctx context.Context, id string, input UpdateEnrollmentInput) (*model.Enrollment, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	enrollment, err := s.enrollments.FindEnrollment(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		enrollment.Status = *input.Status
	}
	if input.Progress != nil {
		enrollment.Progress = *input.Progress
	}

	if err := s.enrollments.UpdateEnrollment(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("updating enrollment: %w", err)
	}
	return enrollment, nil
}

func (s *EnrollmentService) Delete(ctx context.Context, id string) error {
	return s.enrollments.DeleteEnrollment(ctx, id)
}

func (s *EnrollmentService) Get(ctx context.Context, id string) (*model.Enrollment, error) {
	return s.enrollments.FindEnrollment(ctx, id)
}

func (s *EnrollmentService) List(ctx context.Context) ([]*model.Enrollment, error) {
	return s.enrollments.ListEnrollments(ctx)
}

// checkStudent requires the referenced user to exist and carry the student
// role. Enrolling managers or instructors is rejected at this boundary.
func (s *EnrollmentService) checkStudent(ctx context.Context, studentID string) error {
	user, err := s.users.FindUser(ctx, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.NewValidationError("studentId", "exists")
		}
		return fmt.Errorf("checking student: %w", err)
	}
	if user.Role != model.RoleStudent {
		return domain.NewValidationError("studentId", "student_role")
	}
	return nil
}

func (s *EnrollmentService) checkCourse(ctx context.Context, courseID string) error {
	if _, err := s.courses.FindCourse(ctx, courseID); err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			return domain.NewValidationError("courseId", "exists")
		}
		return fmt.Errorf("checking course: %w", err)
	}
	return nil
}

// internal/store/store.go
package store

import (
	"context"

	"github.com/learnfield/campus/internal/model"
)

// Snapshot is a point-in-time copy of the four collections, in insertion
// order. The query package derives every filtered, sorted and aggregated
// view from a snapshot; it never reads the store directly.
type Snapshot struct {
	Organizations []*model.Organization
	Users         []*model.User
	Courses       []*model.Course
	Enrollments   []*model.Enrollment
}

type OrganizationStore interface {
	CreateOrganization(ctx context.Context, org *model.Organization) error
	FindOrganization(ctx context.Context, id string) (*model.Organization, error)
	ListOrganizations(ctx context.Context) ([]*model.Organization, error)
	UpdateOrganization(ctx context.Context, org *model.Organization) error

	// DeleteOrganization removes the organization together with its users,
	// its courses, and every enrollment referencing those courses or users,
	// atomically. Returns domain.ErrOrganizationNotFound if the id is absent.
	DeleteOrganization(ctx context.Context, id string) error
}

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	FindUser(ctx context.Context, id string) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error

	// DeleteUser removes the user and every enrollment where the user is the
	// student, atomically. Returns domain.ErrUserNotFound if the id is absent.
	DeleteUser(ctx context.Context, id string) error
}

type CourseStore interface {
	CreateCourse(ctx context.Context, course *model.Course) error
	FindCourse(ctx context.Context, id string) (*model.Course, error)
	ListCourses(ctx context.Context) ([]*model.Course, error)
	UpdateCourse(ctx context.Context, course *model.Course) error

	// DeleteCourse removes the course and every enrollment referencing it,
	// atomically. Returns domain.ErrCourseNotFound if the id is absent.
	DeleteCourse(ctx context.Context, id string) error
}

type EnrollmentStore interface {
	CreateEnrollment(ctx context.Context, enrollment *model.Enrollment) error
	FindEnrollment(ctx context.Context, id string) (*model.Enrollment, error)
	FindEnrollmentByStudentCourse(ctx context.Context, studentID, courseID string) (*model.Enrollment, error)
	ListEnrollments(ctx context.Context) ([]*model.Enrollment, error)
	UpdateEnrollment(ctx context.Context, enrollment *model.Enrollment) error
	DeleteEnrollment(ctx context.Context, id string) error
}

// Store is the entity store contract both backends implement. The in-memory
// variant persists a JSON snapshot after each mutation; the postgres variant
// runs each mutation, cascade included, in a single transaction. Callers must
// not depend on which one is active.
type Store interface {
	OrganizationStore
	UserStore
	CourseStore
	EnrollmentStore

	Snapshot(ctx context.Context) (*Snapshot, error)
}

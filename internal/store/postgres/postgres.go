// internal/store/postgres/postgres.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/learnfield/campus/internal/domain"
	"github.com/learnfield/campus/internal/model"
	"github.com/learnfield/campus/internal/store"
)

// uniqueViolation is the postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// Store is the relational entity store. Foreign keys are plain identifier
// columns; the cascade is application-enforced, with each delete and its
// dependents executed inside a single transaction.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the four entity tables.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&model.Organization{},
		&model.User{},
		&model.Course{},
		&model.Enrollment{},
	)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Organizations

func (s *Store) CreateOrganization(ctx context.Context, org *model.Organization) error {
	if err := s.db.WithContext(ctx).Create(org).Error; err != nil {
		return fmt.Errorf("creating organization: %w", err)
	}
	return nil
}

func (s *Store) FindOrganization(ctx context.Context, id string) (*model.Organization, error) {
	var org model.Organization
	if err := s.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization: %w", err)
	}
	return &org, nil
}

func (s *Store) ListOrganizations(ctx context.Context) ([]*model.Organization, error) {
	var orgs []*model.Organization
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&orgs).Error; err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}
	return orgs, nil
}

func (s *Store) UpdateOrganization(ctx context.Context, org *model.Organization) error {
	res := s.db.WithContext(ctx).Model(&model.Organization{}).
		Where("id = ?", org.ID).
		Select("*").Omit("id", "created_at").
		Updates(org)
	if res.Error != nil {
		return fmt.Errorf("updating organization: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrganizationNotFound
	}
	return nil
}

func (s *Store) DeleteOrganization(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Organization{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("deleting organization: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrOrganizationNotFound
		}

		var userIDs []string
		if err := tx.Model(&model.User{}).Where("organization_id = ?", id).Pluck("id", &userIDs).Error; err != nil {
			return fmt.Errorf("collecting organization users: %w", err)
		}
		var courseIDs []string
		if err := tx.Model(&model.Course{}).Where("organization_id = ?", id).Pluck("id", &courseIDs).Error; err != nil {
			return fmt.Errorf("collecting organization courses: %w", err)
		}

		if len(courseIDs) > 0 {
			if err := tx.Where("course_id IN ?", courseIDs).Delete(&model.Enrollment{}).Error; err != nil {
				return fmt.Errorf("deleting course enrollments: %w", err)
			}
		}
		if len(userIDs) > 0 {
			if err := tx.Where("student_id IN ?", userIDs).Delete(&model.Enrollment{}).Error; err != nil {
				return fmt.Errorf("deleting student enrollments: %w", err)
			}
		}
		if err := tx.Where("organization_id = ?", id).Delete(&model.Course{}).Error; err != nil {
			return fmt.Errorf("deleting organization courses: %w", err)
		}
		if err := tx.Where("organization_id = ?", id).Delete(&model.User{}).Error; err != nil {
			return fmt.Errorf("deleting organization users: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// Users

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (s *Store) FindUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return &user, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("finding user by email: %w", err)
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *model.User) error {
	res := s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Select("*").Omit("id", "created_at").
		Updates(user)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("updating user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.User{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("deleting user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		if err := tx.Where("student_id = ?", id).Delete(&model.Enrollment{}).Error; err != nil {
			return fmt.Errorf("deleting user enrollments: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// Courses

func (s *Store) CreateCourse(ctx context.Context, course *model.Course) error {
	if err := s.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("creating course: %w", err)
	}
	return nil
}

func (s *Store) FindCourse(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	if err := s.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("finding course: %w", err)
	}
	return &course, nil
}

func (s *Store) ListCourses(ctx context.Context) ([]*model.Course, error) {
	var courses []*model.Course
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	return courses, nil
}

func (s *Store) UpdateCourse(ctx context.Context, course *model.Course) error {
	res := s.db.WithContext(ctx).Model(&model.Course{}).
		Where("id = ?", course.ID).
		Select("*").Omit("id", "created_at").
		Updates(course)
	if res.Error != nil {
		return fmt.Errorf("updating course: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (s *Store) DeleteCourse(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Course{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("deleting course: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrCourseNotFound
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Enrollment{}).Error; err != nil {
			return fmt.Errorf("deleting course enrollments: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// Enrollments

func (s *Store) CreateEnrollment(ctx context.Context, enrollment *model.Enrollment) error {
	if err := s.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		return fmt.Errorf("creating enrollment: %w", err)
	}
	return nil
}

func (s *Store) FindEnrollment(ctx context.Context, id string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := s.db.WithContext(ctx).First(&enrollment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("finding enrollment: %w", err)
	}
	return &enrollment, nil
}

func (s *Store) FindEnrollmentByStudentCourse(ctx context.Context, studentID, courseID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := s.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("finding enrollment by student and course: %w", err)
	}
	return &enrollment, nil
}

func (s *Store) ListEnrollments(ctx context.Context) ([]*model.Enrollment, error) {
	var enrollments []*model.Enrollment
	if err := s.db.WithContext(ctx).Order("enrollment_date, id").Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("listing enrollments: %w", err)
	}
	return enrollments, nil
}

func (s *Store) UpdateEnrollment(ctx context.Context, enrollment *model.Enrollment) error {
	res := s.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("id = ?", enrollment.ID).
		Select("*").Omit("id", "enrollment_date").
		Updates(enrollment)
	if res.Error != nil {
		return fmt.Errorf("updating enrollment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrEnrollmentNotFound
	}
	return nil
}

func (s *Store) DeleteEnrollment(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Enrollment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting enrollment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrEnrollmentNotFound
	}
	return nil
}

// Snapshot reads all four collections in one transaction so derived views
// never observe a half-applied cascade.
func (s *Store) Snapshot(ctx context.Context) (*store.Snapshot, error) {
	var snap store.Snapshot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("created_at, id").Find(&snap.Organizations).Error; err != nil {
			return fmt.Errorf("loading organizations: %w", err)
		}
		if err := tx.Order("created_at, id").Find(&snap.Users).Error; err != nil {
			return fmt.Errorf("loading users: %w", err)
		}
		if err := tx.Order("created_at, id").Find(&snap.Courses).Error; err != nil {
			return fmt.Errorf("loading courses: %w", err)
		}
		if err := tx.Order("enrollment_date, id").Find(&snap.Enrollments).Error; err != nil {
			return fmt.Errorf("loading enrollments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// internal/store/memory/memory.go
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/learnfield/campus/internal/domain"
	"github.com/learnfield/campus/internal/model"
	"github.com/learnfield/campus/internal/store"
)

// Store is the in-memory entity store. Collections are kept in insertion
// order behind one mutex, so no reader ever observes a partial cascade.
// When a snapshot path is configured, the full state is hydrated from it at
// startup and flushed back after every mutation.
type Store struct {
	mu   sync.Mutex
	path string

	organizations []*model.Organization
	users         []*model.User
	courses       []*model.Course
	enrollments   []*model.Enrollment
}

// snapshotFile is the persisted representation of the store.
type snapshotFile struct {
	Organizations []*model.Organization `json:"organizations"`
	Users         []*model.User         `json:"users"`
	Courses       []*model.Course       `json:"courses"`
	Enrollments   []*model.Enrollment   `json:"enrollments"`
}

// New returns an empty store with no snapshot persistence.
func New() *Store {
	return &Store{}
}

// Open hydrates a store from the snapshot file at path, starting empty if the
// file does not exist yet. Every later mutation rewrites the file.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap snapshotFile
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	s.organizations = snap.Organizations
	s.users = snap.Users
	s.courses = snap.Courses
	s.enrollments = snap.Enrollments
	return s, nil
}

// flushLocked persists the current state. Callers must hold s.mu.
func (s *Store) flushLocked() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(snapshotFile{
		Organizations: s.organizations,
		Users:         s.users,
		Courses:       s.courses,
		Enrollments:   s.enrollments,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

// Organizations

func (s *Store) CreateOrganization(ctx context.Context, org *model.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *org
	s.organizations = append(s.organizations, &cp)
	return s.flushLocked()
}

func (s *Store) FindOrganization(ctx context.Context, id string) (*model.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, org := range s.organizations {
		if org.ID == id {
			cp := *org
			return &cp, nil
		}
	}
	return nil, domain.ErrOrganizationNotFound
}

func (s *Store) ListOrganizations(ctx context.Context) ([]*model.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyOrganizations(s.organizations), nil
}

func (s *Store) UpdateOrganization(ctx context.Context, org *model.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.organizations {
		if existing.ID == org.ID {
			cp := *org
			s.organizations[i] = &cp
			return s.flushLocked()
		}
	}
	return domain.ErrOrganizationNotFound
}

func (s *Store) DeleteOrganization(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	kept := s.organizations[:0]
	for _, org := range s.organizations {
		if org.ID == id {
			found = true
			continue
		}
		kept = append(kept, org)
	}
	if !found {
		return domain.ErrOrganizationNotFound
	}
	s.organizations = kept

	// Collect dependents before touching the other collections so the
	// enrollment pass sees the complete set of removed users and courses.
	removedUsers := map[string]bool{}
	keptUsers := s.users[:0]
	for _, u := range s.users {
		if u.OrganizationID == id {
			removedUsers[u.ID] = true
			continue
		}
		keptUsers = append(keptUsers, u)
	}
	s.users = keptUsers

	removedCourses := map[string]bool{}
	keptCourses := s.courses[:0]
	for _, c := range s.courses {
		if c.OrganizationID == id {
			removedCourses[c.ID] = true
			continue
		}
		keptCourses = append(keptCourses, c)
	}
	s.courses = keptCourses

	keptEnrollments := s.enrollments[:0]
	for _, e := range s.enrollments {
		if removedCourses[e.CourseID] || removedUsers[e.StudentID] {
			continue
		}
		keptEnrollments = append(keptEnrollments, e)
	}
	s.enrollments = keptEnrollments

	return s.flushLocked()
}

// Users

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	cp := *user
	s.users = append(s.users, &cp)
	return s.flushLocked()
}

func (s *Store) FindUser(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUsers(s.users), nil
}

func (s *Store) UpdateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email && existing.ID != user.ID {
			return domain.ErrEmailAlreadyExists
		}
	}

	for i, existing := range s.users {
		if existing.ID == user.ID {
			cp := *user
			s.users[i] = &cp
			return s.flushLocked()
		}
	}
	return domain.ErrUserNotFound
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID == id {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return domain.ErrUserNotFound
	}
	s.users = kept

	keptEnrollments := s.enrollments[:0]
	for _, e := range s.enrollments {
		if e.StudentID == id {
			continue
		}
		keptEnrollments = append(keptEnrollments, e)
	}
	s.enrollments = keptEnrollments

	return s.flushLocked()
}

// Courses

func (s *Store) CreateCourse(ctx context.Context, course *model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *course
	s.courses = append(s.courses, &cp)
	return s.flushLocked()
}

func (s *Store) FindCourse(ctx context.Context, id string) (*model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.courses {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrCourseNotFound
}

func (s *Store) ListCourses(ctx context.Context) ([]*model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCourses(s.courses), nil
}

func (s *Store) UpdateCourse(ctx context.Context, course *model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.courses {
		if existing.ID == course.ID {
			cp := *course
			s.courses[i] = &cp
			return s.flushLocked()
		}
	}
	return domain.ErrCourseNotFound
}

func (s *Store) DeleteCourse(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	kept := s.courses[:0]
	for _, c := range s.courses {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return domain.ErrCourseNotFound
	}
	s.courses = kept

	keptEnrollments := s.enrollments[:0]
	for _, e := range s.enrollments {
		if e.CourseID == id {
			continue
		}
		keptEnrollments = append(keptEnrollments, e)
	}
	s.enrollments = keptEnrollments

	return s.flushLocked()
}

// Enrollments

func (s *Store) CreateEnrollment(ctx context.Context, enrollment *model.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *enrollment
	s.enrollments = append(s.enrollments, &cp)
	return s.flushLocked()
}

func (s *Store) FindEnrollment(ctx context.Context, id string) (*model.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.enrollments {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrEnrollmentNotFound
}

func (s *Store) FindEnrollmentByStudentCourse(ctx context.Context, studentID, courseID string) (*model.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrEnrollmentNotFound
}

func (s *Store) ListEnrollments(ctx context.Context) ([]*model.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyEnrollments(s.enrollments), nil
}

func (s *Store) UpdateEnrollment(ctx context.Context, enrollment *model.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.enrollments {
		if existing.ID == enrollment.ID {
			cp := *enrollment
			s.enrollments[i] = &cp
			return s.flushLocked()
		}
	}
	return domain.ErrEnrollmentNotFound
}

func (s *Store) DeleteEnrollment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	kept := s.enrollments[:0]
	for _, e := range s.enrollments {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return domain.ErrEnrollmentNotFound
	}
	s.enrollments = kept
	return s.flushLocked()
}

// Snapshot returns a deep copy of all four collections in insertion order.
func (s *Store) Snapshot(ctx context.Context) (*store.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &store.Snapshot{
		Organizations: copyOrganizations(s.organizations),
		Users:         copyUsers(s.users),
		Courses:       copyCourses(s.courses),
		Enrollments:   copyEnrollments(s.enrollments),
	}, nil
}

func copyOrganizations(in []*model.Organization) []*model.Organization {
	out := make([]*model.Organization, len(in))
	for i, v := range in {
		cp := *v
		out[i] = &cp
	}
	return out
}

func copyUsers(in []*model.User) []*model.User {
	out := make([]*model.User, len(in))
	for i, v := range in {
		cp := *v
		out[i] = &cp
	}
	return out
}

func copyCourses(in []*model.Course) []*model.Course {
	out := make([]*model.Course, len(in))
	for i, v := range in {
		cp := *v
		out[i] = &cp
	}
	return out
}

func copyEnrollments(in []*model.Enrollment) []*model.Enrollment {
	out := make([]*model.Enrollment, len(in))
	for i, v := range in {
		cp := *v
		out[i] = &cp
	}
	return out
}

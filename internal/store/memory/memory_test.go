package memory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/learnfield/campus/internal/domain"
	"github.com/learnfield/campus/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s := New()

	now := time.Now().UTC()

	orgs := []*model.Organization{
		{ID: "org-1", Name: "Tech Academy", ManagerID: "user-mgr", Status: model.OrgActive, CreatedAt: now},
		{ID: "org-2", Name: "Design School", ManagerID: "user-mgr", Status: model.OrgActive, CreatedAt: now.Add(time.Minute)},
	}
	for _, o := range orgs {
		require.NoError(t, s.CreateOrganization(ctx, o))
	}

	users := []*model.User{
		{ID: "user-mgr", FirstName: "Mara", LastName: "Quinn", Email: "mara@org1.test", Role: model.RoleManager, OrganizationID: "org-1", Status: model.UserActive, CreatedAt: now},
		{ID: "user-inst", FirstName: "Ivo", LastName: "Stein", Email: "ivo@org1.test", Role: model.RoleInstructor, OrganizationID: "org-1", Status: model.UserActive, CreatedAt: now},
		{ID: "user-stu1", FirstName: "Sam", LastName: "Lee", Email: "sam@org1.test", Role: model.RoleStudent, OrganizationID: "org-1", Status: model.UserActive, CreatedAt: now},
		{ID: "user-stu2", FirstName: "Ana", LastName: "Reyes", Email: "ana@org2.test", Role: model.RoleStudent, OrganizationID: "org-2", Status: model.UserActive, CreatedAt: now},
	}
	for _, u := range users {
		require.NoError(t, s.CreateUser(ctx, u))
	}

	courses := []*model.Course{
		{ID: "course-1", Title: "Go Basics", InstructorID: "user-inst", OrganizationID: "org-1", Status: model.CourseActive, CreatedAt: now},
		{ID: "course-2", Title: "UX Writing", InstructorID: "user-inst", OrganizationID: "org-2", Status: model.CourseActive, CreatedAt: now},
	}
	for _, c := range courses {
		require.NoError(t, s.CreateCourse(ctx, c))
	}

	enrollments := []*model.Enrollment{
		// org-1 student in an org-1 course
		{ID: "enr-1", StudentID: "user-stu1", CourseID: "course-1", Status: model.EnrollmentActive, Progress: 40, EnrollmentDate: now},
		// org-2 student in an org-1 course: removed with org-1 via the course
		{ID: "enr-2", StudentID: "user-stu2", CourseID: "course-1", Status: model.EnrollmentActive, Progress: 10, EnrollmentDate: now},
		// org-1 student in an org-2 course: removed with org-1 via the student
		{ID: "enr-3", StudentID: "user-stu1", CourseID: "course-2", Status: model.EnrollmentCompleted, Progress: 100, EnrollmentDate: now},
		// org-2 student in an org-2 course: survives deleting org-1
		{ID: "enr-4", StudentID: "user-stu2", CourseID: "course-2", Status: model.EnrollmentActive, Progress: 55, EnrollmentDate: now},
	}
	for _, e := range enrollments {
		require.NoError(t, s.CreateEnrollment(ctx, e))
	}

	return s
}

func TestOrganizationCascade(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)

	require.NoError(t, s.DeleteOrganization(ctx, "org-1"))

	_, err := s.FindOrganization(ctx, "org-1")
	assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "user-stu2", users[0].ID)

	courses, err := s.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "course-2", courses[0].ID)

	// Only the enrollment with both sides outside org-1 survives.
	enrollments, err := s.ListEnrollments(ctx)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, "enr-4", enrollments[0].ID)

	// Unrelated rows are untouched.
	org2, err := s.FindOrganization(ctx, "org-2")
	require.NoError(t, err)
	assert.Equal(t, "Design School", org2.Name)
}

func TestUserCascade(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)

	require.NoError(t, s.DeleteUser(ctx, "user-stu1"))

	enrollments, err := s.ListEnrollments(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"enr-2", "enr-4"}, ids)

	// Deleting an instructor leaves their courses in place.
	require.NoError(t, s.DeleteUser(ctx, "user-inst"))
	courses, err := s.ListCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}

func TestCourseCascade(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)

	require.NoError(t, s.DeleteCourse(ctx, "course-1"))

	enrollments, err := s.ListEnrollments(ctx)
	require.NoError(t, err)
	require.Len(t, enrollments, 2)
	assert.Equal(t, "enr-3", enrollments[0].ID)
	assert.Equal(t, "enr-4", enrollments[1].ID)

	// Students themselves are untouched.
	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)
}

func TestDeleteNotFound(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)

	assert.ErrorIs(t, s.DeleteOrganization(ctx, "nope"), domain.ErrOrganizationNotFound)
	assert.ErrorIs(t, s.DeleteUser(ctx, "nope"), domain.ErrUserNotFound)
	assert.ErrorIs(t, s.DeleteCourse(ctx, "nope"), domain.ErrCourseNotFound)
	assert.ErrorIs(t, s.DeleteEnrollment(ctx, "nope"), domain.ErrEnrollmentNotFound)

	// A failed delete leaves everything in place.
	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Organizations, 2)
	assert.Len(t, snap.Users, 4)
	assert.Len(t, snap.Courses, 2)
	assert.Len(t, snap.Enrollments, 4)
}

func TestDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)

	err := s.CreateUser(ctx, &model.User{
		ID:        "user-dup",
		FirstName: "Dup",
		LastName:  "Licate",
		Email:     "sam@org1.test",
		Role:      model.RoleStudent,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// Updating a user onto another user's email is rejected too.
	u, err := s.FindUser(ctx, "user-stu2")
	require.NoError(t, err)
	u.Email = "sam@org1.test"
	assert.ErrorIs(t, s.UpdateUser(ctx, u), domain.ErrEmailAlreadyExists)

	// Keeping your own email on update is fine.
	u.Email = "ana@org2.test"
	u.FirstName = "Anna"
	require.NoError(t, s.UpdateUser(ctx, u))
	got, err := s.FindUser(ctx, "user-stu2")
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.FirstName)
}

func TestUpdatePreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)

	org, err := s.FindOrganization(ctx, "org-1")
	require.NoError(t, err)
	org.Name = "Tech Academy Intl"
	require.NoError(t, s.UpdateOrganization(ctx, org))

	orgs, err := s.ListOrganizations(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 2)
	assert.Equal(t, "org-1", orgs[0].ID)
	assert.Equal(t, "Tech Academy Intl", orgs[0].Name)
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)

	org, err := s.FindOrganization(ctx, "org-1")
	require.NoError(t, err)
	org.Name = "mutated"

	again, err := s.FindOrganization(ctx, "org-1")
	require.NoError(t, err)
	assert.Equal(t, "Tech Academy", again.Name)

	list, err := s.ListOrganizations(ctx)
	require.NoError(t, err)
	list[0].Name = "mutated"

	again, err = s.FindOrganization(ctx, "org-1")
	require.NoError(t, err)
	assert.Equal(t, "Tech Academy", again.Name)
}

func TestListingIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)

	first, err := s.ListUsers(ctx)
	require.NoError(t, err)
	second, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	snapA, err := s.Snapshot(ctx)
	require.NoError(t, err)
	snapB, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapA, snapB)
}

func TestFindEnrollmentByStudentCourse(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)

	e, err := s.FindEnrollmentByStudentCourse(ctx, "user-stu1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, "enr-1", e.ID)

	_, err = s.FindEnrollmentByStudentCourse(ctx, "user-stu1", "missing")
	assert.ErrorIs(t, err, domain.ErrEnrollmentNotFound)
}

func TestSnapshotPersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "campus.snapshot.json")

	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.CreateOrganization(ctx, &model.Organization{
		ID: "org-1", Name: "Tech Academy", ManagerID: "user-mgr", Status: model.OrgActive,
	}))
	require.NoError(t, s.CreateUser(ctx, &model.User{
		ID: "user-1", FirstName: "Mara", LastName: "Quinn", Email: "mara@org1.test", Role: model.RoleManager,
	}))

	// A fresh store hydrated from the same file sees the same state.
	reopened, err := Open(path)
	require.NoError(t, err)

	orgs, err := reopened.ListOrganizations(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "Tech Academy", orgs[0].Name)

	users, err := reopened.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "mara@org1.test", users[0].Email)

	// Deletes are flushed too.
	require.NoError(t, reopened.DeleteOrganization(ctx, "org-1"))
	third, err := Open(path)
	require.NoError(t, err)
	orgs, err = third.ListOrganizations(ctx)
	require.NoError(t, err)
	assert.Empty(t, orgs)
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Organizations)
	assert.Empty(t, snap.Users)
	assert.Empty(t, snap.Courses)
	assert.Empty(t, snap.Enrollments)
}

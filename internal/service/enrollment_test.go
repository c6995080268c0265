package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/learnfield/campus/internal/domain"
	"github.com/learnfield/campus/internal/mocks"
	"github.com/learnfield/campus/internal/model"
	"github.com/learnfield/campus/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEnrollmentCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	student := &model.User{ID: "user-stu", Role: model.RoleStudent, Email: "stu@test"}
	instructor := &model.User{ID: "user-inst", Role: model.RoleInstructor, Email: "inst@test"}
	course := &model.Course{ID: "course-1", Title: "Go Basics", OrganizationID: "org-1"}

	t.Run("creates enrollment", func(t *testing.T) {
		enrollments := mocks.NewMockEnrollmentStore(ctrl)
		users := mocks.NewMockUserStore(ctrl)
		courses := mocks.NewMockCourseStore(ctrl)

		users.EXPECT().FindUser(gomock.Any(), "user-stu").Return(student, nil)
		courses.EXPECT().FindCourse(gomock.Any(), "course-1").Return(course, nil)
		enrollments.EXPECT().
			FindEnrollmentByStudentCourse(gomock.Any(), "user-stu", "course-1").
			Return(nil, domain.ErrEnrollmentNotFound)

		var stored *model.Enrollment
		enrollments.EXPECT().
			CreateEnrollment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *model.Enrollment) error {
				stored = e
				return nil
			})

		svc := service.NewEnrollmentService(enrollments, users, courses)
		got, err := svc.Create(ctx, service.CreateEnrollmentInput{
			StudentID: "user-stu",
			CourseID:  "course-1",
			Status:    model.EnrollmentActive,
			Progress:  25,
		})
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, got.ID, stored.ID)
		assert.Equal(t, 25, got.Progress)
		assert.False(t, got.EnrollmentDate.IsZero())
	})

	t.Run("rejects duplicate pair regardless of status", func(t *testing.T) {
		enrollments := mocks.NewMockEnrollmentStore(ctrl)
		users := mocks.NewMockUserStore(ctrl)
		courses := mocks.NewMockCourseStore(ctrl)

		users.EXPECT().FindUser(gomock.Any(), "user-stu").Return(student, nil)
		courses.EXPECT().FindCourse(gomock.Any(), "course-1").Return(course, nil)
		enrollments.EXPECT().
			FindEnrollmentByStudentCourse(gomock.Any(), "user-stu", "course-1").
			Return(&model.Enrollment{ID: "enr-1", Status: model.EnrollmentDropped}, nil)

		svc := service.NewEnrollmentService(enrollments, users, courses)
		_, err := svc.Create(ctx, service.CreateEnrollmentInput{
			StudentID: "user-stu",
			CourseID:  "course-1",
			Status:    model.EnrollmentActive,
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateEnrollment)
	})

	t.Run("rejects progress outside bounds", func(t *testing.T) {
		enrollments := mocks.NewMockEnrollmentStore(ctrl)
		users := mocks.NewMockUserStore(ctrl)
		courses := mocks.NewMockCourseStore(ctrl)

		svc := service.NewEnrollmentService(enrollments, users, courses)
		_, err := svc.Create(ctx, service.CreateEnrollmentInput{
			StudentID: "user-stu",
			CourseID:  "course-1",
			Status:    model.EnrollmentActive,
			Progress:  150,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "progress", verr.Fields[0].Field)
		assert.Equal(t, "max", verr.Fields[0].Rule)
	})

	t.Run("rejects non-student enrollee", func(t *testing.T) {
		enrollments := mocks.NewMockEnrollmentStore(ctrl)
		users := mocks.NewMockUserStore(ctrl)
		courses := mocks.NewMockCourseStore(ctrl)

		users.EXPECT().FindUser(gomock.Any(), "user-inst").Return(instructor, nil)

		svc := service.NewEnrollmentService(enrollments, users, courses)
		_, err := svc.Create(ctx, service.CreateEnrollmentInput{
			StudentID: "user-inst",
			CourseID:  "course-1",
			Status:    model.EnrollmentActive,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []domain.FieldError{{Field: "studentId", Rule: "student_role"}}, verr.Fields)
	})

	t.Run("rejects missing course", func(t *testing.T) {
		enrollments := mocks.NewMockEnrollmentStore(ctrl)
		users := mocks.NewMockUserStore(ctrl)
		courses := mocks.NewMockCourseStore(ctrl)

		users.EXPECT().FindUser(gomock.Any(), "user-stu").Return(student, nil)
		courses.EXPECT().FindCourse(gomock.Any(), "missing").Return(nil, domain.ErrCourseNotFound)

		svc := service.NewEnrollmentService(enrollments, users, courses)
		_, err := svc.Create(ctx, service.CreateEnrollmentInput{
			StudentID: "user-stu",
			CourseID:  "missing",
			Status:    model.EnrollmentActive,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []domain.FieldError{{Field: "courseId", Rule: "exists"}}, verr.Fields)
	})
}

func TestEnrollmentUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("merges partial input", func(t *testing.T) {
		enrollments := mocks.NewMockEnrollmentStore(ctrl)
		users := mocks.NewMockUserStore(ctrl)
		courses := mocks.NewMockCourseStore(ctrl)

		existing := &model.Enrollment{
			ID:        "enr-1",
			StudentID: "user-stu",
			CourseID:  "course-1",
			Status:    model.EnrollmentActive,
			Progress:  40,
		}
		enrollments.EXPECT().FindEnrollment(gomock.Any(), "enr-1").Return(existing, nil)
		enrollments.EXPECT().
			UpdateEnrollment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *model.Enrollment) error {
				assert.Equal(t, "enr-1", e.ID)
				assert.Equal(t, "user-stu", e.StudentID)
				assert.Equal(t, model.EnrollmentCompleted, e.Status)
				assert.Equal(t, 100, e.Progress)
				return nil
			})

		status := model.EnrollmentCompleted
		progress := 100
		svc := service.NewEnrollmentService(enrollments, users, courses)
		got, err := svc.Update(ctx, "enr-1", service.UpdateEnrollmentInput{Status: &status, Progress: &progress})
		require.NoError(t, err)
		assert.Equal(t, 100, got.Progress)
	})

	t.Run("rejects out-of-range progress before touching the store", func(t *testing.T) {
		enrollments := mocks.NewMockEnrollmentStore(ctrl)
		users := mocks.NewMockUserStore(ctrl)
		courses := mocks.NewMockCourseStore(ctrl)

		progress := -5
		svc := service.NewEnrollmentService(enrollments, users, courses)
		_, err := svc.Update(ctx, "enr-1", service.UpdateEnrollmentInput{Progress: &progress})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("not found surfaces unchanged", func(t *testing.T) {
		enrollments := mocks.NewMockEnrollmentStore(ctrl)
		users := mocks.NewMockUserStore(ctrl)
		courses := mocks.NewMockCourseStore(ctrl)

		enrollments.EXPECT().FindEnrollment(gomock.Any(), "missing").Return(nil, domain.ErrEnrollmentNotFound)

		svc := service.NewEnrollmentService(enrollments, users, courses)
		_, err := svc.Update(ctx, "missing", service.UpdateEnrollmentInput{})
		assert.ErrorIs(t, err, domain.ErrEnrollmentNotFound)
	})
}

func TestEnrollmentCreateStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	enrollments := mocks.NewMockEnrollmentStore(ctrl)
	users := mocks.NewMockUserStore(ctrl)
	courses := mocks.NewMockCourseStore(ctrl)

	users.EXPECT().FindUser(gomock.Any(), "user-stu").Return(&model.User{ID: "user-stu", Role: model.RoleStudent}, nil)
	courses.EXPECT().FindCourse(gomock.Any(), "course-1").Return(&model.Course{ID: "course-1"}, nil)
	enrollments.EXPECT().
		FindEnrollmentByStudentCourse(gomock.Any(), "user-stu", "course-1").
		Return(nil, domain.ErrEnrollmentNotFound)
	enrollments.EXPECT().CreateEnrollment(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	svc := service.NewEnrollmentService(enrollments, users, courses)
	_, err := svc.Create(context.Background(), service.CreateEnrollmentInput{
		StudentID: "user-stu",
		CourseID:  "course-1",
		Status:    model.EnrollmentActive,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating enrollment")
}

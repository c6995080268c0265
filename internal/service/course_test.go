package service_test

import (
	"context"
	"testing"

	"github.com/learnfield/campus/internal/domain"
	"github.com/learnfield/campus/internal/mocks"
	"github.com/learnfield/campus/internal/model"
	"github.com/learnfield/campus/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCourseCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	org := &model.Organization{ID: "org-1", Name: "Tech Academy"}
	instructor := &model.User{ID: "user-inst", Role: model.RoleInstructor}
	student := &model.User{ID: "user-stu", Role: model.RoleStudent}

	t.Run("creates course", func(t *testing.T) {
		courses := mocks.NewMockCourseStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)
		users := mocks.NewMockUserStore(ctrl)

		orgs.EXPECT().FindOrganization(gomock.Any(), "org-1").Return(org, nil)
		users.EXPECT().FindUser(gomock.Any(), "user-inst").Return(instructor, nil)
		courses.EXPECT().
			CreateCourse(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *model.Course) error {
				assert.NotEmpty(t, c.ID)
				assert.Equal(t, "Go Basics", c.Title)
				require.NotNil(t, c.Duration)
				assert.Equal(t, 12, *c.Duration)
				return nil
			})

		duration := 12
		svc := service.NewCourseService(courses, orgs, users)
		got, err := svc.Create(ctx, service.CreateCourseInput{
			Title:          "Go Basics",
			InstructorID:   "user-inst",
			OrganizationID: "org-1",
			Duration:       &duration,
			Status:         model.CourseActive,
		})
		require.NoError(t, err)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("rejects non-instructor", func(t *testing.T) {
		courses := mocks.NewMockCourseStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)
		users := mocks.NewMockUserStore(ctrl)

		orgs.EXPECT().FindOrganization(gomock.Any(), "org-1").Return(org, nil)
		users.EXPECT().FindUser(gomock.Any(), "user-stu").Return(student, nil)

		svc := service.NewCourseService(courses, orgs, users)
		_, err := svc.Create(ctx, service.CreateCourseInput{
			Title:          "Go Basics",
			InstructorID:   "user-stu",
			OrganizationID: "org-1",
			Status:         model.CourseActive,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []domain.FieldError{{Field: "instructorId", Rule: "instructor_role"}}, verr.Fields)
	})

	t.Run("rejects unknown organization", func(t *testing.T) {
		courses := mocks.NewMockCourseStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)
		users := mocks.NewMockUserStore(ctrl)

		orgs.EXPECT().FindOrganization(gomock.Any(), "missing").Return(nil, domain.ErrOrganizationNotFound)

		svc := service.NewCourseService(courses, orgs, users)
		_, err := svc.Create(ctx, service.CreateCourseInput{
			Title:          "Go Basics",
			InstructorID:   "user-inst",
			OrganizationID: "missing",
			Status:         model.CourseActive,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []domain.FieldError{{Field: "organizationId", Rule: "exists"}}, verr.Fields)
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		courses := mocks.NewMockCourseStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)
		users := mocks.NewMockUserStore(ctrl)

		duration := 0
		svc := service.NewCourseService(courses, orgs, users)
		_, err := svc.Create(ctx, service.CreateCourseInput{
			Title:          "Go Basics",
			InstructorID:   "user-inst",
			OrganizationID: "org-1",
			Duration:       &duration,
			Status:         model.CourseActive,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestCourseUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	existing := func() *model.Course {
		return &model.Course{
			ID:             "course-1",
			Title:          "Go Basics",
			InstructorID:   "user-inst",
			OrganizationID: "org-1",
			Status:         model.CourseDraft,
		}
	}

	t.Run("merges partial input", func(t *testing.T) {
		courses := mocks.NewMockCourseStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)
		users := mocks.NewMockUserStore(ctrl)

		courses.EXPECT().FindCourse(gomock.Any(), "course-1").Return(existing(), nil)
		courses.EXPECT().
			UpdateCourse(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *model.Course) error {
				assert.Equal(t, "course-1", c.ID)
				assert.Equal(t, model.CourseActive, c.Status)
				assert.Equal(t, "user-inst", c.InstructorID)
				return nil
			})

		status := model.CourseActive
		svc := service.NewCourseService(courses, orgs, users)
		got, err := svc.Update(ctx, "course-1", service.UpdateCourseInput{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, model.CourseActive, got.Status)
	})

	t.Run("new instructor must carry the role", func(t *testing.T) {
		courses := mocks.NewMockCourseStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)
		users := mocks.NewMockUserStore(ctrl)

		courses.EXPECT().FindCourse(gomock.Any(), "course-1").Return(existing(), nil)
		users.EXPECT().
			FindUser(gomock.Any(), "user-mgr").
			Return(&model.User{ID: "user-mgr", Role: model.RoleManager}, nil)

		instructorID := "user-mgr"
		svc := service.NewCourseService(courses, orgs, users)
		_, err := svc.Update(ctx, "course-1", service.UpdateCourseInput{InstructorID: &instructorID})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []domain.FieldError{{Field: "instructorId", Rule: "instructor_role"}}, verr.Fields)
	})

	t.Run("not found surfaces unchanged", func(t *testing.T) {
		courses := mocks.NewMockCourseStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)
		users := mocks.NewMockUserStore(ctrl)

		courses.EXPECT().FindCourse(gomock.Any(), "missing").Return(nil, domain.ErrCourseNotFound)

		svc := service.NewCourseService(courses, orgs, users)
		_, err := svc.Update(ctx, "missing", service.UpdateCourseInput{})
		assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	})
}

func TestCourseDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	courses := mocks.NewMockCourseStore(ctrl)
	orgs := mocks.NewMockOrganizationStore(ctrl)
	users := mocks.NewMockUserStore(ctrl)

	courses.EXPECT().DeleteCourse(gomock.Any(), "course-1").Return(nil)
	courses.EXPECT().DeleteCourse(gomock.Any(), "missing").Return(domain.ErrCourseNotFound)

	svc := service.NewCourseService(courses, orgs, users)
	assert.NoError(t, svc.Delete(context.Background(), "course-1"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), domain.ErrCourseNotFound)
}

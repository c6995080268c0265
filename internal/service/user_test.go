package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/learnfield/campus/internal/domain"
	"github.com/learnfield/campus/internal/mocks"
	"github.com/learnfield/campus/internal/model"
	"github.com/learnfield/campus/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("creates user with organization check", func(t *testing.T) {
		users := mocks.NewMockUserStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)

		users.EXPECT().FindUserByEmail(gomock.Any(), "sam@org1.test").Return(nil, domain.ErrUserNotFound)
		orgs.EXPECT().FindOrganization(gomock.Any(), "org-1").Return(&model.Organization{ID: "org-1"}, nil)
		users.EXPECT().
			CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *model.User) error {
				assert.NotEmpty(t, u.ID)
				assert.Equal(t, "sam@org1.test", u.Email)
				assert.False(t, u.CreatedAt.IsZero())
				return nil
			})

		svc := service.NewUserService(users, orgs)
		got, err := svc.Create(ctx, service.CreateUserInput{
			FirstName:      "Sam",
			LastName:       "Lee",
			Email:          "sam@org1.test",
			Role:           model.RoleStudent,
			OrganizationID: "org-1",
			Status:         model.UserActive,
		})
		require.NoError(t, err)
		assert.Equal(t, "Sam Lee", got.FullName())
		require.NotNil(t, got.LastActive)
	})

	t.Run("creates user without organization", func(t *testing.T) {
		users := mocks.NewMockUserStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)

		users.EXPECT().FindUserByEmail(gomock.Any(), "free@test.dev").Return(nil, domain.ErrUserNotFound)
		users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil)

		svc := service.NewUserService(users, orgs)
		_, err := svc.Create(ctx, service.CreateUserInput{
			FirstName: "No",
			LastName:  "Org",
			Email:     "free@test.dev",
			Role:      model.RoleAdmin,
			Status:    model.UserActive,
		})
		assert.NoError(t, err)
	})

	t.Run("rejects taken email before writing", func(t *testing.T) {
		users := mocks.NewMockUserStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)

		users.EXPECT().
			FindUserByEmail(gomock.Any(), "sam@org1.test").
			Return(&model.User{ID: "user-other", Email: "sam@org1.test"}, nil)

		svc := service.NewUserService(users, orgs)
		_, err := svc.Create(ctx, service.CreateUserInput{
			FirstName: "Sam",
			LastName:  "Lee",
			Email:     "sam@org1.test",
			Role:      model.RoleStudent,
			Status:    model.UserActive,
		})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("rejects unknown organization", func(t *testing.T) {
		users := mocks.NewMockUserStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)

		users.EXPECT().FindUserByEmail(gomock.Any(), "sam@org1.test").Return(nil, domain.ErrUserNotFound)
		orgs.EXPECT().FindOrganization(gomock.Any(), "missing").Return(nil, domain.ErrOrganizationNotFound)

		svc := service.NewUserService(users, orgs)
		_, err := svc.Create(ctx, service.CreateUserInput{
			FirstName:      "Sam",
			LastName:       "Lee",
			Email:          "sam@org1.test",
			Role:           model.RoleStudent,
			OrganizationID: "missing",
			Status:         model.UserActive,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []domain.FieldError{{Field: "organizationId", Rule: "exists"}}, verr.Fields)
	})

	t.Run("rejects malformed input without store calls", func(t *testing.T) {
		users := mocks.NewMockUserStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)

		svc := service.NewUserService(users, orgs)
		_, err := svc.Create(ctx, service.CreateUserInput{
			Email:  "not-an-email",
			Role:   "superuser",
			Status: model.UserActive,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)

		fields := map[string]string{}
		for _, f := range verr.Fields {
			fields[f.Field] = f.Rule
		}
		assert.Equal(t, "required", fields["firstName"])
		assert.Equal(t, "required", fields["lastName"])
		assert.Equal(t, "email", fields["email"])
		assert.Equal(t, "oneof", fields["role"])
	})
}

func TestUserUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	created := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	existing := func() *model.User {
		return &model.User{
			ID:        "user-1",
			FirstName: "Sam",
			LastName:  "Lee",
			Email:     "sam@org1.test",
			Role:      model.RoleStudent,
			Status:    model.UserActive,
			CreatedAt: created,
		}
	}

	t.Run("merges partial input and keeps identity", func(t *testing.T) {
		users := mocks.NewMockUserStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)

		users.EXPECT().FindUser(gomock.Any(), "user-1").Return(existing(), nil)
		users.EXPECT().
			UpdateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *model.User) error {
				assert.Equal(t, "user-1", u.ID)
				assert.Equal(t, created, u.CreatedAt)
				assert.Equal(t, "Samuel", u.FirstName)
				assert.Equal(t, "Lee", u.LastName)
				assert.Equal(t, "sam@org1.test", u.Email)
				return nil
			})

		first := "Samuel"
		svc := service.NewUserService(users, orgs)
		got, err := svc.Update(ctx, "user-1", service.UpdateUserInput{FirstName: &first})
		require.NoError(t, err)
		assert.Equal(t, "Samuel Lee", got.FullName())
	})

	t.Run("changed email is checked for conflicts", func(t *testing.T) {
		users := mocks.NewMockUserStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)

		users.EXPECT().FindUser(gomock.Any(), "user-1").Return(existing(), nil)
		users.EXPECT().
			FindUserByEmail(gomock.Any(), "taken@test.dev").
			Return(&model.User{ID: "user-2", Email: "taken@test.dev"}, nil)

		email := "taken@test.dev"
		svc := service.NewUserService(users, orgs)
		_, err := svc.Update(ctx, "user-1", service.UpdateUserInput{Email: &email})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("unchanged email skips the conflict check", func(t *testing.T) {
		users := mocks.NewMockUserStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)

		users.EXPECT().FindUser(gomock.Any(), "user-1").Return(existing(), nil)
		users.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)

		email := "sam@org1.test"
		svc := service.NewUserService(users, orgs)
		_, err := svc.Update(ctx, "user-1", service.UpdateUserInput{Email: &email})
		assert.NoError(t, err)
	})

	t.Run("clearing organization skips the existence check", func(t *testing.T) {
		users := mocks.NewMockUserStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)

		u := existing()
		u.OrganizationID = "org-1"
		users.EXPECT().FindUser(gomock.Any(), "user-1").Return(u, nil)
		users.EXPECT().
			UpdateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *model.User) error {
				assert.Empty(t, u.OrganizationID)
				return nil
			})

		empty := ""
		svc := service.NewUserService(users, orgs)
		_, err := svc.Update(ctx, "user-1", service.UpdateUserInput{OrganizationID: &empty})
		assert.NoError(t, err)
	})

	t.Run("not found surfaces unchanged", func(t *testing.T) {
		users := mocks.NewMockUserStore(ctrl)
		orgs := mocks.NewMockOrganizationStore(ctrl)

		users.EXPECT().FindUser(gomock.Any(), "missing").Return(nil, domain.ErrUserNotFound)

		svc := service.NewUserService(users, orgs)
		_, err := svc.Update(ctx, "missing", service.UpdateUserInput{})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserStore(ctrl)
	orgs := mocks.NewMockOrganizationStore(ctrl)

	users.EXPECT().DeleteUser(gomock.Any(), "user-1").Return(nil)
	users.EXPECT().DeleteUser(gomock.Any(), "missing").Return(domain.ErrUserNotFound)

	svc := service.NewUserService(users, orgs)
	assert.NoError(t, svc.Delete(context.Background(), "user-1"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), domain.ErrUserNotFound)
}

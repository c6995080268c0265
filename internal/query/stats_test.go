package query_test

import (
	"testing"

	"github.com/learnfield/campus/internal/model"
	"github.com/learnfield/campus/internal/query"
	"github.com/learnfield/campus/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	snap := testSnapshot()

	stats := query.Dashboard(snap)
	assert.Equal(t, query.Stats{
		Organizations:     3,
		Users:             5,
		Courses:           3,
		Enrollments:       3,
		ActiveEnrollments: 2,
	}, stats)

	empty := query.Dashboard(&store.Snapshot{})
	assert.Equal(t, query.Stats{}, empty)
}

func TestRecentOrganizations(t *testing.T) {
	snap := testSnapshot()

	got := query.RecentOrganizations(snap, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "org-2", got[0].ID)
	assert.Equal(t, "org-3", got[1].ID)

	// Asking for more than exists returns everything.
	all := query.RecentOrganizations(snap, 10)
	assert.Len(t, all, 3)

	// Creation-time ties keep insertion order.
	tied := &store.Snapshot{Organizations: []*model.Organization{
		{ID: "org-a", CreatedAt: base},
		{ID: "org-b", CreatedAt: base},
	}}
	got = query.RecentOrganizations(tied, 2)
	assert.Equal(t, "org-a", got[0].ID)
	assert.Equal(t, "org-b", got[1].ID)
}

func TestTopCourses(t *testing.T) {
	snap := testSnapshot()

	got := query.TopCourses(snap, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "course-1", got[0].Course.ID)
	assert.Equal(t, 2, got[0].Enrollments)
	assert.Equal(t, "course-3", got[1].Course.ID)
	assert.Equal(t, 1, got[1].Enrollments)

	t.Run("zero-enrollment courses still rank", func(t *testing.T) {
		all := query.TopCourses(snap, 10)
		require.Len(t, all, 3)
		assert.Equal(t, "course-2", all[2].Course.ID)
		assert.Equal(t, 0, all[2].Enrollments)
	})

	t.Run("ties keep course insertion order", func(t *testing.T) {
		tied := &store.Snapshot{
			Courses: []*model.Course{
				{ID: "course-a", CreatedAt: base},
				{ID: "course-b", CreatedAt: base},
			},
			Enrollments: []*model.Enrollment{
				{ID: "e1", CourseID: "course-a", EnrollmentDate: base},
				{ID: "e2", CourseID: "course-b", EnrollmentDate: base},
			},
		}
		got := query.TopCourses(tied, 2)
		assert.Equal(t, "course-a", got[0].Course.ID)
		assert.Equal(t, "course-b", got[1].Course.ID)
	})
}

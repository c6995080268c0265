// internal/query/stats.go
package query

import (
	"sort"

	"github.com/learnfield/campus/internal/model"
	"github.com/learnfield/campus/internal/store"
)

// Stats are the dashboard aggregates, recomputed per call from a snapshot.
type Stats struct {
	Organizations     int `json:"organizations"`
	Users             int `json:"users"`
	Courses           int `json:"courses"`
	Enrollments       int `json:"enrollments"`
	ActiveEnrollments int `json:"activeEnrollments"`
}

func Dashboard(snap *store.Snapshot) Stats {
	s := Stats{
		Organizations: len(snap.Organizations),
		Users:         len(snap.Users),
		Courses:       len(snap.Courses),
		Enrollments:   len(snap.Enrollments),
	}
	for _, e := range snap.Enrollments {
		if e.Status == model.EnrollmentActive {
			s.ActiveEnrollments++
		}
	}
	return s
}

// RecentOrganizations returns the n most recently created organizations,
// newest first, with insertion order breaking creation-time ties.
func RecentOrganizations(snap *store.Snapshot, n int) []*model.Organization {
	out := make([]*model.Organization, len(snap.Organizations))
	copy(out, snap.Organizations)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// CoursePopularity pairs a course with its enrollment count.
type CoursePopularity struct {
	Course      *model.Course `json:"course"`
	Enrollments int           `json:"enrollments"`
}

// TopCourses returns the n most enrolled courses, enrollment count
// descending, ties broken by course insertion order.
func TopCourses(snap *store.Snapshot, n int) []CoursePopularity {
	counts := map[string]int{}
	for _, e := range snap.Enrollments {
		counts[e.CourseID]++
	}

	out := make([]CoursePopularity, 0, len(snap.Courses))
	for _, c := range snap.Courses {
		out = append(out, CoursePopularity{Course: c, Enrollments: counts[c.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Enrollments > out[j].Enrollments
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// internal/query/query.go

// Package query computes derived views from an entity store snapshot:
// filtered and sorted listings, relationship lookups, and the dashboard
// aggregates. Every function is pure and re-evaluated per call; none of them
// mutate the snapshot.
package query

import (
	"sort"
	"strings"

	"github.com/learnfield/campus/internal/model"
	"github.com/learnfield/campus/internal/store"
)

// UsersByRole returns users with the given role, in insertion order.
func UsersByRole(snap *store.Snapshot, role model.UserRole) []*model.User {
	out := []*model.User{}
	for _, u := range snap.Users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// UsersByOrganization returns users belonging to the organization, in
// insertion order.
func UsersByOrganization(snap *store.Snapshot, orgID string) []*model.User {
	out := []*model.User{}
	for _, u := range snap.Users {
		if u.OrganizationID == orgID {
			out = append(out, u)
		}
	}
	return out
}

// CoursesByOrganization returns courses belonging to the organization, in
// insertion order.
func CoursesByOrganization(snap *store.Snapshot, orgID string) []*model.Course {
	out := []*model.Course{}
	for _, c := range snap.Courses {
		if c.OrganizationID == orgID {
			out = append(out, c)
		}
	}
	return out
}

// EnrollmentsByCourse returns enrollments referencing the course, in
// insertion order.
func EnrollmentsByCourse(snap *store.Snapshot, courseID string) []*model.Enrollment {
	out := []*model.Enrollment{}
	for _, e := range snap.Enrollments {
		if e.CourseID == courseID {
			out = append(out, e)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// managerName resolves an organization's manager to a display name. Absent
// managers sort and render as the empty string.
func managerName(snap *store.Snapshot, managerID string) string {
	for _, u := range snap.Users {
		if u.ID == managerID {
			return u.FullName()
		}
	}
	return ""
}

// OrganizationFilter selects and orders organizations for a listing view.
// Sort keys: "name" (default), "date" (newest first), "manager" (joined
// manager name ascending, absent first).
type OrganizationFilter struct {
	Search string
	Status model.OrgStatus
	SortBy string
}

func Organizations(snap *store.Snapshot, f OrganizationFilter) []*model.Organization {
	out := []*model.Organization{}
	for _, org := range snap.Organizations {
		if f.Search != "" &&
			!containsFold(org.Name, f.Search) &&
			!containsFold(org.Address, f.Search) &&
			!containsFold(org.Email, f.Search) {
			continue
		}
		if f.Status != "" && org.Status != f.Status {
			continue
		}
		out = append(out, org)
	}

	switch f.SortBy {
	case "date":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case "manager":
		sort.SliceStable(out, func(i, j int) bool {
			a := strings.ToLower(managerName(snap, out[i].ManagerID))
			b := strings.ToLower(managerName(snap, out[j].ManagerID))
			return a < b
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out
}

// UserFilter selects and orders users for a listing view. Sort keys: "name"
// (default, full name ascending) and "date" (newest first).
type UserFilter struct {
	Search         string
	Role           model.UserRole
	OrganizationID string
	Status         model.UserStatus
	SortBy         string
}

func Users(snap *store.Snapshot, f UserFilter) []*model.User {
	out := []*model.User{}
	for _, u := range snap.Users {
		if f.Search != "" &&
			!containsFold(u.FullName(), f.Search) &&
			!containsFold(u.Email, f.Search) {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.OrganizationID != "" && u.OrganizationID != f.OrganizationID {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		out = append(out, u)
	}

	switch f.SortBy {
	case "date":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].FullName()) < strings.ToLower(out[j].FullName())
		})
	}
	return out
}

// CourseFilter selects and orders courses for a listing view. Sort keys:
// "title" (default) and "date" (newest first).
type CourseFilter struct {
	Search         string
	OrganizationID string
	Status         model.CourseStatus
	SortBy         string
}

func Courses(snap *store.Snapshot, f CourseFilter) []*model.Course {
	out := []*model.Course{}
	for _, c := range snap.Courses {
		if f.Search != "" &&
			!containsFold(c.Title, f.Search) &&
			!containsFold(c.Description, f.Search) {
			continue
		}
		if f.OrganizationID != "" && c.OrganizationID != f.OrganizationID {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		out = append(out, c)
	}

	switch f.SortBy {
	case "date":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	}
	return out
}

// EnrollmentFilter selects enrollments for a listing view. Search matches the
// joined student's name or email; an enrollment whose student no longer
// resolves never matches a non-empty search. Results are newest first.
type EnrollmentFilter struct {
	Search    string
	CourseID  string
	StudentID string
	Status    model.EnrollmentStatus
}

func Enrollments(snap *store.Snapshot, f EnrollmentFilter) []*model.Enrollment {
	students := map[string]*model.User{}
	for _, u := range snap.Users {
		students[u.ID] = u
	}

	out := []*model.Enrollment{}
	for _, e := range snap.Enrollments {
		if f.Search != "" {
			student := students[e.StudentID]
			if student == nil {
				continue
			}
			if !containsFold(student.FullName(), f.Search) && !containsFold(student.Email, f.Search) {
				continue
			}
		}
		if f.CourseID != "" && e.CourseID != f.CourseID {
			continue
		}
		if f.StudentID != "" && e.StudentID != f.StudentID {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EnrollmentDate.After(out[j].EnrollmentDate)
	})
	return out
}

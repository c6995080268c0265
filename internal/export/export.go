// internal/export/export.go

// Package export builds flat, stably-named record tables from an entity
// snapshot and encodes them as downloadable artifacts. Joined display fields
// (manager, instructor, organization, student) are resolved here; references
// the cascade model lets dangle render with an explicit fallback.
package export

import (
	"fmt"
	"strconv"

	"github.com/learnfield/campus/internal/model"
	"github.com/learnfield/campus/internal/query"
	"github.com/learnfield/campus/internal/store"
)

// Table is the contract handed to encoders: an ordered header row plus rows
// whose cells line up with it.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

const dateLayout = "2006-01-02"

func userName(users []*model.User, id, fallback string) string {
	for _, u := range users {
		if u.ID == id {
			return u.FullName()
		}
	}
	return fallback
}

func orgName(orgs []*model.Organization, id string) string {
	for _, o := range orgs {
		if o.ID == id {
			return o.Name
		}
	}
	return "No organization"
}

// Organizations builds the organization export view, one row per
// organization in the given order.
func Organizations(snap *store.Snapshot, orgs []*model.Organization) Table {
	t := Table{
		Title:   "Organizations",
		Headers: []string{"Name", "Manager", "Address", "Phone", "Email", "Status", "Courses", "Users", "Created"},
	}
	for _, org := range orgs {
		t.Rows = append(t.Rows, []string{
			org.Name,
			userName(snap.Users, org.ManagerID, "No manager"),
			org.Address,
			org.Phone,
			org.Email,
			string(org.Status),
			strconv.Itoa(len(query.CoursesByOrganization(snap, org.ID))),
			strconv.Itoa(len(query.UsersByOrganization(snap, org.ID))),
			org.CreatedAt.Format(dateLayout),
		})
	}
	return t
}

// Users builds the user export view.
func Users(snap *store.Snapshot, users []*model.User) Table {
	t := Table{
		Title:   "Users",
		Headers: []string{"Name", "Email", "Role", "Organization", "Phone", "Status", "Last Active", "Created"},
	}
	for _, u := range users {
		lastActive := "Never"
		if u.LastActive != nil {
			lastActive = u.LastActive.Format(dateLayout)
		}
		t.Rows = append(t.Rows, []string{
			u.FullName(),
			u.Email,
			string(u.Role),
			orgName(snap.Organizations, u.OrganizationID),
			u.Phone,
			string(u.Status),
			lastActive,
			u.CreatedAt.Format(dateLayout),
		})
	}
	return t
}

// Courses builds the course export view.
func Courses(snap *store.Snapshot, courses []*model.Course) Table {
	t := Table{
		Title:   "Courses",
		Headers: []string{"Title", "Description", "Instructor", "Organization", "Duration", "Max Students", "Current Enrollments", "Status", "Created"},
	}
	for _, c := range courses {
		duration := ""
		if c.Duration != nil {
			duration = fmt.Sprintf("%d weeks", *c.Duration)
		}
		maxStudents := ""
		if c.MaxStudents != nil {
			maxStudents = strconv.Itoa(*c.MaxStudents)
		}
		t.Rows = append(t.Rows, []string{
			c.Title,
			c.Description,
			userName(snap.Users, c.InstructorID, "No instructor"),
			orgName(snap.Organizations, c.OrganizationID),
			duration,
			maxStudents,
			strconv.Itoa(len(query.EnrollmentsByCourse(snap, c.ID))),
			string(c.Status),
			c.CreatedAt.Format(dateLayout),
		})
	}
	return t
}

// Enrollments builds the enrollment export view with student, course,
// instructor and organization all joined in.
func Enrollments(snap *store.Snapshot, enrollments []*model.Enrollment) Table {
	t := Table{
		Title:   "Enrollments",
		Headers: []string{"Student", "Student Email", "Course", "Instructor", "Organization", "Status", "Progress", "Enrollment Date"},
	}

	courses := map[string]*model.Course{}
	for _, c := range snap.Courses {
		courses[c.ID] = c
	}
	studentEmails := map[string]string{}
	for _, u := range snap.Users {
		studentEmails[u.ID] = u.Email
	}

	for _, e := range enrollments {
		courseTitle := "Unknown"
		instructor := "No instructor"
		organization := "No organization"
		if c := courses[e.CourseID]; c != nil {
			courseTitle = c.Title
			instructor = userName(snap.Users, c.InstructorID, "No instructor")
			organization = orgName(snap.Organizations, c.OrganizationID)
		}
		t.Rows = append(t.Rows, []string{
			userName(snap.Users, e.StudentID, "Unknown"),
			studentEmails[e.StudentID],
			courseTitle,
			instructor,
			organization,
			string(e.Status),
			fmt.Sprintf("%d%%", e.Progress),
			e.EnrollmentDate.Format(dateLayout),
		})
	}
	return t
}

package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Wire types mirror the API's JSON payloads.

type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	ManagerID string    `json:"managerId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type User struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	Role           string     `json:"role"`
	OrganizationID string     `json:"organizationId,omitempty"`
	Status         string     `json:"status"`
	LastActive     *time.Time `json:"lastActive,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type Course struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	InstructorID   string    `json:"instructorId"`
	OrganizationID string    `json:"organizationId"`
	Duration       *int      `json:"duration,omitempty"`
	MaxStudents    *int      `json:"maxStudents,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Enrollment struct {
	ID             string    `json:"id"`
	StudentID      string    `json:"studentId"`
	CourseID       string    `json:"courseId"`
	Status         string    `json:"status"`
	Progress       int       `json:"progress"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
}

// ListFilter carries the common listing query parameters. Zero values are
// omitted from the request.
type ListFilter struct {
	Search         string
	Status         string
	Sort           string
	Role           string
	OrganizationID string
	CourseID       string
	StudentID      string
}

func (f ListFilter) values() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("search", f.Search)
	set("status", f.Status)
	set("sort", f.Sort)
	set("role", f.Role)
	set("organizationId", f.OrganizationID)
	set("courseId", f.CourseID)
	set("studentId", f.StudentID)
	return q
}

// Organizations

func (c *Client) ListOrganizations(ctx context.Context, filter ListFilter) ([]Organization, error) {
	out := []Organization{}
	err := c.list(ctx, "/api/organizations", filter.values(), &out)
	return out, err
}

func (c *Client) CreateOrganization(ctx context.Context, org Organization) (*Organization, error) {
	var out Organization
	if err := c.do(ctx, http.MethodPost, "/api/organizations", nil, org, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrganization(ctx context.Context, id string, partial map[string]any) (*Organization, error) {
	var out Organization
	if err := c.do(ctx, http.MethodPut, "/api/organizations/"+url.PathEscape(id), nil, partial, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOrganization(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/organizations/"+url.PathEscape(id), nil, nil, nil)
}

// Users

func (c *Client) ListUsers(ctx context.Context, filter ListFilter) ([]User, error) {
	out := []User{}
	err := c.list(ctx, "/api/users", filter.values(), &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, user User) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/api/users", nil, user, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, partial map[string]any) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), nil, partial, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil, nil, nil)
}

// Courses

func (c *Client) ListCourses(ctx context.Context, filter ListFilter) ([]Course, error) {
	out := []Course{}
	err := c.list(ctx, "/api/courses", filter.values(), &out)
	return out, err
}

func (c *Client) CreateCourse(ctx context.Context, course Course) (*Course, error) {
	var out Course
	if err := c.do(ctx, http.MethodPost, "/api/courses", nil, course, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id string, partial map[string]any) (*Course, error) {
	var out Course
	if err := c.do(ctx, http.MethodPut, "/api/courses/"+url.PathEscape(id), nil, partial, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/courses/"+url.PathEscape(id), nil, nil, nil)
}

// Enrollments

func (c *Client) ListEnrollments(ctx context.Context, filter ListFilter) ([]Enrollment, error) {
	out := []Enrollment{}
	err := c.list(ctx, "/api/enrollments", filter.values(), &out)
	return out, err
}

func (c *Client) CreateEnrollment(ctx context.Context, enrollment Enrollment) (*Enrollment, error) {
	var out Enrollment
	if err := c.do(ctx, http.MethodPost, "/api/enrollments", nil, enrollment, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEnrollment(ctx context.Context, id string, partial map[string]any) (*Enrollment, error) {
	var out Enrollment
	if err := c.do(ctx, http.MethodPut, "/api/enrollments/"+url.PathEscape(id), nil, partial, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEnrollment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/enrollments/"+url.PathEscape(id), nil, nil, nil)
}

// Stats

type Stats struct {
	Organizations     int `json:"organizations"`
	Users             int `json:"users"`
	Courses           int `json:"courses"`
	Enrollments       int `json:"enrollments"`
	ActiveEnrollments int `json:"activeEnrollments"`
}

type CoursePopularity struct {
	Course      Course `json:"course"`
	Enrollments int    `json:"enrollments"`
}

type Dashboard struct {
	Stats               Stats              `json:"stats"`
	RecentOrganizations []Organization     `json:"recentOrganizations"`
	TopCourses          []CoursePopularity `json:"topCourses"`
}

// GetDashboard fetches the dashboard aggregates. As a read it degrades to a
// zero-valued dashboard when the API is unreachable.
func (c *Client) GetDashboard(ctx context.Context) (*Dashboard, error) {
	out := Dashboard{}
	if err := c.list(ctx, "/api/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

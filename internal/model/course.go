// internal/model/course.go
package model

import (
	"time"
)

type CourseStatus string

const (
	CourseDraft    CourseStatus = "draft"
	CourseActive   CourseStatus = "active"
	CourseInactive CourseStatus = "inactive"
)

type Course struct {
	ID             string       `gorm:"type:text;primaryKey" json:"id"`
	Title          string       `gorm:"type:text;not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description,omitempty"`
	InstructorID   string       `gorm:"type:text;not null" json:"instructorId"`
	OrganizationID string       `gorm:"type:text;not null" json:"organizationId"`
	Duration       *int         `json:"duration,omitempty"`
	MaxStudents    *int         `json:"maxStudents,omitempty"`
	Status         CourseStatus `gorm:"type:text;not null;default:'draft'" json:"status"`
	CreatedAt      time.Time    `json:"createdAt"`
}

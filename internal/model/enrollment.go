// internal/model/enrollment.go
package model

import (
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

type Enrollment struct {
	ID             string           `gorm:"type:text;primaryKey" json:"id"`
	StudentID      string           `gorm:"type:text;not null;index:idx_enrollments_student_course" json:"studentId"`
	CourseID       string           `gorm:"type:text;not null;index:idx_enrollments_student_course" json:"courseId"`
	Status         EnrollmentStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	Progress       int              `gorm:"not null;default:0" json:"progress"`
	EnrollmentDate time.Time        `json:"enrollmentDate"`
}

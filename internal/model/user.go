// internal/model/user.go
package model

import (
	"time"
)

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleManager    UserRole = "manager"
	RoleInstructor UserRole = "instructor"
	RoleSupport    UserRole = "support"
	RoleStudent    UserRole = "student"
)

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

type User struct {
	ID             string     `gorm:"type:text;primaryKey" json:"id"`
	FirstName      string     `gorm:"type:text;not null" json:"firstName"`
	LastName       string     `gorm:"type:text;not null" json:"lastName"`
	Email          string     `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Phone          string     `gorm:"type:text" json:"phone,omitempty"`
	Role           UserRole   `gorm:"type:text;not null;default:'student'" json:"role"`
	OrganizationID string     `gorm:"type:text" json:"organizationId,omitempty"`
	Status         UserStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	LastActive     *time.Time `json:"lastActive,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// FullName is the display form used by joined views and exports.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

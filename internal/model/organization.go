// internal/model/organization.go
package model

import (
	"time"
)

type OrgStatus string

const (
	OrgActive   OrgStatus = "active"
	OrgInactive OrgStatus = "inactive"
)

type Organization struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address,omitempty"`
	Phone     string    `gorm:"type:text" json:"phone,omitempty"`
	Email     string    `gorm:"type:text" json:"email,omitempty"`
	ManagerID string    `gorm:"type:text;not null" json:"managerId"`
	Status    OrgStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

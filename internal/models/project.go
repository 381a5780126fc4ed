package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ProjectStatusPublished = "Published"
	ProjectStatusDraft     = "Draft"
)

// Project ids are opaque and only unique within the owner's list, so the
// primary key is (user_id, id).
type Project struct {
	UserID      uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"-"`
	ID          string                      `gorm:"size:64;primaryKey" json:"id"`
	Title       string                      `gorm:"size:200;not null" json:"title"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Tech        datatypes.JSONSlice[string] `json:"tech"`
	Image       string                      `gorm:"size:500" json:"image,omitempty"`
	Github      string                      `gorm:"size:500" json:"github,omitempty"`
	Live        string                      `gorm:"size:500" json:"live,omitempty"`
	Status      string                      `gorm:"size:20;not null;default:'Draft';index" json:"status"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

func (Project) TableName() string {
	return "projects"
}

// IsPublished reports whether the project belongs on the public page.
func (p Project) IsPublished() bool {
	return p.Status == ProjectStatusPublished
}

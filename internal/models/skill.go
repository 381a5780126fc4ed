package models

import (
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	ID          string    `gorm:"size:64;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Category    string    `gorm:"size:100;not null" json:"category"`
	Proficiency int       `gorm:"not null;default:0" json:"proficiency"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Skill) TableName() string {
	return "skills"
}

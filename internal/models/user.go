package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User owns a portfolio. Email and username are globally unique; the
// storage layer enforces both through unique indexes.
type User struct {
	ID              uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string                    `gorm:"size:100;not null" json:"name"`
	Email           string                    `gorm:"size:255;not null;uniqueIndex:idx_users_email" json:"email"`
	Username        string                    `gorm:"size:30;not null;uniqueIndex:idx_users_username" json:"username"`
	DisplayUsername string                    `gorm:"size:30" json:"displayUsername,omitempty"`
	Password        string                    `gorm:"not null" json:"-"`
	IsActive        bool                      `gorm:"not null;default:true" json:"isActive"`
	About           datatypes.JSONType[About] `json:"about"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       time.Time                 `json:"updatedAt"`
}

// About is the free-form profile section rendered at the top of a portfolio.
type About struct {
	Title    string `json:"title"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Avatar   string `json:"avatar"`
	Resume   string `json:"resume"`
	Social   Social `json:"social"`
}

type Social struct {
	Github   string `json:"github"`
	Linkedin string `json:"linkedin"`
	Twitter  string `json:"twitter"`
	Website  string `json:"website"`
}

// BeforeCreate ensures UUID is set before creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a contact-form submission from a portfolio visitor.
type Message struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	ToUsername string    `gorm:"size:30;not null" json:"toUsername"`
	FromName   string    `gorm:"size:100;not null" json:"fromName"`
	FromEmail  string    `gorm:"size:255;not null" json:"fromEmail"`
	Subject    string    `gorm:"size:200;not null" json:"subject"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	IsRead     bool      `gorm:"not null;default:false" json:"isRead"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (Message) TableName() string {
	return "messages"
}

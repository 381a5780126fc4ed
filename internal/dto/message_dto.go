package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
	"github.com/google/uuid"
)

type SendMessageRequest struct {
	ToUsername string `json:"toUsername"`
	FromName   string `json:"fromName"`
	FromEmail  string `json:"fromEmail"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
}

// UpdateMessageRequest sets isRead; an absent value toggles it.
type UpdateMessageRequest struct {
	IsRead *bool `json:"isRead"`
}

// SentMessage is what an anonymous sender gets back; the recipient's
// account id stays private.
type SentMessage struct {
	ID         uuid.UUID `json:"id"`
	ToUsername string    `json:"toUsername"`
	Subject    string    `json:"subject"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewSentMessage(m *models.Message) *SentMessage {
	return &SentMessage{
		ID:         m.ID,
		ToUsername: m.ToUsername,
		Subject:    m.Subject,
		CreatedAt:  m.CreatedAt,
	}
}

type SendMessageResponse struct {
	Message string       `json:"message"`
	Data    *SentMessage `json:"data"`
}

type MessageListResponse struct {
	Messages    []models.Message `json:"messages"`
	UnreadCount int64            `json:"unreadCount"`
}

type UpdateMessageResponse struct {
	Message string          `json:"message"`
	Data    *models.Message `json:"data"`
}

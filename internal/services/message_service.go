package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/owner"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// Send stores a visitor's message for the owner of ToUsername. Nothing is
// written when the recipient does not exist.
func (s *MessageService) Send(ctx context.Context, req *dto.SendMessageRequest) (*models.Message, error) {
	toUsername := strings.TrimSpace(req.ToUsername)
	fromName := strings.TrimSpace(req.FromName)
	fromEmail := normalizeEmail(req.FromEmail)
	subject := strings.TrimSpace(req.Subject)
	body := strings.TrimSpace(req.Body)

	if blank(toUsername, fromName, fromEmail, subject, body) {
		return nil, invalid("All fields are required")
	}
	if err := ValidateEmail(fromEmail); err != nil {
		return nil, err
	}

	var recipient models.User
	if err := s.db.WithContext(ctx).Select("id", "username").
		Where("username = ?", toUsername).
		First(&recipient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve recipient: %w", err)
	}

	msg := &models.Message{
		UserID:     recipient.ID,
		ToUsername: recipient.Username,
		FromName:   fromName,
		FromEmail:  fromEmail,
		Subject:    subject,
		Body:       body,
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	metrics.MessagesReceived.Inc()
	return msg, nil
}

// List returns the owner's inbox newest first with the unread count.
func (s *MessageService) List(ctx context.Context, userID uuid.UUID) ([]models.Message, int64, error) {
	messages := []models.Message{}
	db := s.db.WithContext(ctx)
	if err := db.Scopes(owner.ForUser(userID)).Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}

	var unread int64
	for _, m := range messages {
		if !m.IsRead {
			unread++
		}
	}
	return messages, unread, nil
}

// SetRead sets the read flag, or flips it when isRead is nil. Messages owned
// by someone else are reported as missing.
func (s *MessageService) SetRead(ctx context.Context, userID, messageID uuid.UUID, isRead *bool) (*models.Message, error) {
	var msg models.Message
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(owner.ForUser(userID)).Where("id = ?", messageID).First(&msg).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMessageNotFound
			}
			return err
		}

		next := !msg.IsRead
		if isRead != nil {
			next = *isRead
		}
		if err := tx.Model(&models.Message{}).Where("id = ?", msg.ID).Update("is_read", next).Error; err != nil {
			return err
		}
		msg.IsRead = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update message: %w", err)
	}
	return &msg, nil
}

func (s *MessageService) Delete(ctx context.Context, userID, messageID uuid.UUID) error {
	result := s.db.WithContext(ctx).Scopes(owner.ForUser(userID)).
		Where("id = ?", messageID).
		Delete(&models.Message{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

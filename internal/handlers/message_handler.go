package handlers

import (
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send accepts a contact-form submission from any visitor.
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errInvalidBody)
	}

	msg, err := h.messageService.Send(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SendMessageResponse{
		Message: "Message sent successfully",
		Data:    dto.NewSentMessage(msg),
	})
}

func (h *MessageHandler) List(c *fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return fail(c, err)
	}

	messages, unread, err := h.messageService.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageListResponse{Messages: messages, UnreadCount: unread})
}

func (h *MessageHandler) Update(c *fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return fail(c, err)
	}
	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, services.ErrMessageNotFound)
	}

	var req dto.UpdateMessageRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fail(c, errInvalidBody)
		}
	}

	msg, err := h.messageService.SetRead(c.UserContext(), userID, messageID, req.IsRead)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.UpdateMessageResponse{Message: "Message updated successfully", Data: msg})
}

func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return fail(c, err)
	}
	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, services.ErrMessageNotFound)
	}

	if err := h.messageService.Delete(c.UserContext(), userID, messageID); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Message deleted successfully"})
}

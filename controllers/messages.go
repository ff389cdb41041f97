package controllers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mindhaven/mindhaven-api/db"
	"github.com/mindhaven/mindhaven-api/models"
	"github.com/mindhaven/mindhaven-api/utils"
	"gorm.io/gorm/clause"
)

// SenderInfo is the joined sender profile on a message payload: a singular
// object or null, never an array.
type SenderInfo struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
	Role      string `json:"role"`
}

// MessagePayload is the wire shape of one message row with its sender join
// normalized.
type MessagePayload struct {
	ID             string               `json:"id"`
	ConversationID string               `json:"conversation_id"`
	SenderID       string               `json:"sender_id"`
	Author         models.MessageAuthor `json:"author"`
	Text           string               `json:"text"`
	At             time.Time            `json:"at"`
	Sender         *SenderInfo          `json:"sender"`
}

// normalizeSender collapses the join result at the boundary: an absent or
// empty profile becomes nil, anything else a single object.
func normalizeSender(p *models.UserProfile) *SenderInfo {
	if p == nil || p.ID == "" {
		return nil
	}
	return &SenderInfo{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		AvatarURL: p.AvatarURL,
		Role:      string(p.Role),
	}
}

func toPayloads(messages []models.Message) []MessagePayload {
	payloads := make([]MessagePayload, 0, len(messages))
	for i := range messages {
		m := &messages[i]
		payloads = append(payloads, MessagePayload{
			ID:             m.ID,
			ConversationID: m.ConversationID,
			SenderID:       m.SenderID,
			Author:         m.Author,
			Text:           m.Text,
			At:             m.At,
			Sender:         normalizeSender(&m.Sender),
		})
	}
	return payloads
}

// doctorReplyText is the canned reply a provider's conversation answers
// with until real two-sided delivery exists.
func doctorReplyText(doctorFullName string) string {
	return fmt.Sprintf("Hello, I'm %s. I am currently not available. How may I help you?", doctorFullName)
}

// buildMessagePair constructs the seeker's message and the canned doctor
// reply. The reply is stamped strictly after the user's message so
// ascending order by timestamp is deterministic.
func buildMessagePair(conversationID, userID, doctorID, text, doctorFullName string, now time.Time) []models.Message {
	return []models.Message{
		{
			ConversationID: conversationID,
			SenderID:       userID,
			Author:         models.AuthorUser,
			Text:           text,
			At:             now,
		},
		{
			ConversationID: conversationID,
			SenderID:       doctorID,
			Author:         models.AuthorDoctor,
			Text:           doctorReplyText(doctorFullName),
			At:             now.Add(time.Millisecond),
		},
	}
}

// GetMessages returns the full ordered history for one conversation.
// Accepts conversationId or doctorId (the deterministic conversation key).
func GetMessages(c *fiber.Ctx) error {
	conversationID := c.Query("conversationId")
	if conversationID == "" {
		conversationID = c.Query("doctorId")
	}

	query := db.DB.Preload("Sender").Order("at asc")
	if conversationID != "" {
		query = query.Where("conversation_id = ?", conversationID)
	}

	var messages []models.Message
	if err := query.Find(&messages).Error; err != nil {
		log.Printf("Error fetching messages: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": toPayloads(messages),
	})
}

// SendMessage writes the caller's message plus the canned doctor reply.
// Validation happens before any storage call: blank text never produces a
// row.
func SendMessage(c *fiber.Ctx) error {
	type SendInput struct {
		ConversationID string `json:"conversationId"`
		DoctorID       string `json:"doctorId"`
		UserID         string `json:"userId"`
		Text           string `json:"text"`
	}

	input := new(SendInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	text := strings.TrimSpace(input.Text)
	if input.DoctorID == "" || input.UserID == "" || text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "doctorId, userId and text are required.",
		})
	}

	// The doctor profile must exist so the reply can be personalized.
	var doctor models.UserProfile
	if err := db.DB.First(&doctor, "id = ?", input.DoctorID).Error; err != nil {
		log.Printf("Error fetching doctor profile: %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unable to find doctor profile.",
		})
	}

	conversationID := strings.TrimSpace(input.ConversationID)
	if conversationID == "" {
		conversationID = input.DoctorID
	}

	// Ensure the conversation row exists using the deterministic id.
	conversation := models.Conversation{
		ID:          conversationID,
		SeekerID:    input.UserID,
		ProviderID:  input.DoctorID,
		DisplayName: doctor.FullName(),
		Avatar:      doctor.AvatarURL,
	}
	if err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&conversation).Error; err != nil {
		log.Printf("Error ensuring conversation exists: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to prepare conversation.",
		})
	}

	pair := buildMessagePair(conversationID, input.UserID, input.DoctorID, text, doctor.FullName(), time.Now().UTC())
	if err := db.DB.Create(&pair).Error; err != nil {
		log.Printf("Error storing messages: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to store messages.",
		})
	}

	var stored []models.Message
	if err := db.DB.Preload("Sender").
		Where("id IN ?", []string{pair[0].ID, pair[1].ID}).
		Order("at asc").
		Find(&stored).Error; err != nil {
		log.Printf("Error reloading messages: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to store messages.",
		})
	}

	return c.JSON(fiber.Map{
		"conversationId": conversationID,
		"data":           toPayloads(stored),
		"doctor": fiber.Map{
			"id":         doctor.ID,
			"first_name": doctor.FirstName,
			"last_name":  doctor.LastName,
			"avatar_url": doctor.AvatarURL,
		},
	})
}

// GetConversations returns list previews for every conversation the user
// participates in, latest activity first.
func GetConversations(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userId is required.",
		})
	}

	var conversations []models.Conversation
	if err := db.DB.
		Where("seeker_id = ? OR provider_id = ?", userID, userID).
		Find(&conversations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ids := make([]string, 0, len(conversations))
	for _, conv := range conversations {
		ids = append(ids, conv.ID)
	}

	var messages []models.Message
	if len(ids) > 0 {
		if err := db.DB.Where("conversation_id IN ?", ids).Find(&messages).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"data": models.BuildPreviews(conversations, messages),
	})
}

// EnsureConversation idempotently creates a zero-message placeholder so a
// conversation shows in the list before the first message is sent.
func EnsureConversation(c *fiber.Ctx) error {
	type EnsureInput struct {
		ID         string `json:"id"`
		SeekerID   string `json:"seekerId"`
		ProviderID string `json:"providerId"`
		Name       string `json:"name"`
		Avatar     string `json:"avatar"`
	}

	input := new(EnsureInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.ID == "" || input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id and name are required.",
		})
	}

	conversation := models.Conversation{
		ID:          input.ID,
		SeekerID:    input.SeekerID,
		ProviderID:  input.ProviderID,
		DisplayName: input.Name,
		Avatar:      input.Avatar,
	}
	if err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&conversation).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to ensure conversation",
			Error:   err.Error(),
		})
	}

	var stored models.Conversation
	if err := db.DB.First(&stored, "id = ?", input.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(stored)
}

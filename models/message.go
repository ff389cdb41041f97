package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageAuthor string

const (
	AuthorUser   MessageAuthor = "user"   // seeker-authored
	AuthorDoctor MessageAuthor = "doctor" // provider-authored
)

// Conversation is the stable key grouping messages between one seeker and
// one provider. Its id is deterministic: the provider's profile id, unless
// the client supplied its own. DisplayName/Avatar describe the counterparty
// shown in the list for whoever created the entry.
type Conversation struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	SeekerID    string    `json:"seeker_id"`
	ProviderID  string    `json:"provider_id"`
	DisplayName string    `json:"display_name"`
	Avatar      string    `json:"avatar"`
	CreatedAt   time.Time `json:"created_at"`
}

// Message is one chat line. Immutable once created; ordered by At ascending
// within a conversation.
type Message struct {
	ID             string        `json:"id" gorm:"primaryKey"`
	ConversationID string        `json:"conversation_id" gorm:"index"`
	SenderID       string        `json:"sender_id"`
	Sender         UserProfile   `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Author         MessageAuthor `json:"author"`
	Text           string        `json:"text"`
	At             time.Time     `json:"at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.At.IsZero() {
		m.At = time.Now().UTC()
	}
	return nil
}

// PlaceholderPreview is shown for conversations that exist but have no
// messages yet.
const PlaceholderPreview = "Say hello to start the conversation"

// ConversationPreview is derived, never persisted: the latest message per
// conversation for the messages list screen.
type ConversationPreview struct {
	ConversationID string    `json:"conversation_id"`
	Name           string    `json:"name"`
	Avatar         string    `json:"avatar"`
	Preview        string    `json:"preview"`
	LastUpdated    time.Time `json:"last_updated"`
}

// BuildPreviews derives one preview entry per conversation: a linear scan
// keeping the message with the maximum timestamp, then previews sorted by
// that timestamp descending. Conversations without messages fall back to a
// placeholder line dated at conversation creation. Duplicate conversation
// rows collapse to a single entry.
func BuildPreviews(conversations []Conversation, messages []Message) []ConversationPreview {
	latest := make(map[string]Message)
	for _, m := range messages {
		current, ok := latest[m.ConversationID]
		if !ok || m.At.After(current.At) {
			latest[m.ConversationID] = m
		}
	}

	seen := make(map[string]bool)
	previews := make([]ConversationPreview, 0, len(conversations))
	for _, conv := range conversations {
		if seen[conv.ID] {
			continue
		}
		seen[conv.ID] = true
		preview := ConversationPreview{
			ConversationID: conv.ID,
			Name:           conv.DisplayName,
			Avatar:         conv.Avatar,
			Preview:        PlaceholderPreview,
			LastUpdated:    conv.CreatedAt,
		}
		if m, ok := latest[conv.ID]; ok {
			preview.Preview = m.Text
			preview.LastUpdated = m.At
		}
		previews = append(previews, preview)
	}

	sort.SliceStable(previews, func(i, j int) bool {
		return previews[i].LastUpdated.After(previews[j].LastUpdated)
	})
	return previews
}

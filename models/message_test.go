package models

import (
	"testing"
	"time"
)

func TestBuildPreviewsKeepsLatestAndOrders(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	conversations := []Conversation{
		{ID: "conv-a", DisplayName: "Dr Fidelia Amir"},
		{ID: "conv-b", DisplayName: "Dr Kemi Balogun"},
	}
	messages := []Message{
		{ConversationID: "conv-a", Text: "first", At: t1},
		{ConversationID: "conv-b", Text: "latest in B", At: t2},
		{ConversationID: "conv-a", Text: "latest in A", At: t3},
	}

	previews := BuildPreviews(conversations, messages)

	if len(previews) != 2 {
		t.Fatalf("expected 2 previews, got %d", len(previews))
	}
	// A's latest (t3) is newer than B's (t2), so A comes first
	if previews[0].ConversationID != "conv-a" {
		t.Errorf("expected conv-a first, got %s", previews[0].ConversationID)
	}
	if previews[0].Preview != "latest in A" {
		t.Errorf("expected latest message as preview, got %q", previews[0].Preview)
	}
	if !previews[0].LastUpdated.Equal(t3) {
		t.Errorf("expected preview timestamp %v, got %v", t3, previews[0].LastUpdated)
	}
	if previews[1].ConversationID != "conv-b" || previews[1].Preview != "latest in B" {
		t.Errorf("unexpected second preview: %+v", previews[1])
	}
}

func TestBuildPreviewsSingleEntryPerConversation(t *testing.T) {
	// Duplicate conversation rows collapse to one preview entry.
	conversations := []Conversation{
		{ID: "conv-a", DisplayName: "Dr Fidelia Amir"},
		{ID: "conv-a", DisplayName: "Dr Fidelia Amir"},
	}

	previews := BuildPreviews(conversations, nil)
	if len(previews) != 1 {
		t.Fatalf("expected exactly one preview entry, got %d", len(previews))
	}
}

func TestBuildPreviewsPlaceholderForEmptyConversation(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	conversations := []Conversation{
		{ID: "conv-a", DisplayName: "Dr Fidelia Amir", Avatar: "/care-provider.png", CreatedAt: created},
	}

	previews := BuildPreviews(conversations, nil)
	if len(previews) != 1 {
		t.Fatalf("expected 1 preview, got %d", len(previews))
	}
	if previews[0].Preview != PlaceholderPreview {
		t.Errorf("expected placeholder preview, got %q", previews[0].Preview)
	}
	if !previews[0].LastUpdated.Equal(created) {
		t.Errorf("expected creation time as last updated, got %v", previews[0].LastUpdated)
	}
}

func TestFullNameFallsBackToDoctor(t *testing.T) {
	u := UserProfile{}
	if got := u.FullName(); got != "Doctor" {
		t.Errorf("expected fallback name Doctor, got %q", got)
	}

	u = UserProfile{FirstName: " Fidelia ", LastName: "Amir"}
	if got := u.FullName(); got != "Fidelia Amir" {
		t.Errorf("expected trimmed full name, got %q", got)
	}
}

package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mindhaven/mindhaven-api/models"
)

func TestBuildMessagePair(t *testing.T) {
	now := time.Date(2025, 3, 25, 16, 0, 0, 0, time.UTC)

	pair := buildMessagePair("d1", "u1", "d1", "hello", "Fidelia Amir", now)

	if len(pair) != 2 {
		t.Fatalf("expected exactly two message rows, got %d", len(pair))
	}

	user := pair[0]
	if user.Author != models.AuthorUser || user.SenderID != "u1" || user.Text != "hello" {
		t.Errorf("unexpected user message: %+v", user)
	}
	if user.ConversationID != "d1" {
		t.Errorf("expected conversation d1, got %s", user.ConversationID)
	}

	reply := pair[1]
	if reply.Author != models.AuthorDoctor || reply.SenderID != "d1" {
		t.Errorf("unexpected doctor reply: %+v", reply)
	}
	want := "Hello, I'm Fidelia Amir. I am currently not available. How may I help you?"
	if reply.Text != want {
		t.Errorf("expected reply %q, got %q", want, reply.Text)
	}
	if !reply.At.After(user.At) {
		t.Errorf("doctor reply must be stamped after the user message")
	}
}

func TestNormalizeSender(t *testing.T) {
	if got := normalizeSender(nil); got != nil {
		t.Errorf("expected nil for missing sender, got %+v", got)
	}
	if got := normalizeSender(&models.UserProfile{}); got != nil {
		t.Errorf("expected nil for empty join result, got %+v", got)
	}

	sender := normalizeSender(&models.UserProfile{
		ID:        "p1",
		FirstName: "Fidelia",
		LastName:  "Amir",
		AvatarURL: "/care-provider.png",
		Role:      models.RoleProvider,
	})
	if sender == nil {
		t.Fatalf("expected sender info for populated profile")
	}
	if sender.ID != "p1" || sender.FirstName != "Fidelia" || sender.Role != "provider" {
		t.Errorf("unexpected sender info: %+v", sender)
	}
}

func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/messages", SendMessage)
	app.Get("/api/conversations", GetConversations)
	app.Post("/api/conversations", EnsureConversation)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestSendMessageRejectsBlankText(t *testing.T) {
	app := buildTestApp()

	// Empty and whitespace-only text never reach storage.
	for _, text := range []string{"", "   ", "\n\t "} {
		body, _ := json.Marshal(map[string]string{
			"doctorId": "d1",
			"userId":   "u1",
			"text":     text,
		})
		resp := postJSON(t, app, "/api/messages", string(body))
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("text %q: expected 400, got %d", text, resp.StatusCode)
		}
	}
}

func TestSendMessageRequiresAllFields(t *testing.T) {
	app := buildTestApp()

	cases := []string{
		`{"userId": "u1", "text": "hello"}`,
		`{"doctorId": "d1", "text": "hello"}`,
		`{"doctorId": "d1", "userId": "u1"}`,
	}
	for _, body := range cases {
		resp := postJSON(t, app, "/api/messages", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, resp.StatusCode)
		}

		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode error response: %v", err)
		}
		if payload.Error != "doctorId, userId and text are required." {
			t.Errorf("unexpected error message: %q", payload.Error)
		}
	}
}

func TestGetConversationsRequiresUserID(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/conversations", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 without userId, got %d", resp.StatusCode)
	}
}

func TestEnsureConversationRequiresIDAndName(t *testing.T) {
	app := buildTestApp()

	resp := postJSON(t, app, "/api/conversations", `{"avatar": "/care-seeker.png"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 without id and name, got %d", resp.StatusCode)
	}
}

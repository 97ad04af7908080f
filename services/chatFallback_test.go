package services

import (
	"fmt"
	"strings"
	"testing"

	"edupilot/models"
)

func makeMessages(n int) []models.ChatMessage {
	messages := make([]models.ChatMessage, n)
	for i := range messages {
		messages[i] = models.ChatMessage{
			ID:      fmt.Sprintf("m%d", i+1),
			Role:    "user",
			Content: fmt.Sprintf("message %d", i+1),
		}
	}
	return messages
}

func TestCannedResponse(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		contains string
	}{
		{name: "summary bucket", message: "Can you give me a summary of this?", contains: "summary"},
		{name: "summary with typo", message: "please give a sumary", contains: "summary"},
		{name: "explain bucket", message: "explain this concept to me", contains: "explain"},
		{name: "explain with typo", message: "can you explian the idea", contains: "explain"},
		{name: "quiz bucket", message: "I want to practice with a quiz", contains: "quiz"},
		{name: "help bucket", message: "help me get started", contains: "study assistant"},
		{name: "unmatched message", message: "xylophone ziggurat", contains: "offline mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cannedResponse(tt.message)
			if !strings.Contains(strings.ToLower(got), strings.ToLower(tt.contains)) {
				t.Errorf("cannedResponse(%q) = %q, expected it to mention %q", tt.message, got, tt.contains)
			}
		})
	}
}

func TestRecentHistory(t *testing.T) {
	messages := makeMessages(10)

	recent := recentHistory(messages, 6)
	if len(recent) != 6 {
		t.Fatalf("recentHistory returned %d messages, expected 6", len(recent))
	}
	if recent[0].Content != "message 5" {
		t.Errorf("window starts at %q, expected message 5", recent[0].Content)
	}

	short := recentHistory(makeMessages(3), 6)
	if len(short) != 3 {
		t.Errorf("short history truncated: %d", len(short))
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"edupilot/models"
	"edupilot/storage"
)

func newTestChat(t *testing.T) (*ChatService, *testPipeline) {
	t.Helper()
	p := newTestPipeline(t)
	sessions := storage.NewFileSessionRepository(p.store)
	return NewChatService(sessions, p.content, p.search, p.ai), p
}

func TestSendMessageOffline(t *testing.T) {
	chat, _ := newTestChat(t)

	resp, err := chat.SendMessage(context.Background(), &models.ChatRequest{
		Message: "help me get started",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if resp.SessionID == "" {
		t.Error("response has no session id")
	}
	if resp.Message.Role != "assistant" || resp.Message.Content == "" {
		t.Errorf("assistant message = %+v", resp.Message)
	}

	session, err := chat.GetSession(resp.SessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if session.MessageCount != 2 {
		t.Errorf("MessageCount = %d, expected user and assistant turns", session.MessageCount)
	}
	if session.Messages[0].Role != "user" || session.Messages[1].Role != "assistant" {
		t.Errorf("turn order = %s, %s", session.Messages[0].Role, session.Messages[1].Role)
	}

	// A second message on the same session appends.
	resp2, err := chat.SendMessage(context.Background(), &models.ChatRequest{
		SessionID: resp.SessionID,
		Message:   "give me a quiz",
	})
	if err != nil {
		t.Fatalf("second SendMessage failed: %v", err)
	}
	if resp2.SessionID != resp.SessionID {
		t.Errorf("session id changed between turns")
	}
	session, err = chat.GetSession(resp.SessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if session.MessageCount != 4 {
		t.Errorf("MessageCount = %d, expected 4", session.MessageCount)
	}
}

func TestSendMessageConcurrentTurns(t *testing.T) {
	chat, _ := newTestChat(t)

	resp, err := chat.SendMessage(context.Background(), &models.ChatRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	const turns = 10
	var wg sync.WaitGroup
	errs := make(chan error, turns)
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := chat.SendMessage(context.Background(), &models.ChatRequest{
				SessionID: resp.SessionID,
				Message:   fmt.Sprintf("question %d", n),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent SendMessage failed: %v", err)
		}
	}

	session, err := chat.GetSession(resp.SessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	// Every turn appends a user and an assistant message; none may be lost.
	if session.MessageCount != 2*(turns+1) {
		t.Errorf("MessageCount = %d after %d turns, expected %d", session.MessageCount, turns+1, 2*(turns+1))
	}
	if len(session.Messages) != session.MessageCount {
		t.Errorf("MessageCount %d disagrees with %d stored messages", session.MessageCount, len(session.Messages))
	}
}

func TestDeleteSessionConcurrentTurn(t *testing.T) {
	chat, _ := newTestChat(t)

	for i := 0; i < 5; i++ {
		resp, err := chat.SendMessage(context.Background(), &models.ChatRequest{Message: "hello"})
		if err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			chat.SendMessage(context.Background(), &models.ChatRequest{
				SessionID: resp.SessionID,
				Message:   "one more thing",
			})
		}()
		go func() {
			defer wg.Done()
			if err := chat.DeleteSession(resp.SessionID); err != nil {
				t.Errorf("DeleteSession failed: %v", err)
			}
		}()
		wg.Wait()

		// Whichever order the two land in, the deleted id stays deleted:
		// a turn that lost the race starts a fresh session instead of
		// re-saving under the old id.
		if _, err := chat.GetSession(resp.SessionID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetSession after delete = %v, expected ErrNotFound", err)
		}
	}
}

func TestSendMessageUnknownSessionStartsFresh(t *testing.T) {
	chat, _ := newTestChat(t)

	resp, err := chat.SendMessage(context.Background(), &models.ChatRequest{
		SessionID: "no-such-session",
		Message:   "hello",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if resp.SessionID == "no-such-session" {
		t.Error("unknown session id was reused instead of starting fresh")
	}
}

func TestSendMessageRequiresText(t *testing.T) {
	chat, _ := newTestChat(t)

	if _, err := chat.SendMessage(context.Background(), &models.ChatRequest{Message: "   "}); err == nil {
		t.Fatal("expected error for blank message")
	}
}

func TestSendMessageSearchSources(t *testing.T) {
	chat, p := newTestChat(t)

	if err := p.search.IndexContent("processed/document/bio.txt", "Cell Biology", "Mitosis is how cells divide."); err != nil {
		t.Fatalf("IndexContent failed: %v", err)
	}

	resp, err := chat.SendMessage(context.Background(), &models.ChatRequest{
		Message: "tell me about mitosis",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].Title != "Cell Biology" {
		t.Errorf("sources = %+v, expected the indexed document", resp.Sources)
	}
}

func TestSendMessageSelectedSources(t *testing.T) {
	chat, p := newTestChat(t)

	asset, err := p.content.SaveUpload("physics.txt", []byte("Newton's laws describe motion."))
	if err != nil {
		t.Fatalf("SaveUpload failed: %v", err)
	}
	result, err := p.content.ProcessAsset(context.Background(), asset)
	if err != nil {
		t.Fatalf("ProcessAsset failed: %v", err)
	}

	resp, err := chat.SendMessage(context.Background(), &models.ChatRequest{
		Message:         "summarize the selected material",
		SelectedContent: []string{result.TextFile},
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if len(resp.Sources) != 1 {
		t.Fatalf("sources = %+v, expected one selected source", resp.Sources)
	}
	if resp.Sources[0].Title != "physics.txt" {
		t.Errorf("source title = %q, expected metadata name", resp.Sources[0].Title)
	}
	if resp.Sources[0].Excerpt != selectedSourceExcerpt {
		t.Errorf("source excerpt = %q, expected the fixed selected-source excerpt", resp.Sources[0].Excerpt)
	}
}

func TestDeleteSession(t *testing.T) {
	chat, _ := newTestChat(t)

	resp, err := chat.SendMessage(context.Background(), &models.ChatRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	sessions, err := chat.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("session listing = %v", sessions)
	}

	if err := chat.DeleteSession(resp.SessionID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := chat.GetSession(resp.SessionID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetSession after delete = %v, expected ErrNotFound", err)
	}
}

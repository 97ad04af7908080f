package storage

import (
	"errors"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestStoreTextRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.WriteText("processed/document/2026/08/28/abc.txt", "hello world"); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}

	text, err := store.ReadText("processed/document/2026/08/28/abc.txt")
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if text != "hello world" {
		t.Errorf("ReadText = %q, expected %q", text, "hello world")
	}
}

func TestStoreReadMissing(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.ReadText("missing.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadText on missing file = %v, expected ErrNotFound", err)
	}

	var v map[string]string
	if err := store.ReadJSON("missing.json", &v); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadJSON on missing file = %v, expected ErrNotFound", err)
	}
}

func TestStoreJSONRoundTrip(t *testing.T) {
	store := newTestStore(t)

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := store.WriteJSON("quizzes/r1.json", record{Name: "quiz", Count: 3}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var got record
	if err := store.ReadJSON("quizzes/r1.json", &got); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if got.Name != "quiz" || got.Count != 3 {
		t.Errorf("ReadJSON = %+v", got)
	}
}

func TestStoreWriteIsAtomic(t *testing.T) {
	store := newTestStore(t)

	type state struct {
		N    int    `json:"n"`
		Body string `json:"body"`
	}
	body := strings.Repeat("abcdefgh", 4096)

	if err := store.WriteJSON("chatbot/session.json", &state{N: 0, Body: body}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for n := 1; n <= 50; n++ {
			if err := store.WriteJSON("chatbot/session.json", &state{N: n, Body: body}); err != nil {
				t.Errorf("WriteJSON failed: %v", err)
				return
			}
		}
	}()

	// Reads racing the rewrites must always see a complete file.
	for {
		select {
		case <-done:
			return
		default:
		}
		var got state
		if err := store.ReadJSON("chatbot/session.json", &got); err != nil {
			t.Fatalf("ReadJSON observed a partial write: %v", err)
		}
		if got.Body != body {
			t.Fatalf("ReadJSON observed torn content at n=%d", got.N)
		}
	}
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)

	if err := store.WriteText("a.txt", "x"); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	if err := store.Delete("a.txt"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if store.Exists("a.txt") {
		t.Error("file still exists after Delete")
	}
	if err := store.Delete("a.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, expected ErrNotFound", err)
	}
}

func TestStoreDeleteWithRetryMissing(t *testing.T) {
	store := newTestStore(t)

	if err := store.DeleteWithRetry("never-there.bin"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteWithRetry on missing file = %v, expected ErrNotFound", err)
	}
}

func TestStoreListFiles(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"quizzes/a.json", "quizzes/b.json", "quizzes/result_a.json", "quizzes/notes.txt"} {
		if err := store.WriteText(name, "{}"); err != nil {
			t.Fatalf("WriteText failed: %v", err)
		}
	}

	paths, err := store.ListFiles("quizzes", "*.json")
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(paths) != 3 {
		t.Errorf("ListFiles returned %d paths, expected 3: %v", len(paths), paths)
	}

	paths, err = store.ListFiles("absent", "*.json")
	if err != nil {
		t.Fatalf("ListFiles on missing dir failed: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("ListFiles on missing dir returned %v, expected empty", paths)
	}
}

func TestStoreWalkFiles(t *testing.T) {
	store := newTestStore(t)

	files := []string{
		"processed/document/2026/08/27/a.metadata.json",
		"processed/document/2026/08/28/b.metadata.json",
		"processed/audio/2026/08/28/c.metadata.json",
		"processed/document/2026/08/28/b.txt",
	}
	for _, name := range files {
		if err := store.WriteText(name, "{}"); err != nil {
			t.Fatalf("WriteText failed: %v", err)
		}
	}

	paths, err := store.WalkFiles("processed", ".metadata.json")
	if err != nil {
		t.Fatalf("WalkFiles failed: %v", err)
	}
	if len(paths) != 3 {
		t.Errorf("WalkFiles returned %d paths, expected 3: %v", len(paths), paths)
	}

	paths, err = store.WalkFiles("uploads", ".metadata.json")
	if err != nil {
		t.Fatalf("WalkFiles on missing dir failed: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("WalkFiles on missing dir returned %v, expected empty", paths)
	}
}

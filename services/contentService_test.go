package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"edupilot/config"
	"edupilot/models"
	"edupilot/services/ai"
	"edupilot/services/extract"
	"edupilot/services/grading"
	"edupilot/services/quizgen"
	"edupilot/storage"
)

type testPipeline struct {
	store   *storage.Store
	content *ContentService
	search  *SearchService
	ai      *ai.Client
}

// newTestPipeline wires the ingestion stack against a temp storage root with
// no AI capabilities configured, so every stage exercises its deterministic
// path.
func newTestPipeline(t *testing.T) *testPipeline {
	t.Helper()

	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	client, err := ai.NewClient(&config.Config{})
	if err != nil {
		t.Fatalf("failed to create AI client: %v", err)
	}
	t.Cleanup(client.Close)

	search := NewSearchService(storage.NewFileIndexRepository(store))
	content := NewContentService(store, client, extract.NewAdapter(client), search)
	return &testPipeline{store: store, content: content, search: search, ai: client}
}

func TestSaveUploadRejectsUnsupportedType(t *testing.T) {
	p := newTestPipeline(t)

	_, err := p.content.SaveUpload("malware.exe", []byte("x"))
	if !errors.Is(err, extract.ErrUnsupportedMediaType) {
		t.Fatalf("SaveUpload(.exe) = %v, expected ErrUnsupportedMediaType", err)
	}

	uploads, err := p.content.ListUploads()
	if err != nil {
		t.Fatalf("ListUploads failed: %v", err)
	}
	if len(uploads) != 0 {
		t.Errorf("rejected upload left artifacts behind: %v", uploads)
	}
}

func TestProcessTextAssetEndToEnd(t *testing.T) {
	p := newTestPipeline(t)

	text := "Photosynthesis converts sunlight into chemical energy inside chloroplasts. Plants use this energy to build sugars."
	asset, err := p.content.SaveUpload("biology-notes.txt", []byte(text))
	if err != nil {
		t.Fatalf("SaveUpload failed: %v", err)
	}
	if asset.Kind != models.KindDocument {
		t.Errorf("asset kind = %s, expected document", asset.Kind)
	}

	result, err := p.content.ProcessAsset(context.Background(), asset)
	if err != nil {
		t.Fatalf("ProcessAsset failed: %v", err)
	}
	if result.Status != "completed" {
		t.Errorf("result status = %q", result.Status)
	}

	// Extracted text artifact holds the original content.
	stored, err := p.store.ReadText(result.TextFile)
	if err != nil {
		t.Fatalf("ReadText(%s) failed: %v", result.TextFile, err)
	}
	if stored != text {
		t.Errorf("stored text differs from original")
	}

	// Offline summarization produces the fixed template naming the file.
	summary, err := p.store.ReadText(result.SummaryFile)
	if err != nil {
		t.Fatalf("ReadText(%s) failed: %v", result.SummaryFile, err)
	}
	if !strings.Contains(summary, "biology-notes.txt") {
		t.Errorf("summary does not name the original file: %q", summary)
	}

	// Processing indexed the text for retrieval.
	hits, err := p.search.Search("chloroplasts", 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 || hits[0].Title != "biology-notes.txt" {
		t.Fatalf("processed content not searchable: %v", hits)
	}

	// Listing surfaces the processed document.
	infos, err := p.content.ListProcessedContent()
	if err != nil {
		t.Fatalf("ListProcessedContent failed: %v", err)
	}
	if len(infos) != 1 || infos[0].OriginalName != "biology-notes.txt" {
		t.Fatalf("processed listing = %v", infos)
	}
	if infos[0].TextLength != len(text) {
		t.Errorf("TextLength = %d, expected %d", infos[0].TextLength, len(text))
	}
}

func TestQuizFromProcessedContentEndToEnd(t *testing.T) {
	p := newTestPipeline(t)

	asset, err := p.content.SaveUpload("history.txt", []byte("The industrial revolution changed manufacturing forever."))
	if err != nil {
		t.Fatalf("SaveUpload failed: %v", err)
	}
	result, err := p.content.ProcessAsset(context.Background(), asset)
	if err != nil {
		t.Fatalf("ProcessAsset failed: %v", err)
	}

	quizRepo := storage.NewFileQuizRepository(p.store)
	quizService := NewQuizService(quizRepo, p.content, quizgen.NewGenerator(p.ai))

	quiz, err := quizService.CreateQuiz(context.Background(), &models.GenerateQuizRequest{
		ContentPath:   result.TextFile,
		QuestionTypes: []models.QuestionType{models.MultipleChoice, models.TrueFalse},
		QuestionCount: 5,
	})
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}
	if quiz.TotalQuestions != 5 || len(quiz.Questions) != 5 {
		t.Fatalf("quiz has %d questions, expected 5", len(quiz.Questions))
	}
	if !strings.Contains(quiz.Title, "history.txt") {
		t.Errorf("quiz title %q does not name the source document", quiz.Title)
	}

	// Answer everything correctly and expect a perfect grade.
	answers := models.Submission{}
	for _, q := range quiz.Questions {
		answers[q.ID] = q.CorrectValue()
	}
	graded, err := quizService.SubmitQuiz(quiz.ID, answers)
	if err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}
	if graded.ScorePercentage != 100 || graded.Grade != "A" {
		t.Errorf("perfect submission graded %v%% (%s)", graded.ScorePercentage, graded.Grade)
	}

	// The result is retrievable independently of the quiz.
	stored, err := quizService.GetResult(graded.ID)
	if err != nil {
		t.Fatalf("GetResult failed: %v", err)
	}
	if stored.Grade != "A" {
		t.Errorf("stored result grade = %q", stored.Grade)
	}

	if grading.QuizLetter(stored.ScorePercentage) != stored.Grade {
		t.Errorf("stored grade inconsistent with percentage")
	}
}

func TestLoadContentFallback(t *testing.T) {
	p := newTestPipeline(t)

	if got := p.content.LoadContent(""); !strings.Contains(got, "Sample educational content") {
		t.Errorf("LoadContent(\"\") = %q", got)
	}
	if got := p.content.LoadContent("document/2026/08/28/missing.txt"); !strings.Contains(got, "Sample educational content") {
		t.Errorf("LoadContent(missing) = %q", got)
	}
}

func TestDeleteProcessedContent(t *testing.T) {
	p := newTestPipeline(t)

	asset, err := p.content.SaveUpload("notes.md", []byte("# Notes\nSome study material about thermodynamics."))
	if err != nil {
		t.Fatalf("SaveUpload failed: %v", err)
	}
	result, err := p.content.ProcessAsset(context.Background(), asset)
	if err != nil {
		t.Fatalf("ProcessAsset failed: %v", err)
	}

	if err := p.content.DeleteProcessedContent(result.TextFile); err != nil {
		t.Fatalf("DeleteProcessedContent failed: %v", err)
	}

	if p.store.Exists(result.TextFile) || p.store.Exists(result.SummaryFile) {
		t.Error("artifacts still present after delete")
	}

	hits, err := p.search.Search("thermodynamics", 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("deleted content still searchable: %v", hits)
	}

	if err := p.content.DeleteProcessedContent(result.TextFile); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete = %v, expected ErrNotFound", err)
	}
}

func TestDeleteUpload(t *testing.T) {
	p := newTestPipeline(t)

	asset, err := p.content.SaveUpload("doc.txt", []byte("content"))
	if err != nil {
		t.Fatalf("SaveUpload failed: %v", err)
	}

	if err := p.content.DeleteUpload(asset.Path); err != nil {
		t.Fatalf("DeleteUpload failed: %v", err)
	}

	uploads, err := p.content.ListUploads()
	if err != nil {
		t.Fatalf("ListUploads failed: %v", err)
	}
	if len(uploads) != 0 {
		t.Errorf("upload listing not empty after delete: %v", uploads)
	}
}

func TestNormalizeContentPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "already prefixed", path: "processed/document/a.txt", expected: "processed/document/a.txt"},
		{name: "bare path", path: "document/a.txt", expected: "processed/document/a.txt"},
		{name: "leading slash", path: "/document/a.txt", expected: "processed/document/a.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeContentPath(tt.path); got != tt.expected {
				t.Errorf("NormalizeContentPath(%q) = %q, expected %q", tt.path, got, tt.expected)
			}
		})
	}
}

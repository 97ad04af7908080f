package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"edupilot/models"
	"edupilot/services/ai"
	"edupilot/services/extract"
	"edupilot/storage"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// summaryInputLimit bounds the text prefix handed to the summarization
	// capability. Deliberately lossy: summaries are best-effort over the
	// document's opening content.
	summaryInputLimit = 4000

	uploadsDir   = "uploads"
	processedDir = "processed"
)

const summarySystemPrompt = "You are an expert educational content summarizer. Create clear, structured summaries that help students understand and learn from the material."

// ContentService owns the ingestion pipeline: upload intake, extraction,
// summarization, indexing, and the processed-content listing surfaces.
type ContentService struct {
	store     *storage.Store
	ai        *ai.Client
	extractor *extract.Adapter
	search    *SearchService
}

func NewContentService(store *storage.Store, aiClient *ai.Client, extractor *extract.Adapter, search *SearchService) *ContentService {
	return &ContentService{
		store:     store,
		ai:        aiClient,
		extractor: extractor,
		search:    search,
	}
}

// SaveUpload persists a raw uploaded file with a sidecar metadata record.
// Unsupported extensions fail before anything is written.
func (s *ContentService) SaveUpload(filename string, data []byte) (*models.Asset, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	kind, ok := models.KindForExtension(ext)
	if !ok {
		return nil, fmt.Errorf("file type %s: %w", ext, extract.ErrUnsupportedMediaType)
	}

	id := uuid.NewString()
	datePath := time.Now().Format("2006/01/02")
	path := fmt.Sprintf("%s/%s/%s/%s%s", uploadsDir, kind, datePath, id, ext)

	if err := s.store.WriteBytes(path, data); err != nil {
		return nil, err
	}

	asset := &models.Asset{
		ID:           id,
		Kind:         kind,
		OriginalName: filename,
		Size:         int64(len(data)),
		Path:         path,
		UploadedAt:   time.Now(),
	}
	if err := s.store.WriteJSON(path+".metadata.json", asset); err != nil {
		return nil, err
	}

	log.Printf("[INFO] Saved upload %s as asset %s (%s)", filename, id, kind)
	return asset, nil
}

// ProcessAsset runs the full pipeline for one asset: extract text, then
// summarize and index it concurrently, then record metadata. Artifact paths
// follow the processed/<kind>/<date>/<id> contract.
func (s *ContentService) ProcessAsset(ctx context.Context, asset *models.Asset) (*models.ProcessResult, error) {
	log.Printf("[INFO] Starting processing of asset %s (%s)", asset.ID, asset.OriginalName)

	doc, err := s.extractor.Extract(ctx, asset, s.store.Abs(asset.Path))
	if err != nil {
		log.Printf("[ERROR] Extraction failed for asset %s: %v", asset.ID, err)
		return nil, err
	}

	datePath := doc.ExtractedAt.Format("2006/01/02")
	base := fmt.Sprintf("%s/%s/%s/%s", processedDir, asset.Kind, datePath, asset.ID)
	textPath := base + ".txt"
	summaryPath := base + ".summary.md"

	if err := s.store.WriteText(textPath, doc.Text); err != nil {
		return nil, err
	}

	var summary string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary = s.Summarize(gctx, doc.Text, asset.OriginalName)
		return s.store.WriteText(summaryPath, summary)
	})
	g.Go(func() error {
		return s.search.IndexContent(textPath, asset.OriginalName, doc.Text)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metadata := models.ProcessedMetadata{
		OriginalName:  asset.OriginalName,
		FileID:        asset.ID,
		FileType:      asset.Kind,
		ProcessedDate: time.Now(),
		TextLength:    len(doc.Text),
		SummaryLength: len(summary),
		Status:        "completed",
	}
	if err := s.store.WriteJSON(base+".metadata.json", metadata); err != nil {
		return nil, err
	}

	log.Printf("[INFO] Successfully processed asset %s: %d chars of text, %d chars of summary", asset.ID, metadata.TextLength, metadata.SummaryLength)
	return &models.ProcessResult{
		Status:      "completed",
		TextFile:    textPath,
		SummaryFile: summaryPath,
		Metadata:    metadata,
	}, nil
}

// Summarize condenses text into structured markdown via the summarization
// capability. On capability unavailability or failure it returns the fixed
// template, so the result is always well-formed markdown naming the title.
func (s *ContentService) Summarize(ctx context.Context, text, title string) string {
	if !s.ai.TextAvailable() {
		return fallbackSummary(title)
	}

	prompt := fmt.Sprintf(`Please provide a comprehensive summary of the following educational content from "%s":

%s

Please structure your summary with:
1. Main topic and overview
2. Key concepts and definitions
3. Important points and takeaways
4. Learning objectives
5. Areas of focus for assessment

Format the response in Markdown.`, title, prefix(text, summaryInputLimit))

	summary, err := s.ai.Complete(ctx, summarySystemPrompt, prompt, 0.3, 1000)
	if err != nil {
		log.Printf("[WARN] Summarization capability failed for %s, using fallback template: %v", title, err)
		return fallbackSummary(title)
	}
	return strings.TrimSpace(summary)
}

func fallbackSummary(title string) string {
	return fmt.Sprintf(`# Summary of %s

## Overview
This is a generated placeholder summary. With a configured AI capability this section holds an intelligent condensation of the material.

## Key Points
- **Main Topic**: The content covers important educational material
- **Learning Objectives**: Students will understand core concepts
- **Important Concepts**: Key definitions and principles are explained
- **Practical Applications**: Real-world examples and use cases
- **Assessment Areas**: Topics likely to appear in quizzes and tests

## Detailed Summary
The document provides coverage of the subject matter with explanations and examples. The content is structured to facilitate learning and understanding.

## Recommendations
- Review the main concepts highlighted above
- Focus on practical applications mentioned
- Use this summary as a study guide for assessments

*Note: To enable AI-powered summarization, configure an OpenAI API key in the .env file.*`, title)
}

// LoadContent reads processed text by storage path, tolerating paths given
// without the processed/ prefix. Missing content yields a small sample text
// so generation stages always have input.
func (s *ContentService) LoadContent(path string) string {
	if path == "" {
		return "Sample educational content for quiz generation."
	}
	normalized := NormalizeContentPath(path)
	text, err := s.store.ReadText(normalized)
	if err != nil {
		log.Printf("[WARN] Content %s not readable, using sample content: %v", normalized, err)
		return "Sample educational content for quiz generation."
	}
	return text
}

// ResolveTitle resolves the display title for a processed content path from
// its metadata sidecar, falling back to the file stem.
func (s *ContentService) ResolveTitle(path string) string {
	normalized := NormalizeContentPath(path)
	stem := strings.TrimSuffix(filepath.Base(normalized), filepath.Ext(normalized))

	var metadata models.ProcessedMetadata
	if err := s.store.ReadJSON(metadataPathFor(normalized), &metadata); err != nil {
		return stem
	}
	if metadata.OriginalName == "" {
		return stem
	}
	return metadata.OriginalName
}

// GetUpload loads the metadata record of one uploaded asset by its storage
// path.
func (s *ContentService) GetUpload(path string) (*models.Asset, error) {
	asset := &models.Asset{}
	if err := s.store.ReadJSON(path+".metadata.json", asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// ListUploads returns metadata for every uploaded asset, newest first.
func (s *ContentService) ListUploads() ([]models.Asset, error) {
	paths, err := s.store.WalkFiles(uploadsDir, ".metadata.json")
	if err != nil {
		return nil, err
	}

	assets := make([]models.Asset, 0, len(paths))
	for _, path := range paths {
		var asset models.Asset
		if err := s.store.ReadJSON(path, &asset); err != nil {
			log.Printf("[ERROR] Skipping unreadable upload metadata %s: %v", path, err)
			continue
		}
		assets = append(assets, asset)
	}
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].UploadedAt.After(assets[j].UploadedAt)
	})
	return assets, nil
}

// ListProcessedContent returns the listing of all processed documents.
func (s *ContentService) ListProcessedContent() ([]models.ProcessedContentInfo, error) {
	paths, err := s.store.WalkFiles(processedDir, ".metadata.json")
	if err != nil {
		return nil, err
	}

	infos := make([]models.ProcessedContentInfo, 0, len(paths))
	for _, path := range paths {
		var metadata models.ProcessedMetadata
		if err := s.store.ReadJSON(path, &metadata); err != nil {
			log.Printf("[ERROR] Skipping unreadable processed metadata %s: %v", path, err)
			continue
		}
		infos = append(infos, models.ProcessedContentInfo{
			Path:          strings.TrimSuffix(path, ".metadata.json") + ".txt",
			OriginalName:  metadata.OriginalName,
			FileType:      metadata.FileType,
			ProcessedDate: metadata.ProcessedDate,
			TextLength:    metadata.TextLength,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ProcessedDate.After(infos[j].ProcessedDate)
	})
	return infos, nil
}

// GetContentDetail returns the full text and summary for one processed path.
func (s *ContentService) GetContentDetail(path string) (*models.ContentDetail, error) {
	normalized := NormalizeContentPath(path)
	text, err := s.store.ReadText(normalized)
	if err != nil {
		return nil, err
	}

	summary, err := s.store.ReadText(summaryPathFor(normalized))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	return &models.ContentDetail{
		Path:    normalized,
		Text:    text,
		Summary: summary,
	}, nil
}

// DeleteProcessedContent removes one processed document and all of its
// sidecar artifacts, including its retrieval index entry.
func (s *ContentService) DeleteProcessedContent(path string) error {
	normalized := NormalizeContentPath(path)
	if err := s.store.Delete(normalized); err != nil {
		return err
	}

	for _, sidecar := range []string{summaryPathFor(normalized), metadataPathFor(normalized)} {
		if err := s.store.Delete(sidecar); err != nil && !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[WARN] Could not delete sidecar %s: %v", sidecar, err)
		}
	}

	if err := s.search.DeleteContent(normalized); err != nil {
		log.Printf("[WARN] Could not delete index entry for %s: %v", normalized, err)
	}

	log.Printf("[INFO] Deleted processed content %s", normalized)
	return nil
}

// DeleteUpload removes one uploaded file, retrying briefly when the file is
// held by another operation; a persistently held file reports ErrInUse
// rather than an internal error.
func (s *ContentService) DeleteUpload(path string) error {
	if err := s.store.DeleteWithRetry(path); err != nil {
		return err
	}

	metadataPath := path + ".metadata.json"
	if err := s.store.Delete(metadataPath); err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("[WARN] Could not delete upload metadata %s: %v", metadataPath, err)
	}

	log.Printf("[INFO] Deleted uploaded file %s", path)
	return nil
}

// NormalizeContentPath tolerates content paths given relative to the
// processed directory.
func NormalizeContentPath(path string) string {
	trimmed := strings.Trim(path, "/")
	if strings.HasPrefix(trimmed, processedDir+"/") {
		return trimmed
	}
	return processedDir + "/" + trimmed
}

func summaryPathFor(textPath string) string {
	return strings.TrimSuffix(textPath, filepath.Ext(textPath)) + ".summary.md"
}

func metadataPathFor(textPath string) string {
	return strings.TrimSuffix(textPath, filepath.Ext(textPath)) + ".metadata.json"
}

func prefix(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}

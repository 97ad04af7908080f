package models

import (
	"strings"
	"time"
)

// MediaKind classifies an uploaded asset by how its text is recovered.
type MediaKind string

const (
	KindDocument MediaKind = "document"
	KindAudio    MediaKind = "audio"
	KindVideo    MediaKind = "video"
)

var extensionKinds = map[string]MediaKind{
	".pdf": KindDocument,
	".txt": KindDocument,
	".md":  KindDocument,
	".mp3": KindAudio,
	".wav": KindAudio,
	".m4a": KindAudio,
	".mp4": KindVideo,
	".avi": KindVideo,
	".mov": KindVideo,
	".wmv": KindVideo,
}

// KindForExtension maps a file extension (with leading dot) to a media kind.
func KindForExtension(ext string) (MediaKind, bool) {
	kind, ok := extensionKinds[strings.ToLower(ext)]
	return kind, ok
}

// Asset is an uploaded raw media file. Immutable once created.
type Asset struct {
	ID           string    `json:"fileId"`
	Kind         MediaKind `json:"fileType"`
	OriginalName string    `json:"originalName"`
	Size         int64     `json:"size"`
	Path         string    `json:"path"`
	UploadedAt   time.Time `json:"uploadDate"`
}

// ExtractedDocument is the plain-text result of converting an asset to text.
type ExtractedDocument struct {
	AssetID     string    `json:"assetId"`
	Kind        MediaKind `json:"kind"`
	Text        string    `json:"text"`
	Method      string    `json:"method"`
	ExtractedAt time.Time `json:"extractedAt"`
}

// ProcessedMetadata is the sidecar record written next to extracted text.
type ProcessedMetadata struct {
	OriginalName  string    `json:"originalName"`
	FileID        string    `json:"fileId"`
	FileType      MediaKind `json:"fileType"`
	ProcessedDate time.Time `json:"processedDate"`
	TextLength    int       `json:"textLength"`
	SummaryLength int       `json:"summaryLength"`
	Status        string    `json:"status"`
}

// ProcessResult reports where processing landed an asset's artifacts.
type ProcessResult struct {
	Status      string            `json:"status"`
	TextFile    string            `json:"textFile"`
	SummaryFile string            `json:"summaryFile"`
	Metadata    ProcessedMetadata `json:"metadata"`
}

// ProcessedContentInfo is the listing entry for a processed document.
type ProcessedContentInfo struct {
	Path          string    `json:"path"`
	OriginalName  string    `json:"originalName"`
	FileType      MediaKind `json:"fileType"`
	ProcessedDate time.Time `json:"processedDate"`
	TextLength    int       `json:"textLength"`
}

// ContentDetail is the full fetch of one processed document.
type ContentDetail struct {
	Path    string `json:"path"`
	Text    string `json:"text"`
	Summary string `json:"summary"`
}

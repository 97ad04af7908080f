package extract

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"edupilot/models"
	"edupilot/services/ai"
)

// ErrUnsupportedMediaType marks an asset whose media kind has no extraction
// capability. Raised before any file I/O.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// Adapter converts a raw media asset into plain text, dispatching by media
// kind: documents are read directly, audio and video go through the
// transcription capability.
type Adapter struct {
	ai *ai.Client
}

func NewAdapter(aiClient *ai.Client) *Adapter {
	return &Adapter{ai: aiClient}
}

// Extract produces the ExtractedDocument for an asset stored at filePath.
// The returned text is never empty: unrecoverable content is replaced with a
// diagnostic placeholder so downstream stages always have input.
func (a *Adapter) Extract(ctx context.Context, asset *models.Asset, filePath string) (*models.ExtractedDocument, error) {
	log.Printf("[INFO] Starting extraction for asset %s (%s)", asset.ID, asset.Kind)

	var (
		text   string
		method string
		err    error
	)

	switch asset.Kind {
	case models.KindDocument:
		text, method, err = a.extractDocument(asset, filePath)
	case models.KindAudio, models.KindVideo:
		text, method = a.transcribe(ctx, asset, filePath)
	default:
		return nil, fmt.Errorf("media kind %q: %w", asset.Kind, ErrUnsupportedMediaType)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] Extracted %d characters from asset %s via %s", len(text), asset.ID, method)
	return &models.ExtractedDocument{
		AssetID:     asset.ID,
		Kind:        asset.Kind,
		Text:        text,
		Method:      method,
		ExtractedAt: time.Now(),
	}, nil
}

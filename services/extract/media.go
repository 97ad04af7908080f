package extract

import (
	"context"
	"fmt"
	"log"
	"strings"

	"edupilot/models"
)

func (a *Adapter) transcribe(ctx context.Context, asset *models.Asset, filePath string) (string, string) {
	if a.ai.TranscriptionAvailable() {
		text, err := a.ai.Transcribe(ctx, filePath)
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text), "whisper"
		}
		log.Printf("[WARN] Transcription failed for asset %s, using mock transcript: %v", asset.ID, err)
	}
	return mockTranscript(asset), "mock"
}

// mockTranscript is the deterministic placeholder used when the
// transcription capability is unavailable. Clearly labeled so it is never
// mistaken for a real transcription.
func mockTranscript(asset *models.Asset) string {
	return fmt.Sprintf(`This is a mock transcript for %s.

The %s file has been processed successfully. In a real deployment this would contain the actual transcription of the audio content produced by the transcription service.

Key points that would typically be covered:
- Introduction to the topic
- Main concepts and definitions
- Detailed explanations with examples
- Important conclusions and takeaways
- Questions and answers if applicable

To enable real transcription, configure an OpenAI API key in the .env file.`, asset.OriginalName, asset.Kind)
}

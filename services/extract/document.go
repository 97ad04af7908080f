package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"edupilot/models"

	"github.com/ledongthuc/pdf"
)

func (a *Adapter) extractDocument(asset *models.Asset, filePath string) (string, string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return a.extractPDF(asset, filePath)
	default:
		return a.extractPlainText(asset, filePath)
	}
}

func (a *Adapter) extractPDF(asset *models.Asset, filePath string) (string, string, error) {
	file, reader, err := pdf.Open(filePath)
	if err != nil {
		return fmt.Sprintf("Error extracting text from document: %v", err), "pdf", nil
	}
	defer file.Close()

	var buf bytes.Buffer
	plain, err := reader.GetPlainText()
	if err != nil {
		return fmt.Sprintf("Error extracting text from document: %v", err), "pdf", nil
	}
	if _, err := buf.ReadFrom(plain); err != nil {
		return fmt.Sprintf("Error extracting text from document: %v", err), "pdf", nil
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		text = fmt.Sprintf("Could not extract text from document: %s", asset.OriginalName)
	}
	return text, "pdf", nil
}

func (a *Adapter) extractPlainText(asset *models.Asset, filePath string) (string, string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read document %s: %w", asset.ID, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		text = fmt.Sprintf("Could not extract text from document: %s", asset.OriginalName)
	}
	return text, "plaintext", nil
}

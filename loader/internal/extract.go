package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"petcare/types"
)

// ExtractionError marks an unreadable or corrupt source document. It is
// fatal to that document's ingestion run.
type ExtractionError struct {
	Path string
	Err  error
}

func (e ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s: %v", e.Path, e.Err)
}

func (e ExtractionError) Unwrap() error { return e.Err }

// Extract reads a source document into memory. PDF and plain text files are
// supported; anything else is an extraction failure.
func Extract(path string) (types.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	doc := types.Document{
		Title:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		SourcePath: path,
	}

	switch ext {
	case ".pdf":
		content, err := extractPDF(path)
		if err != nil {
			return types.Document{}, err
		}
		doc.Source = "pdf"
		doc.Content = content
	case ".txt":
		content, err := os.ReadFile(path)
		if err != nil {
			return types.Document{}, ExtractionError{Path: path, Err: err}
		}
		doc.Source = "text"
		doc.Content = string(content)
	default:
		return types.Document{}, ExtractionError{Path: path, Err: fmt.Errorf("unsupported file type %q", filepath.Ext(path))}
	}
	return doc, nil
}

// extractPDF validates the file structure with pdfcpu before pulling plain
// text page by page. Validation catches corrupt files up front with a
// clearer failure than a mid-extraction parse error.
func extractPDF(path string) (string, error) {
	if err := api.ValidateFile(path, api.LoadConfiguration()); err != nil {
		return "", ExtractionError{Path: path, Err: fmt.Errorf("invalid PDF: %w", err)}
	}

	file, err := os.Open(path)
	if err != nil {
		return "", ExtractionError{Path: path, Err: err}
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", ExtractionError{Path: path, Err: err}
	}

	reader, err := pdf.NewReader(file, info.Size())
	if err != nil {
		return "", ExtractionError{Path: path, Err: err}
	}

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", ExtractionError{Path: path, Err: fmt.Errorf("page %d: %w", i, err)}
		}
		text.WriteString(content)
		text.WriteString("\n\n")
	}
	return text.String(), nil
}

package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "care guide.txt")
	require.NoError(t, os.WriteFile(path, []byte("Cats purr when content."), 0o644))

	doc, err := Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "care guide", doc.Title)
	assert.Equal(t, "text", doc.Source)
	assert.Equal(t, path, doc.SourcePath)
	assert.Equal(t, "Cats purr when content.", doc.Content)
}

func TestExtractUnsupportedType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.docx")
	require.NoError(t, os.WriteFile(path, []byte("irrelevant"), 0o644))

	_, err := Extract(path)
	require.Error(t, err)

	var extractionErr ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, path, extractionErr.Path)
}

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "gone.txt"))
	assert.Error(t, err)
}

func TestExtractCorruptPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))

	_, err := Extract(path)
	assert.Error(t, err)
}

func TestCreateDirectories(t *testing.T) {
	base := t.TempDir()
	dirs := []string{
		filepath.Join(base, "source"),
		filepath.Join(base, "archive", "nested"),
	}

	require.NoError(t, CreateDirectories(dirs...))
	for _, dir := range dirs {
		assert.DirExists(t, dir)
	}

	// Idempotent on existing directories.
	assert.NoError(t, CreateDirectories(dirs...))
}

func TestMoveFile(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "doc.txt")
	destDir := filepath.Join(base, "archive")
	require.NoError(t, os.WriteFile(src, []byte("content"), 0o644))
	require.NoError(t, os.MkdirAll(destDir, 0o755))

	require.NoError(t, MoveFile(src, destDir))
	assert.NoFileExists(t, src)
	assert.FileExists(t, filepath.Join(destDir, "doc.txt"))
}

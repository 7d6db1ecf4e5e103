package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"doc-formatter/internal/logger"
	"doc-formatter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocumentService() (*DocumentService, *models.Session) {
	session := models.NewSession()
	return NewDocumentService(session, logger.Nop()), session
}

func TestSaveThenOpenTrimsWhitespace(t *testing.T) {
	texts := []string{
		"plain",
		"  leading and trailing  \n\n",
		"\tмногострочный\nтекст\n",
		"   ",
		"",
	}

	for _, text := range texts {
		ds, session := newDocumentService()
		path := filepath.Join(t.TempDir(), "doc.txt")

		session.SetBuffer(text)
		require.NoError(t, ds.SaveAs(context.Background(), path))

		other, reopened := newDocumentService()
		require.NoError(t, other.Open(context.Background(), path))

		assert.Equal(t, strings.TrimSpace(text), reopened.Buffer(), "text %q", text)
		assert.Equal(t, path, reopened.CurrentFile())
	}
}

func TestSaveWithoutPathReportsErrNoPath(t *testing.T) {
	ds, session := newDocumentService()
	session.SetBuffer("unsaved")

	err := ds.Save(context.Background())
	assert.ErrorIs(t, err, ErrNoPath)
	assert.True(t, session.Modified())
}

func TestSaveOverwritesBoundFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o644))

	ds, session := newDocumentService()
	require.NoError(t, ds.Open(context.Background(), path))

	session.SetBuffer("new\n")
	require.NoError(t, ds.Save(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.False(t, session.Modified())
}

func TestSaveAsAppendsDefaultExtension(t *testing.T) {
	dir := t.TempDir()
	ds, session := newDocumentService()
	session.SetBuffer("body")

	require.NoError(t, ds.SaveAs(context.Background(), filepath.Join(dir, "letter")))

	assert.Equal(t, filepath.Join(dir, "letter.txt"), session.CurrentFile())
	_, err := os.Stat(filepath.Join(dir, "letter.txt"))
	assert.NoError(t, err)

	require.NoError(t, ds.SaveAs(context.Background(), filepath.Join(dir, "notes.md")))
	assert.Equal(t, filepath.Join(dir, "notes.md"), session.CurrentFile())
}

func TestSaveAsRemovesEmptyExtensionlessFile(t *testing.T) {
	dir := t.TempDir()
	chosen := filepath.Join(dir, "notes")
	require.NoError(t, os.WriteFile(chosen, nil, 0o644))

	ds, session := newDocumentService()
	session.SetBuffer("body")

	require.NoError(t, ds.SaveAs(context.Background(), chosen))

	assert.NoFileExists(t, chosen)
	data, err := os.ReadFile(chosen + TextExtension)
	require.NoError(t, err)
	assert.Equal(t, "body", string(data))
}

func TestSaveAsKeepsExtensionlessFileWithContent(t *testing.T) {
	dir := t.TempDir()
	chosen := filepath.Join(dir, "README")
	require.NoError(t, os.WriteFile(chosen, []byte("keep"), 0o644))

	ds, session := newDocumentService()
	session.SetBuffer("body")

	require.NoError(t, ds.SaveAs(context.Background(), chosen))

	data, err := os.ReadFile(chosen)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
	assert.FileExists(t, chosen+TextExtension)
}

func TestOpenFailuresLeaveSessionUntouched(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "binary.txt")
	require.NoError(t, os.WriteFile(binary, []byte{0xff, 0xfe, 0x00, 0xc3}, 0o644))

	ds, session := newDocumentService()
	session.SetBuffer("keep me")

	err := ds.Open(context.Background(), binary)
	assert.ErrorIs(t, err, ErrNotUTF8)

	err = ds.Open(context.Background(), filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = ds.Open(context.Background(), dir)
	assert.ErrorIs(t, err, ErrNotAFile)

	assert.Equal(t, "keep me", session.Buffer())
	assert.Equal(t, "", session.CurrentFile())
}

func TestSaveDoesNotRevalidateBoundPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.txt")

	ds, session := newDocumentService()
	session.SetBuffer("first")
	require.NoError(t, ds.SaveAs(context.Background(), path))
	require.NoError(t, os.Remove(path))

	session.SetBuffer("second")
	require.NoError(t, ds.Save(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestEnsureTextExtension(t *testing.T) {
	assert.Equal(t, "a.txt", EnsureTextExtension("a"))
	assert.Equal(t, "a.txt", EnsureTextExtension("a.txt"))
	assert.Equal(t, "a.log", EnsureTextExtension("a.log"))
}

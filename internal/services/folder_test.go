package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"doc-formatter/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"My File.TXT":       "my_file.txt",
		"already_lower.txt": "already_lower.txt",
		"  two  spaces.MD":  "__two__spaces.md",
		"ОТЧЁТ 2024.TXT":    "отчёт_2024.txt",
		"Tab\tName.txt":     "tab\tname.txt",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeName(in), "name %q", in)
	}
}

func TestFormatRenamesFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "My File.TXT", "already_lower.txt")

	ff := NewFolderFormatter(logger.Nop())
	report, err := ff.Format(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"already_lower.txt", "my_file.txt"}, listNames(t, dir))
	assert.Equal(t, []Rename{{From: "My File.TXT", To: "my_file.txt"}}, report.Renamed)
	assert.Equal(t, 1, report.Unchanged)
	assert.Empty(t, report.Skipped)

	data, err := os.ReadFile(filepath.Join(dir, "my_file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "My File.TXT", string(data), "content travels with the file")
}

func TestFormatIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "A B C.Txt", "Notes.md", "plain.txt", "Mixed Case Name")

	ff := NewFolderFormatter(logger.Nop())
	_, err := ff.Format(context.Background(), dir)
	require.NoError(t, err)
	once := listNames(t, dir)

	report, err := ff.Format(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, once, listNames(t, dir))
	assert.Empty(t, report.Renamed)
	assert.Equal(t, 4, report.Unchanged)
}

func TestFormatLeavesSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Sub Dir"), 0o755))
	writeFiles(t, filepath.Join(dir, "Sub Dir"), "Inner File.TXT")
	writeFiles(t, dir, "Top File.TXT")

	ff := NewFolderFormatter(logger.Nop())
	_, err := ff.Format(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Sub Dir", "top_file.txt"}, listNames(t, dir))
	assert.Equal(t, []string{"Inner File.TXT"}, listNames(t, filepath.Join(dir, "Sub Dir")))
}

func TestFormatSkipsCollisions(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Report.txt", "report.txt")
	if names := listNames(t, dir); len(names) != 2 {
		t.Skip("case-insensitive file system")
	}

	ff := NewFolderFormatter(logger.Nop())
	report, err := ff.Format(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Report.txt", "report.txt"}, listNames(t, dir))
	assert.Equal(t, []Rename{{From: "Report.txt", To: "report.txt"}}, report.Skipped)

	data, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	require.NoError(t, err)
	assert.Equal(t, "report.txt", string(data), "existing file is not overwritten")
}

func TestFormatStopsAtFirstError(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "A B.txt", "C D.txt", "E F.txt")

	errDenied := errors.New("permission denied")
	ff := NewFolderFormatter(logger.Nop(), WithRename(func(oldPath, newPath string) error {
		if filepath.Base(oldPath) == "C D.txt" {
			return errDenied
		}
		return os.Rename(oldPath, newPath)
	}))

	report, err := ff.Format(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDenied)

	assert.Equal(t, []string{"C D.txt", "E F.txt", "a_b.txt"}, listNames(t, dir))
	assert.Equal(t, []Rename{{From: "A B.txt", To: "a_b.txt"}}, report.Renamed)
}

func TestFormatRejectsMissingOrFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "file.txt")
	ff := NewFolderFormatter(logger.Nop())

	_, err := ff.Format(context.Background(), filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ff.Format(context.Background(), filepath.Join(dir, "file.txt"))
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestFormatHonoursCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Some File.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFolderFormatter(logger.Nop()).Format(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"Some File.txt"}, listNames(t, dir))
}

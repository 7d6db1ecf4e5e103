package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"doc-formatter/internal/logger"
	"doc-formatter/internal/models"
)

const (
	// TextExtension is appended by Save-As when the chosen name has none.
	TextExtension = ".txt"

	documentComponent = "DocumentService"
)

var (
	ErrNoPath   = errors.New("document has no file path")
	ErrNotUTF8  = errors.New("file is not valid UTF-8 text")
	ErrNotAFile = errors.New("path is not a regular file")
)

// DocumentService loads and stores the session's buffer as plain UTF-8 text.
// Styling is never written.
type DocumentService struct {
	session *models.Session
	logger  logger.Logger
}

// NewDocumentService creates a document service bound to session.
func NewDocumentService(session *models.Session, log logger.Logger) *DocumentService {
	return &DocumentService{
		session: session,
		logger:  log,
	}
}

// Open reads path and replaces the session buffer with its content.
// The session is left untouched on failure.
func (ds *DocumentService) Open(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if path == "" {
		return ErrNoPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	startTime := time.Now()
	text, err := ReadText(absPath)
	if err != nil {
		return err
	}

	ds.session.Load(absPath, text)

	ds.logger.Info(documentComponent, "document opened", map[string]interface{}{
		"path":     absPath,
		"runes":    utf8.RuneCountInString(text),
		"duration": time.Since(startTime).String(),
	})
	return nil
}

// Save writes the trimmed buffer to the bound file. It returns ErrNoPath when
// the session has no file yet; the caller then asks for one and uses SaveAs.
func (ds *DocumentService) Save(ctx context.Context) error {
	path := ds.session.CurrentFile()
	if path == "" {
		return ErrNoPath
	}
	return ds.writeTo(ctx, path)
}

// SaveAs writes the trimmed buffer to path and binds the session to it.
// A path without an extension gets TextExtension. The save dialog creates the
// chosen file before handing it over, so an empty file left at the
// extensionless path is removed once the document is written.
func (ds *DocumentService) SaveAs(ctx context.Context, path string) error {
	if path == "" {
		return ErrNoPath
	}

	chosen, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	target := EnsureTextExtension(chosen)

	if err := ds.writeTo(ctx, target); err != nil {
		return err
	}
	if target != chosen {
		ds.removePlaceholder(chosen)
	}
	return nil
}

// removePlaceholder deletes path when it is an empty regular file. Files with
// content are never touched.
func (ds *DocumentService) removePlaceholder(path string) {
	info, err := os.Lstat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() != 0 {
		return
	}

	if err := os.Remove(path); err != nil {
		ds.logger.Warning(documentComponent, "could not remove empty placeholder", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return
	}
	ds.logger.Debug(documentComponent, "empty placeholder removed", map[string]interface{}{"path": path})
}

func (ds *DocumentService) writeTo(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	content := strings.TrimSpace(ds.session.Buffer())
	if err := WriteText(path, content); err != nil {
		return err
	}

	ds.session.MarkSaved(path)

	ds.logger.Info(documentComponent, "document saved", map[string]interface{}{
		"path":  path,
		"bytes": len(content),
	})
	return nil
}

// ReadText reads a whole file and checks that it decodes as UTF-8.
func ReadText(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("open %s: %w", path, ErrNotAFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read %s: %w", path, ErrNotUTF8)
	}
	return string(data), nil
}

// WriteText overwrites path with text.
func WriteText(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// EnsureTextExtension appends TextExtension to names that have no extension.
func EnsureTextExtension(path string) string {
	if filepath.Ext(path) == "" {
		return path + TextExtension
	}
	return path
}

package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"doc-formatter/internal/logger"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const folderComponent = "FolderFormatter"

var ErrNotDirectory = errors.New("path is not a directory")

// Rename records a single file name change inside the formatted folder.
type Rename struct {
	From string
	To   string
}

// Report summarises one formatting run. On failure it holds what was done
// before the failing entry.
type Report struct {
	Dir       string
	Renamed   []Rename
	Skipped   []Rename
	Unchanged int
	Duration  time.Duration
}

// FolderFormatter normalises the names of the regular files directly inside
// a folder: spaces become underscores and the whole name is lowercased.
type FolderFormatter struct {
	logger logger.Logger
	rename func(oldPath, newPath string) error
}

// FolderOption customises a FolderFormatter.
type FolderOption func(*FolderFormatter)

// WithRename replaces os.Rename as the rename operation.
func WithRename(rename func(oldPath, newPath string) error) FolderOption {
	return func(ff *FolderFormatter) {
		ff.rename = rename
	}
}

// NewFolderFormatter creates a formatter that renames through the OS.
func NewFolderFormatter(log logger.Logger, opts ...FolderOption) *FolderFormatter {
	ff := &FolderFormatter{
		logger: log,
		rename: os.Rename,
	}
	for _, opt := range opts {
		opt(ff)
	}
	return ff
}

// NormalizeName returns the formatted form of a file name.
func NormalizeName(name string) string {
	return cases.Lower(language.Und).String(strings.ReplaceAll(name, " ", "_"))
}

// Format renames every regular file directly inside dir. Subdirectories and
// other non-regular entries are left alone and are not descended into.
//
// A file whose formatted name already belongs to another file is skipped and
// listed in Report.Skipped. The first listing or rename error stops the run;
// files renamed before it stay renamed.
func (ff *FolderFormatter) Format(ctx context.Context, dir string) (*Report, error) {
	startTime := time.Now()
	report := &Report{Dir: dir}

	info, err := os.Stat(dir)
	if err != nil {
		return report, fmt.Errorf("failed to open folder: %w", err)
	}
	if !info.IsDir() {
		return report, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, fmt.Errorf("failed to list folder: %w", err)
	}

	caser := cases.Lower(language.Und)
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		name := entry.Name()
		oldPath := filepath.Join(dir, name)

		// Symlinks to files count as files, as with a plain stat.
		target, err := os.Stat(oldPath)
		if err != nil || !target.Mode().IsRegular() {
			continue
		}

		newName := caser.String(strings.ReplaceAll(name, " ", "_"))
		if newName == name {
			report.Unchanged++
			continue
		}

		newPath := filepath.Join(dir, newName)
		collides, err := occupiedByOther(oldPath, newPath)
		if err != nil {
			return report, fmt.Errorf("failed to check %s: %w", newName, err)
		}
		if collides {
			report.Skipped = append(report.Skipped, Rename{From: name, To: newName})
			ff.logger.Warning(folderComponent, "rename skipped, target exists", map[string]interface{}{
				"from": name,
				"to":   newName,
			})
			continue
		}

		if err := ff.rename(oldPath, newPath); err != nil {
			return report, fmt.Errorf("failed to rename file: %w", err)
		}
		report.Renamed = append(report.Renamed, Rename{From: name, To: newName})

		ff.logger.Debug(folderComponent, "file renamed", map[string]interface{}{
			"from": name,
			"to":   newName,
		})
	}

	report.Duration = time.Since(startTime)
	ff.logger.Info(folderComponent, "folder formatted", map[string]interface{}{
		"dir":       dir,
		"renamed":   len(report.Renamed),
		"skipped":   len(report.Skipped),
		"unchanged": report.Unchanged,
		"duration":  report.Duration.String(),
	})
	return report, nil
}

// occupiedByOther reports whether newPath exists and is not oldPath itself.
// The two are the same file on case-insensitive file systems.
func occupiedByOther(oldPath, newPath string) (bool, error) {
	existing, err := os.Lstat(newPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	source, err := os.Lstat(oldPath)
	if err != nil {
		return false, err
	}
	return !os.SameFile(source, existing), nil
}

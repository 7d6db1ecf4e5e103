package models

import (
	"path/filepath"
	"sync"
)

const untitledName = "Untitled"

// Session holds the state of the open document: the file it is bound to,
// the raw text buffer and the style tags applied to that buffer.
type Session struct {
	mu          sync.RWMutex
	currentFile string
	buffer      string
	modified    bool
	tags        *StyleTags
}

// NewSession creates an empty, unbound session.
func NewSession() *Session {
	return &Session{tags: NewStyleTags()}
}

// Reset clears the buffer, unbinds the file and drops all styling.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentFile = ""
	s.buffer = ""
	s.modified = false
	s.tags.Clear()
}

// Load replaces the buffer wholesale with text read from path.
func (s *Session) Load(path, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentFile = path
	s.buffer = text
	s.modified = false
	s.tags.Clear()
}

// MarkSaved binds the session to path after a successful write.
func (s *Session) MarkSaved(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentFile = path
	s.modified = false
}

// SetBuffer records an edit made in the editor widget. Tag ranges follow the
// edited region. It reports whether the buffer actually changed.
func (s *Session) SetBuffer(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if text == s.buffer {
		return false
	}

	pos, deleted, inserted := diffRunes([]rune(s.buffer), []rune(text))
	s.tags.Edit(pos, deleted, inserted)
	s.buffer = text
	s.modified = true
	return true
}

func (s *Session) CurrentFile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentFile
}

func (s *Session) Buffer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buffer
}

func (s *Session) Modified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

// Tags returns the style tags of the buffer.
func (s *Session) Tags() *StyleTags {
	return s.tags
}

// DisplayName is the base name of the bound file, or "Untitled".
func (s *Session) DisplayName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentFile == "" {
		return untitledName
	}
	return filepath.Base(s.currentFile)
}

// diffRunes reduces the change from before to after to a single replaced region:
// at rune offset pos, deleted runes were replaced by inserted runes.
func diffRunes(before, after []rune) (pos, deleted, inserted int) {
	prefix := 0
	for prefix < len(before) && prefix < len(after) && before[prefix] == after[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(before)-prefix && suffix < len(after)-prefix &&
		before[len(before)-1-suffix] == after[len(after)-1-suffix] {
		suffix++
	}

	return prefix, len(before) - prefix - suffix, len(after) - prefix - suffix
}

package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	MinFontSize       = 8
	MaxFontSize       = 72
	DefaultFontSize   = 12
	DefaultFontFamily = "Arial"
)

var ErrSizeOutOfRange = errors.New("font size out of range")

// FontSettings is the font applied to the whole editor.
type FontSettings struct {
	Family string
	Size   int
}

func DefaultFontSettings() FontSettings {
	return FontSettings{Family: DefaultFontFamily, Size: DefaultFontSize}
}

// ParseSize parses the size selector text, accepting MinFontSize..MaxFontSize.
func ParseSize(text string) (int, error) {
	size, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("invalid font size %q: %w", text, err)
	}
	if size < MinFontSize || size > MaxFontSize {
		return 0, fmt.Errorf("%w: %d not in [%d,%d]", ErrSizeOutOfRange, size, MinFontSize, MaxFontSize)
	}
	return size, nil
}

// SizeOptions lists every selectable size as text.
func SizeOptions() []string {
	options := make([]string, 0, MaxFontSize-MinFontSize+1)
	for size := MinFontSize; size <= MaxFontSize; size++ {
		options = append(options, strconv.Itoa(size))
	}
	return options
}

package models

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrTransparentColor = errors.New("fully transparent color")

// ColorHex formats c as "#rrggbb".
func ColorHex(c color.Color) (string, error) {
	if c == nil {
		return "", ErrTransparentColor
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "", ErrTransparentColor
	}
	return cf.Hex(), nil
}

// ParseColorHex parses a "#rrggbb" or "#rgb" string.
func ParseColorHex(hex string) (color.Color, error) {
	cf, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return cf, nil
}

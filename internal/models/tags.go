package models

import (
	"sort"
	"sync"
)

// Tag names understood by the editor.
const (
	TagBold  = "bold"
	TagColor = "color"
)

// Range is a half-open span of rune offsets [Start, End).
type Range struct {
	Start int
	End   int
}

func (r Range) empty() bool { return r.End <= r.Start }

// TagStyle is the single property a tag contributes when rendered.
type TagStyle struct {
	Bold       bool
	Foreground string
}

// Span is a run of text sharing the same effective style.
type Span struct {
	Text       string
	Bold       bool
	Foreground string
}

// StyleTags tracks named style annotations over the buffer. Each name has one
// configuration shared by all of its ranges; rendering is the union of every
// tag active on a character.
type StyleTags struct {
	mu      sync.RWMutex
	configs map[string]TagStyle
	ranges  map[string][]Range
}

func NewStyleTags() *StyleTags {
	return &StyleTags{
		configs: make(map[string]TagStyle),
		ranges:  make(map[string][]Range),
	}
}

// Configure sets the style of a tag name, restyling all of its ranges.
func (t *StyleTags) Configure(name string, style TagStyle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.configs[name] = style
}

// Config returns the configured style for name.
func (t *StyleTags) Config(name string) (TagStyle, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	style, ok := t.configs[name]
	return style, ok
}

// Add applies name over [start, end).
func (t *StyleTags) Add(name string, start, end int) {
	r := normalizeRange(start, end)
	if r.empty() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.ranges[name] = mergeRanges(append(t.ranges[name], r))
}

// Remove strips name from [start, end), splitting ranges where needed.
func (t *StyleTags) Remove(name string, start, end int) {
	cut := normalizeRange(start, end)
	if cut.empty() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var kept []Range
	for _, r := range t.ranges[name] {
		if r.End <= cut.Start || r.Start >= cut.End {
			kept = append(kept, r)
			continue
		}
		if r.Start < cut.Start {
			kept = append(kept, Range{Start: r.Start, End: cut.Start})
		}
		if r.End > cut.End {
			kept = append(kept, Range{Start: cut.End, End: r.End})
		}
	}
	t.setRanges(name, kept)
}

// Has reports whether the character at pos carries name.
func (t *StyleTags) Has(name string, pos int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, r := range t.ranges[name] {
		if pos >= r.Start && pos < r.End {
			return true
		}
	}
	return false
}

// Ranges returns a copy of the ranges carrying name.
func (t *StyleTags) Ranges(name string) []Range {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Range(nil), t.ranges[name]...)
}

// ToggleBold flips the bold tag over sel, deciding from the selection's first
// character. It returns false and does nothing when sel is empty.
func (t *StyleTags) ToggleBold(sel Selection) bool {
	if sel.Empty() {
		return false
	}

	if t.Has(TagBold, sel.Start) {
		t.Remove(TagBold, sel.Start, sel.End)
		return true
	}

	t.Configure(TagBold, TagStyle{Bold: true})
	t.Add(TagBold, sel.Start, sel.End)
	return true
}

// SetColor configures the color tag with hex and applies it over sel.
// It returns false and does nothing when sel is empty.
func (t *StyleTags) SetColor(sel Selection, hex string) bool {
	if sel.Empty() {
		return false
	}

	t.Configure(TagColor, TagStyle{Foreground: hex})
	t.Add(TagColor, sel.Start, sel.End)
	return true
}

// Clear drops every range. Tag configurations are kept.
func (t *StyleTags) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ranges = make(map[string][]Range)
}

// Edit moves ranges to follow a buffer edit where deleted runes at pos were
// replaced by inserted runes. Text inserted strictly inside a range joins it;
// text inserted at a range boundary does not.
func (t *StyleTags) Edit(pos, deleted, inserted int) {
	if deleted == 0 && inserted == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for name, ranges := range t.ranges {
		moved := make([]Range, 0, len(ranges))
		for _, r := range ranges {
			r.Start = afterDelete(r.Start, pos, deleted)
			r.End = afterDelete(r.End, pos, deleted)

			switch {
			case r.Start < pos && pos < r.End:
				r.End += inserted
			case r.Start >= pos:
				r.Start += inserted
				r.End += inserted
			}
			moved = append(moved, r)
		}
		t.setRanges(name, mergeRanges(moved))
	}
}

// Spans splits text at every tag boundary and resolves the effective style
// of each piece. Adjacent pieces with the same style are joined.
func (t *StyleTags) Spans(text string) []Span {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.ranges))
	bounds := map[int]struct{}{0: {}, len(runes): {}}
	for name, ranges := range t.ranges {
		names = append(names, name)
		for _, r := range ranges {
			bounds[clamp(r.Start, 0, len(runes))] = struct{}{}
			bounds[clamp(r.End, 0, len(runes))] = struct{}{}
		}
	}
	sort.Strings(names)

	cuts := make([]int, 0, len(bounds))
	for b := range bounds {
		cuts = append(cuts, b)
	}
	sort.Ints(cuts)

	var spans []Span
	for i := 0; i+1 < len(cuts); i++ {
		start, end := cuts[i], cuts[i+1]
		if start == end {
			continue
		}

		var style TagStyle
		for _, name := range names {
			if !containsPos(t.ranges[name], start) {
				continue
			}
			cfg := t.configs[name]
			style.Bold = style.Bold || cfg.Bold
			if cfg.Foreground != "" {
				style.Foreground = cfg.Foreground
			}
		}

		piece := string(runes[start:end])
		if n := len(spans); n > 0 && spans[n-1].Bold == style.Bold && spans[n-1].Foreground == style.Foreground {
			spans[n-1].Text += piece
			continue
		}
		spans = append(spans, Span{Text: piece, Bold: style.Bold, Foreground: style.Foreground})
	}
	return spans
}

func (t *StyleTags) setRanges(name string, ranges []Range) {
	if len(ranges) == 0 {
		delete(t.ranges, name)
		return
	}
	t.ranges[name] = ranges
}

func afterDelete(x, pos, deleted int) int {
	switch {
	case x <= pos:
		return x
	case x < pos+deleted:
		return pos
	default:
		return x - deleted
	}
}

func containsPos(ranges []Range, pos int) bool {
	for _, r := range ranges {
		if pos >= r.Start && pos < r.End {
			return true
		}
	}
	return false
}

func normalizeRange(start, end int) Range {
	if end < start {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	return Range{Start: start, End: end}
}

// mergeRanges sorts ranges, drops empty ones and joins overlapping or touching ones.
func mergeRanges(ranges []Range) []Range {
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })

	merged := ranges[:0]
	for _, r := range ranges {
		if r.empty() {
			continue
		}
		if n := len(merged); n > 0 && r.Start <= merged[n-1].End {
			if r.End > merged[n-1].End {
				merged[n-1].End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package fonts

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/flopp/go-findfont"
)

// Families served by the toolkit itself rather than by a font file.
const (
	FamilyDefault   = "Default"
	FamilyMonospace = "Monospace"
)

type face struct {
	name    string
	regular string
	bold    string
}

// Faces are the resources the editor theme needs for one family. A nil
// resource means the toolkit default is used for that style.
type Faces struct {
	Regular   fyne.Resource
	Bold      fyne.Resource
	Monospace bool
}

// Catalog maps family names onto font files found on the host. Family
// lookups ignore case, so "Arial" finds arial.ttf.
type Catalog struct {
	mu        sync.Mutex
	families  map[string]face
	resources map[string]fyne.Resource
}

// Discover builds a catalog from the fonts installed on this machine.
func Discover() *Catalog {
	return NewCatalog(findfont.List())
}

// NewCatalog builds a catalog from explicit font file paths. Only TrueType and
// OpenType files are used; italic faces are ignored.
func NewCatalog(paths []string) *Catalog {
	c := &Catalog{
		families:  make(map[string]face),
		resources: make(map[string]fyne.Resource),
	}

	sort.Strings(paths)
	for _, path := range paths {
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}

		family, style := splitStyle(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		if family == "" || builtin(family) {
			continue
		}

		key := strings.ToLower(family)
		f := c.families[key]
		switch style {
		case styleRegular:
			if f.regular == "" {
				f.name = family
				f.regular = path
			}
		case styleBold:
			if f.bold == "" {
				f.bold = path
			}
		default:
			continue
		}
		c.families[key] = f
	}

	for name, f := range c.families {
		if f.regular == "" {
			delete(c.families, name)
		}
	}
	return c
}

// Families lists the built-in families followed by the discovered ones.
func (c *Catalog) Families() []string {
	names := make([]string, 0, len(c.families)+2)
	for _, f := range c.families {
		names = append(names, f.name)
	}
	sort.Strings(names)
	return append([]string{FamilyDefault, FamilyMonospace}, names...)
}

// Has reports whether family can be selected.
func (c *Catalog) Has(family string) bool {
	_, ok := c.lookup(family)
	return ok
}

// Preferred returns the catalog's spelling of want when it is available and
// FamilyDefault otherwise.
func (c *Catalog) Preferred(want string) string {
	if name, ok := c.lookup(want); ok {
		return name
	}
	return FamilyDefault
}

func (c *Catalog) lookup(family string) (string, bool) {
	switch {
	case strings.EqualFold(family, FamilyDefault):
		return FamilyDefault, true
	case strings.EqualFold(family, FamilyMonospace):
		return FamilyMonospace, true
	}
	f, ok := c.families[strings.ToLower(family)]
	return f.name, ok
}

func builtin(family string) bool {
	return strings.EqualFold(family, FamilyDefault) || strings.EqualFold(family, FamilyMonospace)
}

// Faces loads the font resources for family.
func (c *Catalog) Faces(family string) (Faces, error) {
	switch family {
	case FamilyDefault, "":
		return Faces{}, nil
	case FamilyMonospace:
		return Faces{Monospace: true}, nil
	}

	f, ok := c.families[strings.ToLower(family)]
	if !ok {
		return Faces{}, fmt.Errorf("unknown font family %q", family)
	}

	regular, err := c.load(f.regular)
	if err != nil {
		return Faces{}, err
	}
	faces := Faces{Regular: regular}
	if f.bold != "" {
		if faces.Bold, err = c.load(f.bold); err != nil {
			return Faces{}, err
		}
	}
	return faces, nil
}

func (c *Catalog) load(path string) (fyne.Resource, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res, ok := c.resources[path]; ok {
		return res, nil
	}
	res, err := fyne.LoadResourceFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", path, err)
	}
	c.resources[path] = res
	return res, nil
}

type fontStyle int

const (
	styleRegular fontStyle = iota
	styleBold
	styleItalic
)

var styleSuffixes = []struct {
	suffix string
	style  fontStyle
}{
	{"-bolditalic", styleItalic},
	{"-boldoblique", styleItalic},
	{"_bold_italic", styleItalic},
	{"-italic", styleItalic},
	{"_italic", styleItalic},
	{"-oblique", styleItalic},
	{"-regular", styleRegular},
	{"-bold", styleBold},
	{"_bold", styleBold},
	{"bd", styleBold},
}

// splitStyle separates a font file's base name into family and style,
// e.g. "DejaVuSans-Bold" -> ("DejaVuSans", bold), "arialbd" -> ("arial", bold).
func splitStyle(base string) (string, fontStyle) {
	lower := strings.ToLower(base)
	if len(lower) != len(base) {
		return base, styleRegular
	}
	for _, s := range styleSuffixes {
		if strings.HasSuffix(lower, s.suffix) {
			return base[:len(base)-len(s.suffix)], s.style
		}
	}
	return base, styleRegular
}

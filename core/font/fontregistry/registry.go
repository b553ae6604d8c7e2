package fontregistry

import (
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/glyphatlas/core"
	"github.com/npillmayer/glyphatlas/core/font/pff2"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/unicode/norm"
)

// Registry is a type for holding information about loaded fonts.
type Registry struct {
	sync.Mutex
	fonts map[string]*pff2.Font
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold loaded fonts.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty font registry.
func NewRegistry() *Registry {
	fr := &Registry{
		fonts: make(map[string]*pff2.Font),
	}
	return fr
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// The font will be stored using the normalized font name as a key. If this
// key is already associated with a font, that font will not be overridden.
func (fr *Registry) StoreFont(name string, f *pff2.Font) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	key := NormalizeFontname(name)
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.fonts[key]; !ok {
		tracer().Debugf("registry stores font %q as %s", f.Info.Name, key)
		fr.fonts[key] = f
	}
}

// Font returns the font stored under name. name will be normalized before
// lookup. If no such font is contained, Font returns an error with code
// core.EMISSING.
func (fr *Registry) Font(name string) (*pff2.Font, error) {
	key := NormalizeFontname(name)
	fr.Lock()
	defer fr.Unlock()
	if f, ok := fr.fonts[key]; ok {
		tracer().Debugf("registry found font %s", key)
		return f, nil
	}
	tracer().Infof("registry does not contain font %s", key)
	return nil, core.Error(core.EMISSING, "font %s not found in registry", key)
}

// Keys returns the keys of all fonts in the registry, sorted.
func (fr *Registry) Keys() []string {
	fr.Lock()
	defer fr.Unlock()
	keys := make([]string, 0, len(fr.fonts))
	for k := range fr.fonts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LogFontList is a helper function to dump the list of known fonts
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for _, k := range fr.Keys() {
		fr.Lock()
		f := fr.fonts[k]
		fr.Unlock()
		tracer().Infof("font [%s] = %q, %d glyphs, atlas %d×%d", k, f.Info.Name,
			len(f.Glyphs), f.Atlas.Width, f.Atlas.Height)
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

// NormalizeFontname creates a registry key from a font name or font file
// path: directory and file extension are stripped, spaces are replaced by
// underscores and the name is lower-cased and Unicode-NFC-normalized.
// "/boot/grub/fonts/DejaVu Sans Mono 16.pf2" and "dejavu_sans_mono_16"
// will produce the same key.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = path.Base(strings.ReplaceAll(fname, "\\", "/"))
	if strings.EqualFold(path.Ext(fname), ".pf2") {
		fname = fname[:len(fname)-4]
	}
	fname = strings.ReplaceAll(fname, " ", "_")
	fname = strings.ToLower(fname)
	return norm.NFC.String(fname)
}

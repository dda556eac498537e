package fontregistry

import (
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/fontica/core"
	"github.com/npillmayer/fontica/core/font"
	"github.com/npillmayer/schuko/tracing"
)

// Registry is a type for holding loaded fonts, keyed by normalized font
// identifier.
type Registry struct {
	sync.RWMutex
	fonts map[string]*font.ScalableFont
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

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	fr := &Registry{
		fonts: make(map[string]*font.ScalableFont),
	}
	return fr
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// The font will be stored using the normalized identifier as a key. If this
// key is already associated with a font, that font will not be overridden.
// StoreFont reports whether f has been stored.
func (fr *Registry) StoreFont(id string, f *font.ScalableFont) bool {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return false
	}
	key := NormalizeFontID(id)
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.fonts[key]; ok {
		tracer().Debugf("registry already contains font %s", key)
		return false
	}
	tracer().Debugf("registry stores font %s as %s", f.Fontname, key)
	fr.fonts[key] = f
	return true
}

// Font returns the font registered for id, if any.
func (fr *Registry) Font(id string) (*font.ScalableFont, bool) {
	fr.RLock()
	defer fr.RUnlock()
	f, ok := fr.fonts[NormalizeFontID(id)]
	return f, ok
}

// Contains is a predicate: has a font been registered for id?
func (fr *Registry) Contains(id string) bool {
	_, ok := fr.Font(id)
	return ok
}

// Len returns the number of registered fonts.
func (fr *Registry) Len() int {
	fr.RLock()
	defer fr.RUnlock()
	return len(fr.fonts)
}

// TypeCase returns a fresh typecase for the font registered as id, prepared
// at pixel size size.
//
// If no typecase can be produced, TypeCase will derive one from the fallback
// font and return it, together with an error.
func (fr *Registry) TypeCase(id string, size float64) (*font.TypeCase, error) {
	tracer().Debugf("registry searches for font %s at %.2f", id, size)
	if f, ok := fr.Font(id); ok {
		return f.PrepareCase(size)
	}
	tracer().Infof("registry does not contain font %s", id)
	err := core.Error(core.EMISSING, "font %s not found in registry", id)
	t, ferr := font.FallbackFont().PrepareCase(size)
	if ferr != nil {
		return nil, ferr
	}
	return t, err
}

// LogFontList is a helper function to dump the list of known fonts
// to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	fr.RLock()
	keys := make([]string, 0, len(fr.fonts))
	for k := range fr.fonts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	tracer().Infof("--- registered fonts ---")
	for _, k := range keys {
		tracer().Infof("font [%s] = %v", k, fr.fonts[k].Fontname)
	}
	fr.RUnlock()
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

// NormalizeFontID normalizes a font identifier for use as a registry key.
// The catalog merges identifiers with equal keys into one record.
func NormalizeFontID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.ReplaceAll(id, " ", "_")
	return strings.ToLower(id)
}

/*
Package coverage decides whether a loaded font supplies glyphs for a preview
text.

The decision is a heuristic, not an inspection of the font's character map:
the text is measured at a reference size twice, once set with the target
font (substituting the fallback font per character where the target has no
glyph), and once set with the fallback font alone. If the widths differ, the
target font contributed glyphs and the text counts as supported. If the
widths are equal, the fallback has been used throughout, and the text counts
as unsupported.

A font whose glyphs happen to match the fallback's advances exactly is
reported as unsupported. This is accepted.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package coverage

import (
	"github.com/npillmayer/fontica/core"
	"github.com/npillmayer/fontica/core/font"
	"github.com/npillmayer/fontica/core/font/fontregistry"
	"github.com/npillmayer/fontica/core/font/loader"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// tracer traces with key 'fontica.coverage'.
func tracer() tracing.Trace {
	return tracing.Select("fontica.coverage")
}

// ReferenceSize is the pixel size text is measured at.
const ReferenceSize = 16.0

// ErrCheckerPrecondition is returned when checking a font which has not
// been loaded.
var ErrCheckerPrecondition = core.Error(core.EPRECONDITION, "coverage may only be checked for loaded fonts")

// Checker answers coverage questions for fonts of a registry.
// It is safe for concurrent use.
type Checker struct {
	states   loader.StateReader
	registry *fontregistry.Registry
	fallback *font.ScalableFont
}

// NewChecker creates a checker for fonts in registry, which will consult
// states for the load state of fonts. If fallback is nil, the built-in
// fallback font is used.
func NewChecker(states loader.StateReader, registry *fontregistry.Registry, fallback *font.ScalableFont) *Checker {
	if fallback == nil {
		fallback = font.FallbackFont()
	}
	if registry == nil {
		registry = fontregistry.GlobalRegistry()
	}
	return &Checker{states: states, registry: registry, fallback: fallback}
}

// Fallback returns the font the checker compares against.
func (c *Checker) Fallback() *font.ScalableFont {
	return c.fallback
}

// Supports reports whether the font registered as fontID supplies glyphs for
// text. The font has to be in load state Loaded, otherwise
// ErrCheckerPrecondition is returned. Empty text is never supported.
func (c *Checker) Supports(fontID, text string) (bool, error) {
	target, fallback, err := c.Measure(fontID, text)
	if err != nil {
		return false, err
	}
	supported := target != fallback
	tracer().Debugf("coverage of %s for %q: %v (%s vs. %s)", fontID, text, supported, target, fallback)
	return supported, nil
}

// Measure returns the widths of text at the reference size, set with the
// target font and set with the fallback font only. Text is NFC-normalized
// before measuring.
func (c *Checker) Measure(fontID, text string) (target, fallback fixed.Int26_6, err error) {
	if state := c.states.State(fontID); state != loader.Loaded {
		err = core.WrapError(ErrCheckerPrecondition, core.EPRECONDITION,
			"font %s is %s, cannot check coverage", fontID, state)
		return
	}
	if text == "" {
		return
	}
	text = norm.NFC.String(text)
	// typecases are not safe for concurrent use, so prepare fresh ones
	tc, err := c.registry.TypeCase(fontID, ReferenceSize)
	if core.Code(err) == core.EMISSING {
		err = core.WrapError(err, core.EINTERNAL, "font %s is loaded but not registered", fontID)
		return
	} else if err != nil {
		return
	}
	tracer().Debugf("measuring %q with %s", text, tc.ScalableFontParent().Fontname)
	fb, err := c.fallback.PrepareCase(ReferenceSize)
	if err != nil {
		return
	}
	target = measure(tc, fb, text)
	fallback = measure(nil, fb, text)
	return
}

// measure sets text with a chain of primary and fallback typecases.
// Characters for which primary has no glyph are set with fallback. Kerning
// is applied between adjacent characters set with the same typecase.
// primary may be nil.
func measure(primary, fallback *font.TypeCase, text string) fixed.Int26_6 {
	var width fixed.Int26_6
	var prevFace xfont.Face
	var prev rune
	for _, r := range text {
		face := fallback.Face()
		if primary != nil && primary.HasGlyph(r) {
			face = primary.Face()
		}
		if face == prevFace {
			width += face.Kern(prev, r)
		}
		advance, _ := face.GlyphAdvance(r)
		width += advance
		prev, prevFace = r, face
	}
	return width
}

// FallbackFromConfig returns the installed system font name as a fallback
// font. If name is empty or cannot be loaded, the built-in fallback font is
// returned.
func FallbackFromConfig(name string) *font.ScalableFont {
	if name == "" {
		return font.FallbackFont()
	}
	f, err := font.SystemFont(name)
	if err != nil {
		tracer().Errorf("cannot use %s as fallback font: %v", name, err)
		return font.FallbackFont()
	}
	tracer().Infof("using %s as fallback font", f.Fontname)
	return f
}

/*
Package font is for typeface and font handling.

We stick to the following nomenclature:

* A "typeface" is a family of fonts, e.g. "Roboto". In the catalog a
typeface is represented by a font record, which may list several variants.

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Roboto regular".

* A "typecase" is a scaled font, i.e. a font at a certain pixel size, ready to
measure text.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

Only TrueType and OpenType (CFF) outlines are parsed. WOFF containers are
listed by the catalog, but will fail to parse here.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"errors"
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'fontica.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("fontica.fonts")
}

// ScalableFont is a parsed font binary.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path or URL the binary has been loaded from
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container, safe for concurrent use with separate buffers
}

// TypeCase is a scalable font prepared at a given pixel size.
//
// A typecase is not safe for concurrent use. Clients should prepare a
// typecase per goroutine.
type TypeCase struct {
	scalableFontParent *ScalableFont
	face               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	size               float64
	buf                sfnt.Buffer
}

// LoadOpenTypeFont reads and parses a font file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses a font binary (TrueType or OpenType).
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	if len(fbytes) == 0 {
		return nil, errors.New("empty font binary")
	}
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// HasGlyph is a predicate: does the font map rune r to a glyph other than
// .notdef?
func (sf *ScalableFont) HasGlyph(r rune) bool {
	var buf sfnt.Buffer
	gid, err := sf.SFNT.GlyphIndex(&buf, r)
	return err == nil && gid != 0
}

// PrepareCase creates a typecase for a pixel size. Sizes outside of
// [1…500] are replaced by 16px.
func (sf *ScalableFont) PrepareCase(pxsize float64) (*TypeCase, error) {
	typecase := &TypeCase{scalableFontParent: sf}
	if pxsize < 1.0 || pxsize > 500.0 {
		tracer().Errorf("font size must be 1px < size < 500px, is %g (set to 16px)", pxsize)
		pxsize = 16.0
	}
	options := &opentype.FaceOptions{
		Size:    pxsize,
		DPI:     72, // 1pt = 1px
		Hinting: xfont.HintingNone,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, err
	}
	typecase.face = f
	typecase.size = pxsize
	return typecase, nil
}

// ScalableFontParent returns the font a typecase has been prepared from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// PxSize returns the pixel size of a typecase.
func (tc *TypeCase) PxSize() float64 {
	return tc.size
}

// Face returns the x/image face for a typecase.
func (tc *TypeCase) Face() xfont.Face {
	return tc.face
}

// HasGlyph is a predicate: does the typecase's font contain a glyph for r?
func (tc *TypeCase) HasGlyph(r rune) bool {
	gid, err := tc.scalableFontParent.SFNT.GlyphIndex(&tc.buf, r)
	return err == nil && gid != 0
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	gofont, err := ParseOpenTypeFont(goregular.TTF)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	gofont.Fontname = "Go Sans"
	gofont.Filepath = "internal"
	return gofont
}

// SystemFont locates an installed font by name (e.g., "DejaVuSans.ttf" or
// "Arial") and loads it.
func SystemFont(name string) (*ScalableFont, error) {
	fpath, err := findfont.Find(name)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("%s is a system font at %s", name, fpath)
	return LoadOpenTypeFont(fpath)
}

package main

import (
	"strings"
	"sync"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

var graphemeSetup sync.Once

// abbreviate shortens text to at most maxWidth terminal cells. Text is cut
// between grapheme clusters only, and East Asian wide characters count as
// two cells.
func abbreviate(text string, maxWidth int) string {
	graphemeSetup.Do(grapheme.SetupGraphemeClasses)
	gstr := grapheme.StringFromString(text)
	var b strings.Builder
	width := 0
	for i := 0; i < gstr.Len(); i++ {
		grphm := gstr.Nth(i)
		w := uax11.Width([]byte(grphm), uax11.LatinContext)
		if width+w > maxWidth {
			b.WriteString("…")
			break
		}
		width += w
		b.WriteString(grphm)
	}
	return b.String()
}

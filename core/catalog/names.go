package catalog

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"github.com/npillmayer/fontica/core/font"
)

// FontExtensions lists the recognized font file extensions.
var FontExtensions = []string{".ttf", ".otf", ".woff", ".woff2"}

// IsFontFile is a predicate: has filename a recognized font file extension
// (case-insensitive)?
func IsFontFile(filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	for _, e := range FontExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

var (
	// variable font axes in brackets, e.g. "Roboto[wdth,wght]"
	axesPattern = regexp.MustCompile(`\[[^\]]*\]$`)
	// variable font suffix, e.g. "VariableFont_wdth,wght"
	variablePattern = regexp.MustCompile(`(?i)^variablefont`)
	// static variant markers, e.g. "Regular", "BoldItalic", "700italic"
	markerPattern = regexp.MustCompile(`(?i)^(thin|hairline|extralight|ultralight|light|regular|normal|book|medium|semibold|demibold|bold|extrabold|ultrabold|black|heavy|[1-9]00)?(italic|oblique)?$`)
)

// ParseFilename derives the font identifier and the variant name from the
// name of a font file. Extension, variable font axes and a trailing variant
// marker (separated by '-') are stripped, case-insensitively.
//
//    Roboto-Regular.ttf                     → Roboto, regular
//    Merriweather-BoldItalic.ttf            → Merriweather, 700italic
//    Roboto-Italic-VariableFont_wdth,wght.ttf → Roboto, italic
//    Open Sans-700.ttf                      → Open Sans, 700
//
func ParseFilename(filename string) (id string, variant string) {
	base := path.Base(filename)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.TrimSpace(axesPattern.ReplaceAllString(base, ""))
	marker := ""
	for i := 0; i < 2; i++ { // at most a variable-font suffix plus a static marker
		dash := strings.LastIndex(base, "-")
		if dash <= 0 {
			break
		}
		suffix := base[dash+1:]
		if variablePattern.MatchString(suffix) {
			base = base[:dash]
			continue
		}
		if suffix != "" && markerPattern.MatchString(suffix) {
			marker = suffix
			base = base[:dash]
		}
		break
	}
	return strings.TrimSpace(base), font.NormalizeVariant(marker)
}

// DisplayName derives a human readable name from a font identifier:
// remaining variant suffixes are removed, separators are replaced by
// spaces and CamelCase is split into words ("PlayfairDisplay" → "Playfair
// Display", "PTSans" → "PT Sans").
func DisplayName(id string) string {
	id, _ = ParseFilename(id + ".ttf")
	id = strings.NewReplacer("_", " ", "-", " ").Replace(id)
	runes := []rune(id)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && startsWord(runes, i) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// startsWord is a predicate: does an upper case letter at position i start a
// new word in CamelCase?
func startsWord(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
		return true
	}
	return false
}

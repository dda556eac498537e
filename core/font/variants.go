package font

import (
	"strconv"
	"strings"

	xfont "golang.org/x/image/font"
)

// RegularVariant is the variant name of a font with normal style and weight.
const RegularVariant = "regular"

// GuessStyleAndWeight trys to guess a font's style and weight from a variant
// marker, as found at the end of font file names (e.g., "BoldItalic",
// "Light", "700italic").
func GuessStyleAndWeight(marker string) (xfont.Style, xfont.Weight) {
	marker = strings.ToLower(strings.TrimSpace(marker))
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if strings.Contains(marker, "italic") {
		style = xfont.StyleItalic
		marker = strings.Replace(marker, "italic", "", 1)
	} else if strings.Contains(marker, "oblique") {
		style = xfont.StyleOblique
		marker = strings.Replace(marker, "oblique", "", 1)
	}
	if n, err := strconv.Atoi(marker); err == nil && n >= 100 && n <= 900 {
		return style, xfont.Weight(n/100 - 4)
	}
	switch marker {
	case "thin", "hairline":
		weight = xfont.WeightThin
	case "extralight", "ultralight", "xlight":
		weight = xfont.WeightExtraLight
	case "light":
		weight = xfont.WeightLight
	case "medium":
		weight = xfont.WeightMedium
	case "semibold", "demibold":
		weight = xfont.WeightSemiBold
	case "bold", "b":
		weight = xfont.WeightBold
	case "extrabold", "ultrabold", "xbold":
		weight = xfont.WeightExtraBold
	case "black", "heavy":
		weight = xfont.WeightBlack
	}
	return style, weight
}

// VariantName returns the variant name for a style and weight, following
// the naming of the Google Fonts directory: "regular", "italic", "700",
// "700italic", etc.
func VariantName(style xfont.Style, weight xfont.Weight) string {
	/* from https://pkg.go.dev/golang.org/x/image/font
	WeightThin       Weight = -3 // CSS font-weight value 100.
	WeightNormal     Weight = +0 // CSS font-weight value 400.
	WeightBlack      Weight = +5 // CSS font-weight value 900.
	*/
	italic := style == xfont.StyleItalic || style == xfont.StyleOblique
	if weight == xfont.WeightNormal {
		if italic {
			return "italic"
		}
		return RegularVariant
	}
	name := strconv.Itoa((int(weight) + 4) * 100)
	if italic {
		name += "italic"
	}
	return name
}

// NormalizeVariant maps a variant marker to its canonical variant name.
func NormalizeVariant(marker string) string {
	if marker == "" {
		return RegularVariant
	}
	return VariantName(GuessStyleAndWeight(marker))
}

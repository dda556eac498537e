package catalog

import (
	"strings"
)

// CategoryRule assigns a category to display names containing one of its
// keywords, unless the name contains one of the exclusions.
type CategoryRule struct {
	Category Category
	Keywords []string // lower case substrings
	Unless   []string // lower case substrings vetoing a match
}

// CategoryRules is the ordered rule table used by Categorize. Rules are
// evaluated top to bottom, the first match wins. Names matching no rule are
// sans-serif.
var CategoryRules = []CategoryRule{
	{
		Category: Serif,
		Keywords: []string{"serif", "merriweather", "playfair", "lora", "baskerville",
			"garamond", "georgia", "times", "bodoni", "caslon", "crimson", "slab",
			"gentium", "cormorant", "libre caslon", "domine", "vollkorn"},
		Unless: []string{"sans"},
	},
	{
		Category: Handwriting,
		Keywords: []string{"script", "hand", "pacifico", "dancing", "indie flower",
			"caveat", "brush", "marker", "kalam", "satisfy", "cursive",
			"shadows into light", "amatic", "great vibes", "sacramento"},
	},
	{
		Category: Display,
		Keywords: []string{"display", "anton", "bebas", "oswald", "lobster", "abril",
			"bungee", "righteous", "titan", "black ops", "poster", "fredoka"},
	},
	{
		Category: Monospace,
		Keywords: []string{"mono", "code", "courier", "consol", "inconsolata",
			"typewriter"},
	},
}

// Categorize assigns a category to a font by its display name. The result
// depends on nothing but the name.
func Categorize(displayName string) Category {
	name := strings.ToLower(displayName)
	for _, rule := range CategoryRules {
		if rule.matches(name) {
			return rule.Category
		}
	}
	return SansSerif
}

func (rule CategoryRule) matches(name string) bool {
	for _, veto := range rule.Unless {
		if strings.Contains(name, veto) {
			return false
		}
	}
	for _, kw := range rule.Keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

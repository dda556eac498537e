package session

import (
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// Direction is the writing direction of preview text.
type Direction string

// Writing directions.
const (
	LeftToRight Direction = "ltr"
	RightToLeft Direction = "rtl"
)

// Defaults for preview requests.
const (
	DefaultPreviewText = "The quick brown fox jumps over the lazy dog."
	DefaultSizePx      = 32.0
	MinSizePx          = 12.0
	MaxSizePx          = 80.0
	DefaultColor       = "#000000"
)

// PreviewRequest describes how fonts are previewed. It is a value object;
// changing any of its fields means a new preview.
type PreviewRequest struct {
	Text      string
	SizePx    float64
	Color     string    // CSS color
	Direction Direction // empty for auto-detection from Text
}

// DefaultPreview returns the preview request a session starts with.
func DefaultPreview() PreviewRequest {
	return PreviewRequest{
		Text:      DefaultPreviewText,
		SizePx:    DefaultSizePx,
		Color:     DefaultColor,
		Direction: LeftToRight,
	}
}

// Normalized returns a copy of pr with the size clamped to
// [MinSizePx, MaxSizePx], a default color and a definite direction.
// Text is left untouched; an empty text is a valid preview.
func (pr PreviewRequest) Normalized() PreviewRequest {
	switch {
	case pr.SizePx == 0:
		pr.SizePx = DefaultSizePx
	case pr.SizePx < MinSizePx:
		pr.SizePx = MinSizePx
	case pr.SizePx > MaxSizePx:
		pr.SizePx = MaxSizePx
	}
	if strings.TrimSpace(pr.Color) == "" {
		pr.Color = DefaultColor
	}
	if pr.Direction != LeftToRight && pr.Direction != RightToLeft {
		pr.Direction = DetectDirection(pr.Text)
	}
	return pr
}

// DetectDirection returns the direction of the first character of text with
// a strong bidi class. Text without strong characters is left-to-right.
func DetectDirection(text string) Direction {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return LeftToRight
		case bidi.R, bidi.AL:
			return RightToLeft
		}
	}
	return LeftToRight
}

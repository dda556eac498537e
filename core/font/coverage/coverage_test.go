package coverage

import (
	"testing"

	"github.com/npillmayer/fontica/core"
	"github.com/npillmayer/fontica/core/font"
	"github.com/npillmayer/fontica/core/font/fontregistry"
	"github.com/npillmayer/fontica/core/font/loader"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

type states map[string]loader.LoadState

func (s states) State(id string) loader.LoadState {
	return s[id]
}

func setup(t *testing.T) (*Checker, states) {
	registry := fontregistry.NewRegistry()
	mono, err := font.ParseOpenTypeFont(gomono.TTF)
	require.NoError(t, err)
	registry.StoreFont("Courier", mono)
	sans, err := font.ParseOpenTypeFont(goregular.TTF)
	require.NoError(t, err)
	registry.StoreFont("Sans", sans)
	st := states{"Courier": loader.Loaded, "Sans": loader.Loaded, "Pending": loader.Loading}
	return NewChecker(st, registry, nil), st
}

func TestSupportedText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.coverage")
	defer teardown()
	//
	c, _ := setup(t)
	ok, err := c.Supports("Courier", "Hello")
	require.NoError(t, err)
	assert.True(t, ok, "expected Go Mono to alter the width of 'Hello'")
	target, fallback, err := c.Measure("Courier", "Hello")
	require.NoError(t, err)
	assert.NotEqual(t, target, fallback)
	t.Logf("'Hello' is %s wide in Courier, %s in fallback", target, fallback)
}

func TestEmptyTextIsUnsupported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.coverage")
	defer teardown()
	//
	c, _ := setup(t)
	ok, err := c.Supports("Courier", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUncoveredScript(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.coverage")
	defer teardown()
	//
	c, _ := setup(t)
	ok, err := c.Supports("Courier", "日本語")
	require.NoError(t, err)
	assert.False(t, ok, "Go Mono has no CJK glyphs")
}

func TestIdenticalFontIsUnsupported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.coverage")
	defer teardown()
	//
	c, _ := setup(t)
	assert.Same(t, font.FallbackFont(), c.Fallback())
	ok, err := c.Supports("Sans", "Hello")
	require.NoError(t, err)
	assert.False(t, ok, "a font equal to the fallback cannot be told apart")
}

func TestCheckerPrecondition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.coverage")
	defer teardown()
	//
	c, st := setup(t)
	for _, id := range []string{"Pending", "Unknown"} {
		_, err := c.Supports(id, "Hello")
		assert.ErrorIs(t, err, ErrCheckerPrecondition, id)
		assert.Equal(t, core.EPRECONDITION, core.Code(err))
	}
	st["Ghost"] = loader.Loaded
	_, err := c.Supports("Ghost", "Hello")
	assert.Equal(t, core.EINTERNAL, core.Code(err))
}

func TestNormalization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.coverage")
	defer teardown()
	//
	c, _ := setup(t)
	composed, _, err := c.Measure("Courier", "caf\u00e9")
	require.NoError(t, err)
	decomposed, _, err := c.Measure("Courier", "cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestFallbackFromConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.coverage")
	defer teardown()
	//
	assert.Same(t, font.FallbackFont(), FallbackFromConfig(""))
	assert.Same(t, font.FallbackFont(), FallbackFromConfig("No-Such-Font-Installed.ttf"))
}

package glyph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainpowertools/vodyfont/internal/glyph"
	"github.com/brainpowertools/vodyfont/internal/sfnt"
	"github.com/brainpowertools/vodyfont/internal/sfnt/sfnttest"
)

// parseFixture parses a fresh copy of the synthetic test font.
// Every test gets its own instance because transforms mutate in place.
func parseFixture(t *testing.T) *sfnt.Font {
	t.Helper()
	f, err := sfnt.Parse(sfnttest.Build())
	require.NoError(t, err)
	return f
}

func mustGID(t *testing.T, f *sfnt.Font, ch rune) sfnt.GlyphID {
	t.Helper()
	gid, ok := f.GlyphIndex(ch)
	require.True(t, ok, "%q must be mapped in the fixture", ch)
	return gid
}

// TestScaleOriginBaseline verifies uniform scaling from the origin:
// every coordinate is simply multiplied. This is the Small/Big treatment.
func TestScaleOriginBaseline(t *testing.T) {
	f := parseFixture(t)
	gid := mustGID(t, f, 'a')

	glyph.Scale(f, gid, 0.5, 0.5, glyph.AnchorOrigin, glyph.AnchorBaseline)

	g := f.Glyphs[gid]
	assert.Equal(t, sfnt.Point{X: 25, Y: 0, OnCurve: true}, g.Contours[0][0])
	assert.Equal(t, sfnt.Point{X: 225, Y: 250, OnCurve: true}, g.Contours[0][2])
	assert.Equal(t, 25, g.XMin)
	assert.Equal(t, 225, g.XMax)
	assert.Equal(t, 250, g.YMax)
}

// TestScaleCenterTop verifies the High treatment's anchoring: the
// horizontal center of the advance width stays put, and the glyph
// hangs from the ascender line instead of sitting on the baseline.
func TestScaleCenterTop(t *testing.T) {
	f := parseFixture(t)
	gid := mustGID(t, f, 'a')

	glyph.Scale(f, gid, 0.95, 0.95, glyph.AnchorCenter, glyph.AnchorTop)

	g := f.Glyphs[gid]
	// cx = 500/2 = 250: 250 + (50-250)*0.95 = 60, 250 + (450-250)*0.95 = 440.
	assert.Equal(t, 60, g.XMin)
	assert.Equal(t, 440, g.XMax)
	// ascender 800: 800 + (0-800)*0.95 = 40, 800 + (500-800)*0.95 = 515.
	assert.Equal(t, 40, g.YMin)
	assert.Equal(t, 515, g.YMax)
}

// TestScaleComposite verifies composite glyphs scale through their
// component transforms and offsets rather than their (indirect) points.
func TestScaleComposite(t *testing.T) {
	f := parseFixture(t)
	gid := sfnt.GlyphID(sfnttest.GIDComposite)

	glyph.Scale(f, gid, 0.5, 0.5, glyph.AnchorOrigin, glyph.AnchorBaseline)

	comp := f.Glyphs[gid].Components[0]
	assert.Equal(t, [2][2]float64{{0.5, 0}, {0, 0.5}}, comp.Transform)
	assert.Equal(t, sfnttest.CompositeOffsetX/2, comp.Arg1)

	// Resolved bounds: the referenced square halves and shifts by 25.
	assert.Equal(t, 50, f.Glyphs[gid].XMin)
	assert.Equal(t, 250, f.Glyphs[gid].XMax)
	assert.Equal(t, 250, f.Glyphs[gid].YMax)
}

// TestSetAdvanceWidth verifies the LSB is re-derived from the outline
// for simple glyphs.
func TestSetAdvanceWidth(t *testing.T) {
	f := parseFixture(t)
	gid := mustGID(t, f, 'a')

	glyph.Scale(f, gid, 0.5, 0.5, glyph.AnchorOrigin, glyph.AnchorBaseline)
	glyph.SetAdvanceWidth(f, gid, 250)

	m := f.Metrics[gid]
	assert.Equal(t, 250, m.AdvanceWidth)
	assert.Equal(t, 25, m.LeftSideBearing, "LSB should track the scaled outline's xMin")
}

// TestAddSpacing verifies the Space treatment: outline shifted right by
// the left padding, advance widened by both paddings.
func TestAddSpacing(t *testing.T) {
	f := parseFixture(t)
	gid := mustGID(t, f, 'a')

	glyph.AddSpacing(f, gid, 100, 100)

	g := f.Glyphs[gid]
	m := f.Metrics[gid]
	assert.Equal(t, 150, g.XMin)
	assert.Equal(t, 550, g.XMax)
	assert.Equal(t, sfnttest.AdvanceWidth+200, m.AdvanceWidth)
	assert.Equal(t, 150, m.LeftSideBearing)
}

// TestAddSpacingEmptyGlyph verifies empty glyphs only get their
// metrics adjusted.
func TestAddSpacingEmptyGlyph(t *testing.T) {
	f := parseFixture(t)

	glyph.AddSpacing(f, sfnttest.GIDNotdef, 100, 50)

	m := f.Metrics[sfnttest.GIDNotdef]
	assert.Equal(t, sfnttest.AdvanceWidth+150, m.AdvanceWidth)
	assert.Equal(t, 100, m.LeftSideBearing)
	assert.True(t, f.Glyphs[sfnttest.GIDNotdef].IsEmpty())
}

// TestAddSpacingComposite verifies composites shift via component offsets.
func TestAddSpacingComposite(t *testing.T) {
	f := parseFixture(t)
	gid := sfnt.GlyphID(sfnttest.GIDComposite)

	glyph.AddSpacing(f, gid, 60, 60)

	assert.Equal(t, sfnttest.CompositeOffsetX+60, f.Glyphs[gid].Components[0].Arg1)
	assert.Equal(t, sfnttest.AdvanceWidth+120, f.Metrics[gid].AdvanceWidth)
}

// TestThicken verifies points are pushed outward from the bounding-box
// center by the fixed amount, and the advance grows by twice it.
func TestThicken(t *testing.T) {
	f := parseFixture(t)
	gid := mustGID(t, f, 'o')

	glyph.Thicken(f, gid, 40)

	g := f.Glyphs[gid]
	m := f.Metrics[gid]
	// Corner (50, 0) sits 320.16 units from center (250, 250); pushing
	// 40 units outward lands on (25, -31) after rounding.
	assert.Equal(t, sfnt.Point{X: 25, Y: -31, OnCurve: true}, g.Contours[0][0])
	assert.Equal(t, sfnttest.AdvanceWidth+80, m.AdvanceWidth)
	assert.Equal(t, g.XMin, m.LeftSideBearing)
}

// TestThickenSkipsComposite verifies the treatment leaves composite
// glyphs untouched.
func TestThickenSkipsComposite(t *testing.T) {
	f := parseFixture(t)
	gid := sfnt.GlyphID(sfnttest.GIDComposite)
	before := f.Glyphs[gid]
	beforeMetric := f.Metrics[gid]

	glyph.Thicken(f, gid, 40)

	assert.Equal(t, before, f.Glyphs[gid])
	assert.Equal(t, beforeMetric, f.Metrics[gid])
}

// TestDeepenCurve verifies only the lower half of the outline moves,
// with the bottom-most points pulled down by the full factor.
func TestDeepenCurve(t *testing.T) {
	f := parseFixture(t)
	gid := mustGID(t, f, 'u')

	glyph.DeepenCurve(f, gid, 80)

	g := f.Glyphs[gid]
	// Bottom points (y=0, below midpoint 250) drop by the full 80.
	assert.Equal(t, -80, g.Contours[0][0].Y)
	assert.Equal(t, -80, g.Contours[0][1].Y)
	// Top points (y=500, above midpoint) stay put.
	assert.Equal(t, 500, g.Contours[0][2].Y)
	assert.Equal(t, -80, g.YMin)
}

// TestWiden verifies the stretch-and-recenter arithmetic: the outline
// widens around its own center, then sits with equal side bearings in
// the enlarged advance width.
func TestWiden(t *testing.T) {
	f := parseFixture(t)
	gid := mustGID(t, f, 'a')

	glyph.Widen(f, gid, 1.25)

	g := f.Glyphs[gid]
	m := f.Metrics[gid]
	// 500 * 1.25 = 625 advance; outline width 400*1.25 = 500;
	// target LSB (625-500)/2 = 62.
	assert.Equal(t, 625, m.AdvanceWidth)
	assert.Equal(t, 62, g.XMin)
	assert.Equal(t, 562, g.XMax)
	assert.Equal(t, 62, m.LeftSideBearing)
}

// TestOpenCounter verifies only the right half of the outline moves,
// with the rightmost points pushed by the full amount.
func TestOpenCounter(t *testing.T) {
	f := parseFixture(t)
	gid := mustGID(t, f, 'e')

	glyph.OpenCounter(f, gid, 80)

	g := f.Glyphs[gid]
	m := f.Metrics[gid]
	assert.Equal(t, 50, g.XMin, "left side should not move")
	assert.Equal(t, 530, g.XMax, "rightmost points move by the full amount")
	assert.Equal(t, sfnttest.AdvanceWidth+80, m.AdvanceWidth)
}

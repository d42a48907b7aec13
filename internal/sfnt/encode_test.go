package sfnt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestChecksum verifies the sfnt word-sum checksum, including the
// zero-padding of trailing partial words.
func TestChecksum(t *testing.T) {
	assert.Equal(t, uint32(0), checksum(nil))
	assert.Equal(t, uint32(3), checksum([]byte{0, 0, 0, 1, 0, 0, 0, 2}))

	// A trailing partial word is padded with zeros: 0x01000000.
	assert.Equal(t, uint32(0x01000000), checksum([]byte{1}))

	// Overflow wraps mod 2^32.
	assert.Equal(t, uint32(0), checksum([]byte{0x80, 0, 0, 0, 0x80, 0, 0, 0}))
}

// TestF2Dot14RoundTrip verifies the fixed-point transform encoding used
// by composite glyph components.
func TestF2Dot14RoundTrip(t *testing.T) {
	var buf [2]byte
	for _, v := range []float64{0, 1, -1, 0.5, 1.25, 1.999, -2} {
		putF2dot14(buf[:], v)
		assert.InDelta(t, v, f2dot14(buf[:]), 1.0/16384, "value %g", v)
	}
}

// TestSimpleGlyphRoundTrip verifies that a simple glyph survives
// encode → parse unchanged, including off-curve points and instructions.
func TestSimpleGlyphRoundTrip(t *testing.T) {
	g := Glyph{
		Contours: [][]Point{
			{
				{X: 10, Y: 0, OnCurve: true},
				{X: 200, Y: -15, OnCurve: false},
				{X: 390, Y: 0, OnCurve: true},
				{X: 390, Y: 700, OnCurve: true},
				{X: 10, Y: 700, OnCurve: true},
			},
			{
				{X: 100, Y: 100, OnCurve: true},
				{X: 300, Y: 100, OnCurve: true},
				{X: 300, Y: 600, OnCurve: true},
			},
		},
		Instructions: []byte{0xB0, 0x00},
		XMin:         10, YMin: -15, XMax: 390, YMax: 700,
	}

	parsed, err := parseGlyph(encodeGlyph(&g))
	require.NoError(t, err)

	assert.Equal(t, g.Contours, parsed.Contours)
	assert.Equal(t, g.Instructions, parsed.Instructions)
	assert.Equal(t, g.XMin, parsed.XMin)
	assert.Equal(t, g.YMax, parsed.YMax)
}

// TestCompositeGlyphRoundTrip verifies component offsets and each of
// the three transform encodings (uniform scale, x/y scale, 2x2).
func TestCompositeGlyphRoundTrip(t *testing.T) {
	g := Glyph{
		Components: []Component{
			{
				GlyphID:   3,
				ArgsAreXY: true,
				Arg1:      120,
				Arg2:      -40,
				Transform: IdentityTransform,
			},
			{
				GlyphID:   4,
				ArgsAreXY: true,
				Arg1:      0,
				Arg2:      0,
				Transform: [2][2]float64{{0.5, 0}, {0, 0.5}},
			},
			{
				GlyphID:   5,
				ArgsAreXY: true,
				Arg1:      -7,
				Arg2:      7,
				Transform: [2][2]float64{{1.25, 0}, {0, 0.75}},
			},
			{
				GlyphID:   6,
				ArgsAreXY: true,
				Arg1:      1,
				Arg2:      2,
				Transform: [2][2]float64{{1, 0.25}, {-0.25, 1}},
			},
		},
		XMin: -7, YMin: -40, XMax: 300, YMax: 400,
	}

	parsed, err := parseGlyph(encodeGlyph(&g))
	require.NoError(t, err)

	require.Len(t, parsed.Components, 4)
	for i := range g.Components {
		want, got := g.Components[i], parsed.Components[i]
		assert.Equal(t, want.GlyphID, got.GlyphID, "component %d", i)
		assert.Equal(t, want.Arg1, got.Arg1, "component %d", i)
		assert.Equal(t, want.Arg2, got.Arg2, "component %d", i)
		for r := 0; r < 2; r++ {
			for c := 0; c < 2; c++ {
				assert.InDelta(t, want.Transform[r][c], got.Transform[r][c], 1.0/16384,
					"component %d transform[%d][%d]", i, r, c)
			}
		}
	}
	assert.Equal(t, g.XMin, parsed.XMin)
}

// TestEncodeGlyphEmpty verifies that empty glyphs encode to a
// zero-length loca range.
func TestEncodeGlyphEmpty(t *testing.T) {
	g := Glyph{}
	assert.Nil(t, encodeGlyph(&g))
}

// TestEncodeGlyphPadding verifies glyf entries are padded to 4 bytes so
// successive glyphs stay aligned.
func TestEncodeGlyphPadding(t *testing.T) {
	g := Glyph{
		Contours: [][]Point{{{X: 1, Y: 1, OnCurve: true}}},
		XMin:     1, YMin: 1, XMax: 1, YMax: 1,
	}
	assert.Zero(t, len(encodeGlyph(&g))%4)
}

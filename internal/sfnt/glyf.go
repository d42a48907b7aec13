package sfnt

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Simple-glyph flag bits (glyf table).
const (
	flagOnCurve      = 0x01
	flagXShort       = 0x02
	flagYShort       = 0x04
	flagRepeat       = 0x08
	flagXSameOrOppos = 0x10
	flagYSameOrOppos = 0x20
)

// Composite-glyph flag bits.
const (
	compArg1And2AreWords = 0x0001
	compArgsAreXYValues  = 0x0002
	compWeHaveAScale     = 0x0008
	compMoreComponents   = 0x0020
	compWeHaveXAndYScale = 0x0040
	compWeHaveATwoByTwo  = 0x0080
	compWeHaveInstr      = 0x0100

	// compTransformMask covers every bit recomputed at encode time.
	compTransformMask = compArg1And2AreWords | compWeHaveAScale |
		compWeHaveXAndYScale | compWeHaveATwoByTwo |
		compMoreComponents | compWeHaveInstr
)

// Point is one outline point in font units.
type Point struct {
	X, Y    int
	OnCurve bool
}

// Component is one piece of a composite glyph: a reference to another
// glyph plus an offset and 2x2 transform.
//
// The transform layout matches the glyf table's on-disk order:
// [[xx, xy], [yx, yy]], applied as
//
//	x' = x*xx + y*yx + dx
//	y' = x*xy + y*yy + dy
type Component struct {
	// GlyphID is the referenced glyph.
	GlyphID GlyphID

	// Flags is the component's original flag word. The bits that encode
	// argument size and transform shape are recomputed on write; the
	// remaining behavior bits (round-to-grid, use-my-metrics, ...) are
	// preserved.
	Flags uint16

	// ArgsAreXY reports whether Arg1/Arg2 are X/Y offsets (the common
	// case) rather than point-matching indices.
	ArgsAreXY bool

	// Arg1 and Arg2 are the component offsets (when ArgsAreXY) in font
	// units, or point numbers otherwise.
	Arg1, Arg2 int

	// Transform is the component's 2x2 transform.
	Transform [2][2]float64
}

// IdentityTransform is the no-op component transform.
var IdentityTransform = [2][2]float64{{1, 0}, {0, 1}}

// Glyph is one glyph outline: either a set of contours (simple glyph),
// a set of components (composite glyph), or neither (empty glyph, e.g.
// the space).
type Glyph struct {
	// Contours holds the outline contours of a simple glyph.
	Contours [][]Point

	// Components holds the component references of a composite glyph.
	// A glyph never has both contours and components.
	Components []Component

	// Instructions holds the glyph's hinting program, preserved verbatim.
	Instructions []byte

	// XMin, YMin, XMax, YMax is the glyph bounding box in font units.
	// Maintained by RecalcBounds after coordinate edits.
	XMin, YMin, XMax, YMax int
}

// IsComposite reports whether the glyph is built from components.
func (g *Glyph) IsComposite() bool {
	return len(g.Components) > 0
}

// IsEmpty reports whether the glyph has no outline at all.
func (g *Glyph) IsEmpty() bool {
	return len(g.Contours) == 0 && len(g.Components) == 0
}

// NumPoints returns the total outline point count of a simple glyph.
func (g *Glyph) NumPoints() int {
	n := 0
	for _, c := range g.Contours {
		n += len(c)
	}
	return n
}

// parseGlyphs decodes loca and glyf into f.Glyphs.
func (f *Font) parseGlyphs(numGlyphs int, longLoca bool) error {
	loca := f.raw["loca"]
	glyf := f.raw["glyf"]

	offsets := make([]uint32, numGlyphs+1)
	if longLoca {
		if len(loca) < 4*(numGlyphs+1) {
			return fmt.Errorf("sfnt: loca table too short")
		}
		for i := range offsets {
			offsets[i] = binary.BigEndian.Uint32(loca[4*i:])
		}
	} else {
		if len(loca) < 2*(numGlyphs+1) {
			return fmt.Errorf("sfnt: loca table too short")
		}
		for i := range offsets {
			offsets[i] = 2 * uint32(binary.BigEndian.Uint16(loca[2*i:]))
		}
	}

	f.Glyphs = make([]Glyph, numGlyphs)
	for gid := 0; gid < numGlyphs; gid++ {
		start, end := offsets[gid], offsets[gid+1]
		if start == end {
			continue // empty glyph
		}
		if start > end || uint64(end) > uint64(len(glyf)) {
			return fmt.Errorf("sfnt: glyph %d has invalid loca range [%d, %d)", gid, start, end)
		}
		g, err := parseGlyph(glyf[start:end])
		if err != nil {
			return fmt.Errorf("sfnt: glyph %d: %w", gid, err)
		}
		f.Glyphs[gid] = g
	}
	return nil
}

// parseGlyph decodes a single glyf entry.
func parseGlyph(data []byte) (Glyph, error) {
	if len(data) < 10 {
		return Glyph{}, fmt.Errorf("glyph header too short")
	}
	numContours := int(int16(binary.BigEndian.Uint16(data[0:])))
	g := Glyph{
		XMin: int(int16(binary.BigEndian.Uint16(data[2:]))),
		YMin: int(int16(binary.BigEndian.Uint16(data[4:]))),
		XMax: int(int16(binary.BigEndian.Uint16(data[6:]))),
		YMax: int(int16(binary.BigEndian.Uint16(data[8:]))),
	}

	if numContours < 0 {
		return parseCompositeGlyph(g, data[10:])
	}
	return parseSimpleGlyph(g, numContours, data[10:])
}

func parseSimpleGlyph(g Glyph, numContours int, data []byte) (Glyph, error) {
	if len(data) < 2*numContours+2 {
		return g, fmt.Errorf("simple glyph truncated")
	}
	endPts := make([]int, numContours)
	for i := range endPts {
		endPts[i] = int(binary.BigEndian.Uint16(data[2*i:]))
	}
	pos := 2 * numContours

	instrLen := int(binary.BigEndian.Uint16(data[pos:]))
	pos += 2
	if len(data) < pos+instrLen {
		return g, fmt.Errorf("simple glyph instructions truncated")
	}
	g.Instructions = append([]byte(nil), data[pos:pos+instrLen]...)
	pos += instrLen

	numPoints := 0
	if numContours > 0 {
		numPoints = endPts[numContours-1] + 1
	}

	// Flags, with run-length repeats.
	flags := make([]byte, 0, numPoints)
	for len(flags) < numPoints {
		if pos >= len(data) {
			return g, fmt.Errorf("simple glyph flags truncated")
		}
		fl := data[pos]
		pos++
		flags = append(flags, fl)
		if fl&flagRepeat != 0 {
			if pos >= len(data) {
				return g, fmt.Errorf("simple glyph flag repeat truncated")
			}
			for n := int(data[pos]); n > 0 && len(flags) < numPoints; n-- {
				flags = append(flags, fl)
			}
			pos++
		}
	}

	xs := make([]int, numPoints)
	x := 0
	for i := 0; i < numPoints; i++ {
		fl := flags[i]
		switch {
		case fl&flagXShort != 0:
			if pos >= len(data) {
				return g, fmt.Errorf("simple glyph x coordinates truncated")
			}
			d := int(data[pos])
			pos++
			if fl&flagXSameOrOppos == 0 {
				d = -d
			}
			x += d
		case fl&flagXSameOrOppos != 0:
			// same as previous: delta 0
		default:
			if pos+2 > len(data) {
				return g, fmt.Errorf("simple glyph x coordinates truncated")
			}
			x += int(int16(binary.BigEndian.Uint16(data[pos:])))
			pos += 2
		}
		xs[i] = x
	}

	ys := make([]int, numPoints)
	y := 0
	for i := 0; i < numPoints; i++ {
		fl := flags[i]
		switch {
		case fl&flagYShort != 0:
			if pos >= len(data) {
				return g, fmt.Errorf("simple glyph y coordinates truncated")
			}
			d := int(data[pos])
			pos++
			if fl&flagYSameOrOppos == 0 {
				d = -d
			}
			y += d
		case fl&flagYSameOrOppos != 0:
			// same as previous: delta 0
		default:
			if pos+2 > len(data) {
				return g, fmt.Errorf("simple glyph y coordinates truncated")
			}
			y += int(int16(binary.BigEndian.Uint16(data[pos:])))
			pos += 2
		}
		ys[i] = y
	}

	start := 0
	g.Contours = make([][]Point, numContours)
	for ci, end := range endPts {
		contour := make([]Point, 0, end-start+1)
		for i := start; i <= end; i++ {
			contour = append(contour, Point{X: xs[i], Y: ys[i], OnCurve: flags[i]&flagOnCurve != 0})
		}
		g.Contours[ci] = contour
		start = end + 1
	}
	return g, nil
}

func parseCompositeGlyph(g Glyph, data []byte) (Glyph, error) {
	pos := 0
	for {
		if pos+4 > len(data) {
			return g, fmt.Errorf("composite glyph truncated")
		}
		flags := binary.BigEndian.Uint16(data[pos:])
		comp := Component{
			Flags:     flags,
			GlyphID:   binary.BigEndian.Uint16(data[pos+2:]),
			ArgsAreXY: flags&compArgsAreXYValues != 0,
			Transform: IdentityTransform,
		}
		pos += 4

		if flags&compArg1And2AreWords != 0 {
			if pos+4 > len(data) {
				return g, fmt.Errorf("composite glyph args truncated")
			}
			if comp.ArgsAreXY {
				comp.Arg1 = int(int16(binary.BigEndian.Uint16(data[pos:])))
				comp.Arg2 = int(int16(binary.BigEndian.Uint16(data[pos+2:])))
			} else {
				comp.Arg1 = int(binary.BigEndian.Uint16(data[pos:]))
				comp.Arg2 = int(binary.BigEndian.Uint16(data[pos+2:]))
			}
			pos += 4
		} else {
			if pos+2 > len(data) {
				return g, fmt.Errorf("composite glyph args truncated")
			}
			if comp.ArgsAreXY {
				comp.Arg1 = int(int8(data[pos]))
				comp.Arg2 = int(int8(data[pos+1]))
			} else {
				comp.Arg1 = int(data[pos])
				comp.Arg2 = int(data[pos+1])
			}
			pos += 2
		}

		switch {
		case flags&compWeHaveAScale != 0:
			if pos+2 > len(data) {
				return g, fmt.Errorf("composite glyph scale truncated")
			}
			s := f2dot14(data[pos:])
			comp.Transform = [2][2]float64{{s, 0}, {0, s}}
			pos += 2
		case flags&compWeHaveXAndYScale != 0:
			if pos+4 > len(data) {
				return g, fmt.Errorf("composite glyph scale truncated")
			}
			comp.Transform = [2][2]float64{{f2dot14(data[pos:]), 0}, {0, f2dot14(data[pos+2:])}}
			pos += 4
		case flags&compWeHaveATwoByTwo != 0:
			if pos+8 > len(data) {
				return g, fmt.Errorf("composite glyph transform truncated")
			}
			comp.Transform = [2][2]float64{
				{f2dot14(data[pos:]), f2dot14(data[pos+2:])},
				{f2dot14(data[pos+4:]), f2dot14(data[pos+6:])},
			}
			pos += 8
		}

		g.Components = append(g.Components, comp)
		if flags&compMoreComponents == 0 {
			if flags&compWeHaveInstr != 0 {
				if pos+2 > len(data) {
					return g, fmt.Errorf("composite glyph instructions truncated")
				}
				instrLen := int(binary.BigEndian.Uint16(data[pos:]))
				pos += 2
				if pos+instrLen > len(data) {
					return g, fmt.Errorf("composite glyph instructions truncated")
				}
				g.Instructions = append([]byte(nil), data[pos:pos+instrLen]...)
			}
			return g, nil
		}
	}
}

// f2dot14 decodes a big-endian F2Dot14 fixed-point value.
func f2dot14(b []byte) float64 {
	return float64(int16(binary.BigEndian.Uint16(b))) / 16384
}

// putF2dot14 encodes v as F2Dot14. Valid range is [-2, 2); values
// outside it cannot be represented in a glyf component transform.
func putF2dot14(b []byte, v float64) {
	binary.BigEndian.PutUint16(b, uint16(int16(math.Round(v*16384))))
}

// encodeGlyph serializes a glyph back into glyf entry bytes.
// Empty glyphs encode to nil (a zero-length loca range).
//
// The encoder always writes 16-bit coordinate deltas for simple glyphs
// rather than reproducing the short/repeat compression of the input.
// The result is larger but byte-for-byte deterministic.
func encodeGlyph(g *Glyph) []byte {
	if g.IsEmpty() {
		return nil
	}

	var out []byte
	header := make([]byte, 10)
	if g.IsComposite() {
		binary.BigEndian.PutUint16(header[0:], uint16(0xFFFF)) // -1
	} else {
		binary.BigEndian.PutUint16(header[0:], uint16(int16(len(g.Contours))))
	}
	binary.BigEndian.PutUint16(header[2:], uint16(int16(g.XMin)))
	binary.BigEndian.PutUint16(header[4:], uint16(int16(g.YMin)))
	binary.BigEndian.PutUint16(header[6:], uint16(int16(g.XMax)))
	binary.BigEndian.PutUint16(header[8:], uint16(int16(g.YMax)))
	out = append(out, header...)

	if g.IsComposite() {
		out = encodeCompositeBody(out, g)
	} else {
		out = encodeSimpleBody(out, g)
	}

	// Pad to a 4-byte boundary so following glyphs stay aligned.
	for len(out)%4 != 0 {
		out = append(out, 0)
	}
	return out
}

func encodeSimpleBody(out []byte, g *Glyph) []byte {
	var u16 [2]byte

	end := -1
	for _, c := range g.Contours {
		end += len(c)
		binary.BigEndian.PutUint16(u16[:], uint16(end))
		out = append(out, u16[:]...)
	}

	binary.BigEndian.PutUint16(u16[:], uint16(len(g.Instructions)))
	out = append(out, u16[:]...)
	out = append(out, g.Instructions...)

	// Flags: one byte per point, on-curve bit only (long deltas follow).
	for _, c := range g.Contours {
		for _, p := range c {
			var fl byte
			if p.OnCurve {
				fl = flagOnCurve
			}
			out = append(out, fl)
		}
	}

	prev := 0
	for _, c := range g.Contours {
		for _, p := range c {
			binary.BigEndian.PutUint16(u16[:], uint16(int16(p.X-prev)))
			out = append(out, u16[:]...)
			prev = p.X
		}
	}
	prev = 0
	for _, c := range g.Contours {
		for _, p := range c {
			binary.BigEndian.PutUint16(u16[:], uint16(int16(p.Y-prev)))
			out = append(out, u16[:]...)
			prev = p.Y
		}
	}
	return out
}

func encodeCompositeBody(out []byte, g *Glyph) []byte {
	var buf [8]byte
	for i := range g.Components {
		comp := &g.Components[i]

		flags := comp.Flags &^ uint16(compTransformMask)
		flags |= compArg1And2AreWords // args always written as words
		if comp.ArgsAreXY {
			flags |= compArgsAreXYValues
		} else {
			flags &^= uint16(compArgsAreXYValues)
		}

		t := comp.Transform
		hasOffDiagonal := t[0][1] != 0 || t[1][0] != 0
		switch {
		case hasOffDiagonal:
			flags |= compWeHaveATwoByTwo
		case t[0][0] != 1 || t[1][1] != 1:
			if t[0][0] == t[1][1] {
				flags |= compWeHaveAScale
			} else {
				flags |= compWeHaveXAndYScale
			}
		}

		if i < len(g.Components)-1 {
			flags |= compMoreComponents
		} else if len(g.Instructions) > 0 {
			flags |= compWeHaveInstr
		}

		binary.BigEndian.PutUint16(buf[0:], flags)
		binary.BigEndian.PutUint16(buf[2:], comp.GlyphID)
		binary.BigEndian.PutUint16(buf[4:], uint16(int16(comp.Arg1)))
		binary.BigEndian.PutUint16(buf[6:], uint16(int16(comp.Arg2)))
		out = append(out, buf[:8]...)

		switch {
		case flags&compWeHaveATwoByTwo != 0:
			putF2dot14(buf[0:], t[0][0])
			putF2dot14(buf[2:], t[0][1])
			putF2dot14(buf[4:], t[1][0])
			putF2dot14(buf[6:], t[1][1])
			out = append(out, buf[:8]...)
		case flags&compWeHaveXAndYScale != 0:
			putF2dot14(buf[0:], t[0][0])
			putF2dot14(buf[2:], t[1][1])
			out = append(out, buf[:4]...)
		case flags&compWeHaveAScale != 0:
			putF2dot14(buf[0:], t[0][0])
			out = append(out, buf[:2]...)
		}
	}

	if len(g.Instructions) > 0 {
		binary.BigEndian.PutUint16(buf[0:], uint16(len(g.Instructions)))
		out = append(out, buf[:2]...)
		out = append(out, g.Instructions...)
	}
	return out
}

// RecalcBounds recomputes the bounding box of the glyph with the given
// ID. Simple glyph bounds come straight from the contour points;
// composite bounds are computed by resolving component references
// through their transforms (recursively, as nested composites are legal).
func (f *Font) RecalcBounds(gid GlyphID) {
	g := &f.Glyphs[gid]
	if g.IsEmpty() {
		g.XMin, g.YMin, g.XMax, g.YMax = 0, 0, 0, 0
		return
	}

	pts := f.resolvePoints(gid, 0)
	if len(pts) == 0 {
		g.XMin, g.YMin, g.XMax, g.YMax = 0, 0, 0, 0
		return
	}

	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	g.XMin, g.YMin, g.XMax, g.YMax = minX, minY, maxX, maxY
}

// maxComponentDepth bounds composite recursion so a cyclic (corrupt)
// font cannot hang the resolver.
const maxComponentDepth = 8

// resolvePoints flattens a glyph to absolute outline points, applying
// component transforms and offsets.
func (f *Font) resolvePoints(gid GlyphID, depth int) []Point {
	if depth > maxComponentDepth || int(gid) >= len(f.Glyphs) {
		return nil
	}
	g := &f.Glyphs[gid]

	if !g.IsComposite() {
		pts := make([]Point, 0, g.NumPoints())
		for _, c := range g.Contours {
			pts = append(pts, c...)
		}
		return pts
	}

	var pts []Point
	for _, comp := range g.Components {
		base := f.resolvePoints(comp.GlyphID, depth+1)
		dx, dy := 0, 0
		if comp.ArgsAreXY {
			dx, dy = comp.Arg1, comp.Arg2
		}
		t := comp.Transform
		for _, p := range base {
			x := float64(p.X)*t[0][0] + float64(p.Y)*t[1][0] + float64(dx)
			y := float64(p.X)*t[0][1] + float64(p.Y)*t[1][1] + float64(dy)
			pts = append(pts, Point{X: int(math.Round(x)), Y: int(math.Round(y)), OnCurve: p.OnCurve})
		}
	}
	return pts
}

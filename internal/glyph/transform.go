// Package glyph implements the geometric treatments applied to vowel
// glyphs by the VoDy variant builders.
//
// Every function operates in place on a glyph identified by GlyphID
// within an sfnt.Font, adjusting outline coordinates and horizontal
// metrics together so spacing stays consistent with the new shape.
// Treatments are pure coordinate arithmetic; they never touch the
// character map or any table other than glyf and hmtx.
package glyph

import (
	"math"

	"github.com/brainpowertools/vodyfont/internal/sfnt"
)

// AnchorX selects the horizontal reference for scaling.
type AnchorX string

// AnchorY selects the vertical reference for scaling.
type AnchorY string

const (
	// AnchorOrigin scales from x=0, letting the glyph shrink toward its
	// left side bearing.
	AnchorOrigin AnchorX = "origin"

	// AnchorCenter scales from the horizontal center of the advance
	// width, keeping the glyph centered in its cell.
	AnchorCenter AnchorX = "center"

	// AnchorBaseline scales from y=0 (the baseline).
	AnchorBaseline AnchorY = "baseline"

	// AnchorTop scales from the typographic ascender, keeping the top
	// of the glyph pinned to the ascender line.
	AnchorTop AnchorY = "top"
)

// Scale scales a glyph's outline by sx horizontally and sy vertically
// around the given anchors. Composite glyphs are scaled through their
// component transforms and offsets; empty glyphs are left alone.
//
// Scale does not touch the advance width — callers that want the
// spacing to follow the new size pair it with SetAdvanceWidth.
func Scale(f *sfnt.Font, gid sfnt.GlyphID, sx, sy float64, ax AnchorX, ay AnchorY) {
	g := &f.Glyphs[gid]
	if g.IsEmpty() {
		return
	}
	width := f.Metrics[gid].AdvanceWidth

	if g.IsComposite() {
		cx := 0.0
		if ax == AnchorCenter {
			cx = float64(width) / 2
		}
		for i := range g.Components {
			comp := &g.Components[i]
			t := comp.Transform
			comp.Transform = [2][2]float64{
				{t[0][0] * sx, t[0][1] * sx},
				{t[1][0] * sy, t[1][1] * sy},
			}
			if comp.ArgsAreXY {
				if ax == AnchorCenter {
					comp.Arg1 = round(cx + (float64(comp.Arg1)-cx)*sx)
				} else {
					comp.Arg1 = round(float64(comp.Arg1) * sx)
				}
				comp.Arg2 = round(float64(comp.Arg2) * sy)
			}
		}
		f.RecalcBounds(gid)
		return
	}

	cx := 0.0
	if ax == AnchorCenter {
		cx = float64(width) / 2
	}
	anchorY := 0.0
	if ay == AnchorTop {
		anchorY = float64(f.Ascender())
	}

	for ci := range g.Contours {
		for pi := range g.Contours[ci] {
			p := &g.Contours[ci][pi]
			if ax == AnchorCenter {
				p.X = round(cx + (float64(p.X)-cx)*sx)
			} else {
				p.X = round(float64(p.X) * sx)
			}
			if ay == AnchorTop {
				p.Y = round(anchorY + (float64(p.Y)-anchorY)*sy)
			} else {
				p.Y = round(float64(p.Y) * sy)
			}
		}
	}
	f.RecalcBounds(gid)
}

// SetAdvanceWidth sets a glyph's advance width. For simple glyphs with
// contours the left side bearing is re-derived from the outline's xMin,
// keeping metrics consistent with the current shape.
func SetAdvanceWidth(f *sfnt.Font, gid sfnt.GlyphID, width int) {
	g := &f.Glyphs[gid]
	m := &f.Metrics[gid]
	m.AdvanceWidth = width
	if !g.IsComposite() && len(g.Contours) > 0 {
		m.LeftSideBearing = g.XMin
	}
}

// AddSpacing adds extra space on the left and right of a glyph by
// shifting its outline right and widening the advance width.
func AddSpacing(f *sfnt.Font, gid sfnt.GlyphID, extraLeft, extraRight int) {
	g := &f.Glyphs[gid]
	m := &f.Metrics[gid]

	if g.IsEmpty() {
		m.AdvanceWidth += extraLeft + extraRight
		m.LeftSideBearing += extraLeft
		return
	}

	if g.IsComposite() {
		for i := range g.Components {
			if g.Components[i].ArgsAreXY {
				g.Components[i].Arg1 += extraLeft
			}
		}
		f.RecalcBounds(gid)
		m.AdvanceWidth += extraLeft + extraRight
		m.LeftSideBearing += extraLeft
		return
	}

	for ci := range g.Contours {
		for pi := range g.Contours[ci] {
			g.Contours[ci][pi].X += extraLeft
		}
	}
	f.RecalcBounds(gid)
	m.AdvanceWidth += extraLeft + extraRight
	m.LeftSideBearing = g.XMin
}

// Thicken fattens a simple glyph by pushing every outline point outward
// from the glyph's bounding-box center, and widens the advance width by
// twice the push amount. Composite and empty glyphs are left alone.
func Thicken(f *sfnt.Font, gid sfnt.GlyphID, amount int) {
	g := &f.Glyphs[gid]
	if g.IsComposite() || len(g.Contours) == 0 {
		return
	}

	minX, minY, maxX, maxY := contourExtents(g)
	cx := float64(minX+maxX) / 2
	cy := float64(minY+maxY) / 2

	for ci := range g.Contours {
		for pi := range g.Contours[ci] {
			p := &g.Contours[ci][pi]
			dx := float64(p.X) - cx
			dy := float64(p.Y) - cy
			dist := math.Hypot(dx, dy)
			if dist > 0 {
				factor := (dist + float64(amount)) / dist
				p.X = round(cx + dx*factor)
				p.Y = round(cy + dy*factor)
			}
		}
	}
	f.RecalcBounds(gid)

	m := &f.Metrics[gid]
	m.AdvanceWidth += amount * 2
	m.LeftSideBearing = g.XMin
}

// DeepenCurve pulls the lower half of a simple glyph's outline further
// down, proportionally to how far below the vertical midpoint each
// point sits. The bottom-most points move by the full factor.
func DeepenCurve(f *sfnt.Font, gid sfnt.GlyphID, factor int) {
	g := &f.Glyphs[gid]
	if g.IsComposite() || len(g.Contours) == 0 {
		return
	}

	_, minY, _, maxY := contourExtents(g)
	midY := float64(minY+maxY) / 2

	for ci := range g.Contours {
		for pi := range g.Contours[ci] {
			p := &g.Contours[ci][pi]
			if float64(p.Y) < midY {
				pull := 0.0
				if midY != float64(minY) {
					pull = (midY - float64(p.Y)) / (midY - float64(minY))
				}
				p.Y -= round(pull * float64(factor))
			}
		}
	}
	f.RecalcBounds(gid)
}

// Widen stretches a glyph horizontally by the given factor (1.2 = 20%
// wider), scaled around the glyph's own bounding-box center, then
// re-centers the outline within the widened advance width so both side
// bearings come out equal.
func Widen(f *sfnt.Font, gid sfnt.GlyphID, factor float64) {
	g := &f.Glyphs[gid]
	m := &f.Metrics[gid]
	newWidth := round(float64(m.AdvanceWidth) * factor)

	if len(g.Contours) == 0 {
		if g.IsComposite() {
			for i := range g.Components {
				comp := &g.Components[i]
				t := comp.Transform
				comp.Transform = [2][2]float64{
					{t[0][0] * factor, t[0][1]},
					{t[1][0], t[1][1]},
				}
				if comp.ArgsAreXY {
					comp.Arg1 = round(float64(comp.Arg1) * factor)
				}
			}
			f.RecalcBounds(gid)
			m.AdvanceWidth = newWidth
			m.LeftSideBearing = round(float64(m.LeftSideBearing) * factor)
		}
		return
	}

	minX, _, maxX, _ := contourExtents(g)
	cx := float64(minX+maxX) / 2
	for ci := range g.Contours {
		for pi := range g.Contours[ci] {
			p := &g.Contours[ci][pi]
			p.X = round(cx + (float64(p.X)-cx)*factor)
		}
	}
	f.RecalcBounds(gid)

	// Re-center: equal side bearings within the new advance width.
	glyphW := g.XMax - g.XMin
	targetLSB := (newWidth - glyphW) / 2
	if shift := targetLSB - g.XMin; shift != 0 {
		for ci := range g.Contours {
			for pi := range g.Contours[ci] {
				g.Contours[ci][pi].X += shift
			}
		}
		f.RecalcBounds(gid)
	}

	m.AdvanceWidth = newWidth
	m.LeftSideBearing = g.XMin
}

// OpenCounter widens the inner space of a simple glyph (like E or e) by
// pushing points right of the horizontal midpoint further right, with
// the rightmost points moving by the full amount.
func OpenCounter(f *sfnt.Font, gid sfnt.GlyphID, amount int) {
	g := &f.Glyphs[gid]
	if g.IsComposite() || len(g.Contours) == 0 {
		return
	}

	minX, _, maxX, _ := contourExtents(g)
	midX := float64(minX+maxX) / 2

	for ci := range g.Contours {
		for pi := range g.Contours[ci] {
			p := &g.Contours[ci][pi]
			if float64(p.X) > midX {
				push := 0.0
				if float64(maxX) != midX {
					push = (float64(p.X) - midX) / (float64(maxX) - midX)
				}
				p.X += round(push * float64(amount))
			}
		}
	}
	f.RecalcBounds(gid)

	m := &f.Metrics[gid]
	m.AdvanceWidth += amount
	m.LeftSideBearing = g.XMin
}

// contourExtents returns the min/max coordinates over the raw contour
// points of a simple glyph.
func contourExtents(g *sfnt.Glyph) (minX, minY, maxX, maxY int) {
	first := true
	for _, c := range g.Contours {
		for _, p := range c {
			if first {
				minX, minY, maxX, maxY = p.X, p.Y, p.X, p.Y
				first = false
				continue
			}
			minX = min(minX, p.X)
			minY = min(minY, p.Y)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
	}
	return minX, minY, maxX, maxY
}

func round(v float64) int {
	return int(math.Round(v))
}

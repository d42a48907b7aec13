package sfnt

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"sort"
)

// checkSumAdjustmentMagic is subtracted from the whole-file checksum to
// produce head.checkSumAdjustment, per the sfnt specification.
const checkSumAdjustmentMagic = 0xB1B0AFBA

// Encode serializes the font back to TTF bytes.
//
// glyf, loca, hmtx, and name are rebuilt from the parsed views; head and
// hhea are copied from the original and patched (bounding box, loca
// format, metric count, checksum adjustment); all other tables pass
// through unchanged. The output is deterministic for a given Font state.
func (f *Font) Encode() ([]byte, error) {
	if len(f.Glyphs) != len(f.Metrics) {
		return nil, fmt.Errorf("sfnt: glyph count %d does not match metric count %d", len(f.Glyphs), len(f.Metrics))
	}
	for gid := range f.Glyphs {
		g := &f.Glyphs[gid]
		if err := checkCoordRange(g); err != nil {
			return nil, fmt.Errorf("sfnt: glyph %d: %w", gid, err)
		}
	}

	glyf, loca := f.encodeGlyfLoca()
	tables := map[string][]byte{
		"glyf": glyf,
		"loca": loca,
		"hmtx": f.encodeHmtx(),
		"name": f.encodeName(),
		"hhea": f.patchedHhea(),
		"head": f.patchedHead(),
	}
	for _, tag := range f.tags {
		if _, replaced := tables[tag]; !replaced {
			tables[tag] = f.raw[tag]
		}
	}

	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	numTables := len(tags)
	headerSize := 12 + 16*numTables

	// Lay out table data after the directory, each table padded to a
	// 4-byte boundary.
	type placed struct {
		offset uint32
		length uint32
	}
	placement := make(map[string]placed, numTables)
	offset := uint32(headerSize)
	for _, tag := range tags {
		placement[tag] = placed{offset: offset, length: uint32(len(tables[tag]))}
		offset += uint32((len(tables[tag]) + 3) &^ 3)
	}

	out := make([]byte, offset)
	binary.BigEndian.PutUint32(out[0:], sfntVersionTrueType)
	binary.BigEndian.PutUint16(out[4:], uint16(numTables))
	// searchRange / entrySelector / rangeShift per the offset table spec.
	entrySelector := uint16(bits.Len(uint(numTables)) - 1)
	searchRange := uint16(1<<entrySelector) * 16
	binary.BigEndian.PutUint16(out[6:], searchRange)
	binary.BigEndian.PutUint16(out[8:], entrySelector)
	binary.BigEndian.PutUint16(out[10:], uint16(numTables)*16-searchRange)

	for i, tag := range tags {
		p := placement[tag]
		copy(out[p.offset:], tables[tag])

		rec := out[12+16*i:]
		copy(rec[0:4], tag)
		binary.BigEndian.PutUint32(rec[4:], checksum(out[p.offset:p.offset+uint32((len(tables[tag])+3)&^3)]))
		binary.BigEndian.PutUint32(rec[8:], p.offset)
		binary.BigEndian.PutUint32(rec[12:], p.length)
	}

	// head.checkSumAdjustment: whole-file checksum with the adjustment
	// field itself still zero, subtracted from the magic constant.
	headPos := placement["head"].offset
	adjustment := checkSumAdjustmentMagic - checksum(out)
	binary.BigEndian.PutUint32(out[headPos+8:], adjustment)

	return out, nil
}

// checkCoordRange verifies every coordinate and bound fits in int16,
// the only representation the glyf table has.
func checkCoordRange(g *Glyph) error {
	check := func(v int) error {
		if v < -32768 || v > 32767 {
			return fmt.Errorf("coordinate %d out of int16 range", v)
		}
		return nil
	}
	for _, v := range []int{g.XMin, g.YMin, g.XMax, g.YMax} {
		if err := check(v); err != nil {
			return err
		}
	}
	for _, c := range g.Contours {
		for _, p := range c {
			if err := check(p.X); err != nil {
				return err
			}
			if err := check(p.Y); err != nil {
				return err
			}
		}
	}
	return nil
}

// encodeGlyfLoca rebuilds the glyf table and a long-format loca.
func (f *Font) encodeGlyfLoca() (glyf, loca []byte) {
	loca = make([]byte, 4*(len(f.Glyphs)+1))
	for gid := range f.Glyphs {
		binary.BigEndian.PutUint32(loca[4*gid:], uint32(len(glyf)))
		glyf = append(glyf, encodeGlyph(&f.Glyphs[gid])...)
	}
	binary.BigEndian.PutUint32(loca[4*len(f.Glyphs):], uint32(len(glyf)))
	return glyf, loca
}

// encodeHmtx rebuilds hmtx with one full longHorMetric per glyph.
func (f *Font) encodeHmtx() []byte {
	out := make([]byte, 4*len(f.Metrics))
	for i, m := range f.Metrics {
		binary.BigEndian.PutUint16(out[4*i:], uint16(m.AdvanceWidth))
		binary.BigEndian.PutUint16(out[4*i+2:], uint16(int16(m.LeftSideBearing)))
	}
	return out
}

// patchedHhea copies the original hhea and updates numberOfHMetrics to
// match the full hmtx written by encodeHmtx.
func (f *Font) patchedHhea() []byte {
	hhea := append([]byte(nil), f.raw["hhea"]...)
	binary.BigEndian.PutUint16(hhea[34:], uint16(len(f.Metrics)))
	return hhea
}

// patchedHead copies the original head and updates the global bounding
// box, forces long loca offsets, and zeroes checkSumAdjustment (filled
// in at the end of Encode).
func (f *Font) patchedHead() []byte {
	head := append([]byte(nil), f.raw["head"]...)
	binary.BigEndian.PutUint32(head[8:], 0)

	xMin, yMin, xMax, yMax := 0, 0, 0, 0
	first := true
	for gid := range f.Glyphs {
		g := &f.Glyphs[gid]
		if g.IsEmpty() {
			continue
		}
		if first {
			xMin, yMin, xMax, yMax = g.XMin, g.YMin, g.XMax, g.YMax
			first = false
			continue
		}
		xMin = min(xMin, g.XMin)
		yMin = min(yMin, g.YMin)
		xMax = max(xMax, g.XMax)
		yMax = max(yMax, g.YMax)
	}
	binary.BigEndian.PutUint16(head[36:], uint16(int16(xMin)))
	binary.BigEndian.PutUint16(head[38:], uint16(int16(yMin)))
	binary.BigEndian.PutUint16(head[40:], uint16(int16(xMax)))
	binary.BigEndian.PutUint16(head[42:], uint16(int16(yMax)))

	binary.BigEndian.PutUint16(head[50:], 1) // long loca
	return head
}

// checksum computes the sfnt table checksum: the sum of big-endian
// uint32 words, with the data zero-padded to a multiple of four.
func checksum(data []byte) uint32 {
	var sum uint32
	n := len(data) &^ 3
	for i := 0; i < n; i += 4 {
		sum += binary.BigEndian.Uint32(data[i:])
	}
	if rem := len(data) - n; rem > 0 {
		var tail [4]byte
		copy(tail[:], data[n:])
		sum += binary.BigEndian.Uint32(tail[:])
	}
	return sum
}

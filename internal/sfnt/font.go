package sfnt

import (
	"encoding/binary"
	"fmt"
)

// GlyphID indexes a glyph within the font's glyph order.
type GlyphID = uint16

// sfntVersionTrueType and sfntVersionAppleTrue are the two accepted
// values of the offset-table version field for glyf-flavored fonts.
const (
	sfntVersionTrueType  = 0x00010000
	sfntVersionAppleTrue = 0x74727565 // 'true', produced by some Apple tools
	sfntVersionCFF       = 0x4F54544F // 'OTTO', CFF outlines — unsupported
)

// HMetric is one glyph's horizontal metrics: advance width and left
// side bearing, in font units.
type HMetric struct {
	AdvanceWidth    int
	LeftSideBearing int
}

// Font is a parsed TrueType font held fully in memory.
//
// Glyphs, Metrics, and Names are mutable parsed views; everything else
// stays in raw table form and is written back unchanged. Glyphs and
// Metrics are indexed by GlyphID and always have the same length.
type Font struct {
	// Glyphs holds every glyph outline, indexed by GlyphID.
	Glyphs []Glyph

	// Metrics holds per-glyph horizontal metrics, indexed by GlyphID.
	Metrics []HMetric

	// Names holds the decoded name table records.
	Names []NameRecord

	cmap       map[rune]GlyphID
	unitsPerEm int

	// raw holds every table of the original font by tag, untouched.
	// Tables rebuilt by Encode (glyf, loca, hmtx, name) are replaced at
	// write time; head and hhea are copied and patched.
	raw map[string][]byte

	// tags preserves the original table set in sorted order for
	// deterministic output.
	tags []string
}

// Parse reads a TrueType font from data. The input slice is not
// retained; raw tables are copied.
func Parse(data []byte) (*Font, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("sfnt: file too short (%d bytes)", len(data))
	}

	version := binary.BigEndian.Uint32(data[0:])
	switch version {
	case sfntVersionTrueType, sfntVersionAppleTrue:
		// glyf outlines, supported
	case sfntVersionCFF:
		return nil, fmt.Errorf("sfnt: CFF (OTTO) outlines are not supported; a glyf-flavored TTF is required")
	default:
		return nil, fmt.Errorf("sfnt: unrecognized sfnt version 0x%08X", version)
	}

	numTables := int(binary.BigEndian.Uint16(data[4:]))
	if len(data) < 12+16*numTables {
		return nil, fmt.Errorf("sfnt: truncated table directory")
	}

	f := &Font{raw: make(map[string][]byte, numTables)}
	for i := 0; i < numTables; i++ {
		rec := data[12+16*i:]
		tag := string(rec[0:4])
		offset := binary.BigEndian.Uint32(rec[8:])
		length := binary.BigEndian.Uint32(rec[12:])
		if uint64(offset)+uint64(length) > uint64(len(data)) {
			return nil, fmt.Errorf("sfnt: table %q extends past end of file", tag)
		}
		table := make([]byte, length)
		copy(table, data[offset:offset+length])
		f.raw[tag] = table
		f.tags = append(f.tags, tag)
	}

	for _, required := range []string{"head", "hhea", "maxp", "loca", "glyf", "hmtx", "cmap", "name"} {
		if _, ok := f.raw[required]; !ok {
			return nil, fmt.Errorf("sfnt: required table %q missing", required)
		}
	}

	head := f.raw["head"]
	if len(head) < 54 {
		return nil, fmt.Errorf("sfnt: head table too short")
	}
	f.unitsPerEm = int(binary.BigEndian.Uint16(head[18:]))
	longLoca := int16(binary.BigEndian.Uint16(head[50:])) == 1

	maxp := f.raw["maxp"]
	if len(maxp) < 6 {
		return nil, fmt.Errorf("sfnt: maxp table too short")
	}
	numGlyphs := int(binary.BigEndian.Uint16(maxp[4:]))

	if err := f.parseGlyphs(numGlyphs, longLoca); err != nil {
		return nil, err
	}
	if err := f.parseHmtx(numGlyphs); err != nil {
		return nil, err
	}
	if err := f.parseCmap(); err != nil {
		return nil, err
	}
	if err := f.parseName(); err != nil {
		return nil, err
	}

	return f, nil
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return len(f.Glyphs)
}

// UnitsPerEm returns the font's design grid size (head.unitsPerEm).
func (f *Font) UnitsPerEm() int {
	return f.unitsPerEm
}

// GlyphIndex looks up the glyph mapped to the given character.
// The second return value reports whether the character is mapped.
func (f *Font) GlyphIndex(r rune) (GlyphID, bool) {
	gid, ok := f.cmap[r]
	return gid, ok
}

// Ascender returns the typographic ascender in font units, preferring
// OS/2 sTypoAscender and falling back to hhea's ascender when the OS/2
// table is absent. The "high" variant anchors vowel scaling to this line.
func (f *Font) Ascender() int {
	if os2, ok := f.raw["OS/2"]; ok && len(os2) >= 70 {
		return int(int16(binary.BigEndian.Uint16(os2[68:])))
	}
	hhea := f.raw["hhea"]
	return int(int16(binary.BigEndian.Uint16(hhea[4:])))
}

// parseHmtx decodes the hmtx table into f.Metrics using
// hhea.numberOfHMetrics to split the long and short runs.
func (f *Font) parseHmtx(numGlyphs int) error {
	hhea := f.raw["hhea"]
	if len(hhea) < 36 {
		return fmt.Errorf("sfnt: hhea table too short")
	}
	numberOfHMetrics := int(binary.BigEndian.Uint16(hhea[34:]))
	if numberOfHMetrics == 0 || numberOfHMetrics > numGlyphs {
		return fmt.Errorf("sfnt: invalid numberOfHMetrics %d for %d glyphs", numberOfHMetrics, numGlyphs)
	}

	hmtx := f.raw["hmtx"]
	if len(hmtx) < 4*numberOfHMetrics+2*(numGlyphs-numberOfHMetrics) {
		return fmt.Errorf("sfnt: hmtx table too short")
	}

	f.Metrics = make([]HMetric, numGlyphs)
	advance := 0
	for i := 0; i < numberOfHMetrics; i++ {
		advance = int(binary.BigEndian.Uint16(hmtx[4*i:]))
		lsb := int(int16(binary.BigEndian.Uint16(hmtx[4*i+2:])))
		f.Metrics[i] = HMetric{AdvanceWidth: advance, LeftSideBearing: lsb}
	}
	// Trailing glyphs share the last advance width and carry only an LSB.
	base := 4 * numberOfHMetrics
	for i := numberOfHMetrics; i < numGlyphs; i++ {
		lsb := int(int16(binary.BigEndian.Uint16(hmtx[base+2*(i-numberOfHMetrics):])))
		f.Metrics[i] = HMetric{AdvanceWidth: advance, LeftSideBearing: lsb}
	}
	return nil
}

// Package sfnttest builds a small synthetic TrueType font for tests.
//
// Shipping a real TTF fixture would bloat the repository and tie tests
// to a third-party font's license, so tests construct this minimal but
// structurally complete font instead: a table directory with head,
// hhea, maxp, OS/2, cmap (format 4), loca (long), glyf, hmtx, and name,
// eight glyphs (an empty .notdef, six simple squares mapped to
// A a e i o u, and one composite mapped to b that references the 'a'
// glyph), and a name table carrying the family "Inter Test" on both the
// Windows and Macintosh platforms.
package sfnttest

import "encoding/binary"

// Layout constants of the synthetic font, for test assertions.
const (
	UnitsPerEm   = 1000
	Ascender     = 800
	NumGlyphs    = 8
	AdvanceWidth = 500
	LSB          = 50

	// Square glyph bounding box.
	GlyphXMin = 50
	GlyphYMin = 0
	GlyphXMax = 450
	GlyphYMax = 500

	// CompositeOffsetX is the x offset of the composite glyph's single
	// component (a reference to the 'a' glyph).
	CompositeOffsetX = 50

	// FamilyName is the family carried in the name table. It contains
	// "Inter" so the variant rename pass has something to replace.
	FamilyName = "Inter Test"
)

// Glyph order of the synthetic font.
const (
	GIDNotdef    = 0
	GIDUpperA    = 1
	GIDLowerA    = 2
	GIDLowerE    = 3
	GIDLowerI    = 4
	GIDLowerO    = 5
	GIDLowerU    = 6
	GIDComposite = 7 // mapped to 'b'
)

// Build returns the encoded bytes of the synthetic font.
func Build() []byte {
	square := encodeSquareGlyph()
	composite := encodeCompositeGlyph()

	// Glyph data and long loca offsets. Glyph 0 is empty.
	var glyf []byte
	loca := make([]byte, 4*(NumGlyphs+1))
	put32 := func(i int, v uint32) { binary.BigEndian.PutUint32(loca[4*i:], v) }
	put32(0, 0)
	put32(1, 0) // .notdef: zero length
	for gid := 1; gid <= 6; gid++ {
		glyf = append(glyf, square...)
		put32(gid+1, uint32(len(glyf)))
	}
	glyf = append(glyf, composite...)
	put32(8, uint32(len(glyf)))

	tables := []struct {
		tag  string
		data []byte
	}{
		{"OS/2", encodeOS2()},
		{"cmap", encodeCmap()},
		{"glyf", glyf},
		{"head", encodeHead()},
		{"hhea", encodeHhea()},
		{"hmtx", encodeHmtx()},
		{"loca", loca},
		{"maxp", encodeMaxp()},
		{"name", encodeName()},
	}

	header := make([]byte, 12)
	binary.BigEndian.PutUint32(header[0:], 0x00010000)
	binary.BigEndian.PutUint16(header[4:], uint16(len(tables)))
	// searchRange fields are not consulted by the parser under test;
	// filled with the correct values for 9 tables anyway.
	binary.BigEndian.PutUint16(header[6:], 128)
	binary.BigEndian.PutUint16(header[8:], 3)
	binary.BigEndian.PutUint16(header[10:], 16)

	directory := make([]byte, 16*len(tables))
	offset := len(header) + len(directory)
	var body []byte
	for i, tb := range tables {
		rec := directory[16*i:]
		copy(rec[0:4], tb.tag)
		binary.BigEndian.PutUint32(rec[8:], uint32(offset))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(tb.data)))

		body = append(body, tb.data...)
		for len(body)%4 != 0 {
			body = append(body, 0)
		}
		offset = len(header) + len(directory) + len(body)
	}

	out := append(header, directory...)
	return append(out, body...)
}

func u16(vals ...int) []byte {
	out := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint16(out[2*i:], uint16(int32(v)))
	}
	return out
}

func encodeHead() []byte {
	head := make([]byte, 54)
	binary.BigEndian.PutUint32(head[0:], 0x00010000)  // version
	binary.BigEndian.PutUint32(head[4:], 0x00010000)  // fontRevision
	binary.BigEndian.PutUint32(head[12:], 0x5F0F3CF5) // magicNumber
	binary.BigEndian.PutUint16(head[18:], UnitsPerEm)
	copy(head[36:], u16(GlyphXMin, GlyphYMin, GlyphXMax+CompositeOffsetX, GlyphYMax))
	binary.BigEndian.PutUint16(head[46:], 8) // lowestRecPPEM
	copy(head[48:], u16(2))                  // fontDirectionHint
	copy(head[50:], u16(1))                  // indexToLocFormat: long
	return head
}

func encodeHhea() []byte {
	hhea := make([]byte, 36)
	binary.BigEndian.PutUint32(hhea[0:], 0x00010000)
	copy(hhea[4:], u16(Ascender, -200, 0))           // ascender, descender, lineGap
	copy(hhea[10:], u16(AdvanceWidth, LSB, LSB))     // advanceWidthMax, minLSB, minRSB
	copy(hhea[16:], u16(GlyphXMax+CompositeOffsetX)) // xMaxExtent
	copy(hhea[18:], u16(1, 0, 0))                    // caret slope
	copy(hhea[34:], u16(NumGlyphs))                  // numberOfHMetrics
	return hhea
}

func encodeMaxp() []byte {
	maxp := make([]byte, 32)
	binary.BigEndian.PutUint32(maxp[0:], 0x00010000)
	binary.BigEndian.PutUint16(maxp[4:], NumGlyphs)
	return maxp
}

func encodeOS2() []byte {
	os2 := make([]byte, 78)
	copy(os2[68:], u16(Ascender, -200, 0)) // sTypoAscender/Descender/LineGap
	return os2
}

func encodeHmtx() []byte {
	var out []byte
	out = append(out, u16(AdvanceWidth, 0)...) // .notdef
	for gid := 1; gid < NumGlyphs; gid++ {
		lsb := LSB
		if gid == GIDComposite {
			lsb = GlyphXMin + CompositeOffsetX
		}
		out = append(out, u16(AdvanceWidth, lsb)...)
	}
	return out
}

// encodeCmap builds a format 4 subtable mapping A a b e i o u.
func encodeCmap() []byte {
	type seg struct {
		code int
		gid  int
	}
	segs := []seg{
		{0x41, GIDUpperA},
		{0x61, GIDLowerA},
		{0x62, GIDComposite},
		{0x65, GIDLowerE},
		{0x69, GIDLowerI},
		{0x6F, GIDLowerO},
		{0x75, GIDLowerU},
		{0xFFFF, 0}, // sentinel
	}
	segCount := len(segs)

	sub := u16(4, 16+8*segCount, 0) // format, length, language
	sub = append(sub, u16(2*segCount, 16, 3, 0)...)
	for _, s := range segs { // endCode
		sub = append(sub, u16(s.code)...)
	}
	sub = append(sub, u16(0)...) // reservedPad
	for _, s := range segs {     // startCode
		sub = append(sub, u16(s.code)...)
	}
	for _, s := range segs { // idDelta
		delta := s.gid - s.code
		if s.code == 0xFFFF {
			delta = 1
		}
		sub = append(sub, u16(delta)...)
	}
	for range segs { // idRangeOffset
		sub = append(sub, u16(0)...)
	}

	cmap := u16(0, 1)                 // version, numTables
	cmap = append(cmap, u16(3, 1)...) // Windows BMP
	record := make([]byte, 4)
	binary.BigEndian.PutUint32(record, 12)
	cmap = append(cmap, record...)
	return append(cmap, sub...)
}

// encodeSquareGlyph builds a one-contour square with four on-curve
// points, written with long (16-bit) coordinate deltas.
func encodeSquareGlyph() []byte {
	out := u16(1, GlyphXMin, GlyphYMin, GlyphXMax, GlyphYMax)
	out = append(out, u16(3, 0)...)           // endPts, instruction length
	out = append(out, 0x01, 0x01, 0x01, 0x01) // flags: on-curve, long deltas
	out = append(out, u16(GlyphXMin, 400, 0, -400)...)
	out = append(out, u16(0, 0, 500, 0)...)
	for len(out)%4 != 0 {
		out = append(out, 0)
	}
	return out
}

// encodeCompositeGlyph builds a composite with a single component:
// the 'a' glyph shifted right by CompositeOffsetX.
func encodeCompositeGlyph() []byte {
	out := u16(-1, GlyphXMin+CompositeOffsetX, GlyphYMin, GlyphXMax+CompositeOffsetX, GlyphYMax)
	out = append(out, u16(0x0003)...) // ARG_1_AND_2_ARE_WORDS | ARGS_ARE_XY_VALUES
	out = append(out, u16(GIDLowerA)...)
	out = append(out, u16(CompositeOffsetX, 0)...)
	for len(out)%4 != 0 {
		out = append(out, 0)
	}
	return out
}

// encodeName builds a format 0 name table with the family name on the
// Macintosh and Windows platforms.
func encodeName() []byte {
	mac := []byte(FamilyName)
	var win []byte
	for _, r := range FamilyName {
		win = append(win, u16(int(r))...)
	}

	out := u16(0, 2, 6+12*2) // format, count, stringOffset
	// Macintosh, Roman, English, family.
	out = append(out, u16(1, 0, 0, 1, len(mac), 0)...)
	// Windows, Unicode BMP, US English, family.
	out = append(out, u16(3, 1, 0x409, 1, len(win), len(mac))...)
	out = append(out, mac...)
	return append(out, win...)
}

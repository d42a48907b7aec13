package sfnt

import (
	"encoding/binary"
	"fmt"
)

// parseCmap decodes the best available cmap subtable into f.cmap.
//
// The cmap table is never modified by the generators (treatments change
// glyph shapes, not character mappings), so only lookup is implemented
// and the raw table is passed through on write.
func (f *Font) parseCmap() error {
	cmap := f.raw["cmap"]
	if len(cmap) < 4 {
		return fmt.Errorf("sfnt: cmap table too short")
	}
	numSubtables := int(binary.BigEndian.Uint16(cmap[2:]))
	if len(cmap) < 4+8*numSubtables {
		return fmt.Errorf("sfnt: cmap encoding records truncated")
	}

	// Pick the best Unicode subtable. Full-repertoire subtables
	// (Windows UCS-4, Unicode full) win over BMP-only ones.
	bestOffset := uint32(0)
	bestScore := -1
	for i := 0; i < numSubtables; i++ {
		rec := cmap[4+8*i:]
		platformID := binary.BigEndian.Uint16(rec[0:])
		encodingID := binary.BigEndian.Uint16(rec[2:])
		offset := binary.BigEndian.Uint32(rec[4:])

		score := -1
		switch {
		case platformID == 3 && encodingID == 10: // Windows, UCS-4
			score = 4
		case platformID == 0 && (encodingID == 4 || encodingID == 6): // Unicode full
			score = 3
		case platformID == 3 && encodingID == 1: // Windows, BMP
			score = 2
		case platformID == 0: // Unicode BMP
			score = 1
		}
		if score > bestScore {
			bestScore = score
			bestOffset = offset
		}
	}
	if bestScore < 0 {
		return fmt.Errorf("sfnt: no Unicode cmap subtable found")
	}
	if uint64(bestOffset)+2 > uint64(len(cmap)) {
		return fmt.Errorf("sfnt: cmap subtable offset out of range")
	}

	sub := cmap[bestOffset:]
	format := binary.BigEndian.Uint16(sub[0:])
	f.cmap = make(map[rune]GlyphID)
	switch format {
	case 4:
		return f.parseCmapFormat4(sub)
	case 12:
		return f.parseCmapFormat12(sub)
	default:
		return fmt.Errorf("sfnt: unsupported cmap subtable format %d", format)
	}
}

// parseCmapFormat4 decodes a segment-mapped BMP subtable.
func (f *Font) parseCmapFormat4(sub []byte) error {
	if len(sub) < 14 {
		return fmt.Errorf("sfnt: cmap format 4 header truncated")
	}
	segCount := int(binary.BigEndian.Uint16(sub[6:])) / 2
	need := 14 + 2*segCount + 2 + 2*segCount + 2*segCount + 2*segCount
	if len(sub) < need {
		return fmt.Errorf("sfnt: cmap format 4 arrays truncated")
	}

	endCodes := sub[14:]
	startCodes := sub[14+2*segCount+2:]
	idDeltas := sub[14+4*segCount+2:]
	idRangeOffsets := sub[14+6*segCount+2:]

	for i := 0; i < segCount; i++ {
		start := binary.BigEndian.Uint16(startCodes[2*i:])
		end := binary.BigEndian.Uint16(endCodes[2*i:])
		delta := binary.BigEndian.Uint16(idDeltas[2*i:])
		rangeOffset := binary.BigEndian.Uint16(idRangeOffsets[2*i:])

		for c := uint32(start); c <= uint32(end); c++ {
			if c == 0xFFFF {
				break // sentinel segment
			}
			var gid uint16
			if rangeOffset == 0 {
				gid = uint16(c) + delta // wraps mod 65536
			} else {
				// The offset is relative to the idRangeOffset entry's own
				// position within the subtable.
				idx := 14 + 6*segCount + 2 + 2*i + int(rangeOffset) + 2*int(c-uint32(start))
				if idx+2 > len(sub) {
					continue
				}
				gid = binary.BigEndian.Uint16(sub[idx:])
				if gid != 0 {
					gid += delta
				}
			}
			if gid != 0 && int(gid) < len(f.Glyphs) {
				f.cmap[rune(c)] = gid
			}
		}
	}
	return nil
}

// parseCmapFormat12 decodes a segmented-coverage subtable (full Unicode).
func (f *Font) parseCmapFormat12(sub []byte) error {
	if len(sub) < 16 {
		return fmt.Errorf("sfnt: cmap format 12 header truncated")
	}
	numGroups := int(binary.BigEndian.Uint32(sub[12:]))
	if len(sub) < 16+12*numGroups {
		return fmt.Errorf("sfnt: cmap format 12 groups truncated")
	}

	for i := 0; i < numGroups; i++ {
		group := sub[16+12*i:]
		startChar := binary.BigEndian.Uint32(group[0:])
		endChar := binary.BigEndian.Uint32(group[4:])
		startGID := binary.BigEndian.Uint32(group[8:])
		for c := startChar; c <= endChar; c++ {
			gid := startGID + (c - startChar)
			if gid != 0 && int(gid) < len(f.Glyphs) {
				f.cmap[rune(c)] = GlyphID(gid)
			}
			if c == 0x10FFFF {
				break
			}
		}
	}
	return nil
}

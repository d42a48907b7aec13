// Package sfnt reads, modifies, and writes TrueType (SFNT) fonts.
//
// This is not a general-purpose font library. It parses exactly the
// tables the VoDy generators need to mutate — glyf/loca (outlines),
// hmtx/hhea (horizontal metrics), name (family and credit metadata) —
// plus the tables needed to drive them (head, maxp, cmap for character
// lookup, OS/2 for the ascender). Every other table is carried through
// to the output byte-for-byte, so hinting, kerning, and OpenType layout
// of the base font survive the rewrite.
//
// Key constraints:
//   - Only glyf-flavored fonts are supported; CFF ('OTTO') fonts are
//     rejected at parse time.
//   - The writer always emits long-format loca offsets and a full hmtx
//     (one longHorMetric per glyph), updating head and hhea accordingly.
//   - Table checksums and head.checkSumAdjustment are recomputed on
//     every write.
package sfnt

package sfnt

import (
	"encoding/binary"
	"fmt"
	"sort"
	"unicode/utf16"
)

// Well-known name table IDs used by the generators.
const (
	// NameIDFamily is the font family name shown in font pickers.
	NameIDFamily = 1

	// NameIDFullName is the complete font name.
	NameIDFullName = 4

	// NameIDPostScript is the PostScript name (no spaces).
	NameIDPostScript = 6

	// NameIDDesigner credits the font's designer.
	NameIDDesigner = 9

	// NameIDLicense carries the license description text.
	NameIDLicense = 13
)

// NameRecord is one decoded entry of the name table.
//
// Strings for Windows and Unicode platforms (3 and 0) are stored
// UTF-16BE on disk; Macintosh platform (1) strings are single-byte.
// Both are decoded to Go strings here and re-encoded on write.
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Value      string
}

// parseName decodes the name table into f.Names.
func (f *Font) parseName() error {
	name := f.raw["name"]
	if len(name) < 6 {
		return fmt.Errorf("sfnt: name table too short")
	}
	count := int(binary.BigEndian.Uint16(name[2:]))
	stringOffset := int(binary.BigEndian.Uint16(name[4:]))
	if len(name) < 6+12*count {
		return fmt.Errorf("sfnt: name records truncated")
	}

	f.Names = make([]NameRecord, 0, count)
	for i := 0; i < count; i++ {
		rec := name[6+12*i:]
		r := NameRecord{
			PlatformID: binary.BigEndian.Uint16(rec[0:]),
			EncodingID: binary.BigEndian.Uint16(rec[2:]),
			LanguageID: binary.BigEndian.Uint16(rec[4:]),
			NameID:     binary.BigEndian.Uint16(rec[6:]),
		}
		length := int(binary.BigEndian.Uint16(rec[8:]))
		offset := int(binary.BigEndian.Uint16(rec[10:]))

		start := stringOffset + offset
		if start+length > len(name) {
			// Skip corrupt records rather than failing the whole parse;
			// fonts in the wild carry occasional junk entries.
			continue
		}
		r.Value = decodeNameString(r.PlatformID, name[start:start+length])
		f.Names = append(f.Names, r)
	}
	return nil
}

// decodeNameString converts on-disk name bytes to a Go string based on
// the record's platform.
func decodeNameString(platformID uint16, b []byte) string {
	if platformID == 1 {
		// Macintosh: single-byte MacRoman. ASCII (the only range the
		// generators produce or match against) maps 1:1.
		runes := make([]rune, len(b))
		for i, c := range b {
			runes[i] = rune(c)
		}
		return string(runes)
	}

	// Windows/Unicode: UTF-16BE.
	u := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u = append(u, binary.BigEndian.Uint16(b[i:]))
	}
	return string(utf16.Decode(u))
}

// encodeNameString converts a Go string back to on-disk bytes for the
// record's platform.
func encodeNameString(platformID uint16, s string) []byte {
	if platformID == 1 {
		out := make([]byte, 0, len(s))
		for _, r := range s {
			if r > 0xFF {
				r = '?'
			}
			out = append(out, byte(r))
		}
		return out
	}

	u := utf16.Encode([]rune(s))
	out := make([]byte, 2*len(u))
	for i, c := range u {
		binary.BigEndian.PutUint16(out[2*i:], c)
	}
	return out
}

// SetName sets (or adds) a name record for the exact
// platform/encoding/language/nameID tuple.
func (f *Font) SetName(value string, nameID, platformID, encodingID, languageID uint16) {
	for i := range f.Names {
		r := &f.Names[i]
		if r.PlatformID == platformID && r.EncodingID == encodingID &&
			r.LanguageID == languageID && r.NameID == nameID {
			r.Value = value
			return
		}
	}
	f.Names = append(f.Names, NameRecord{
		PlatformID: platformID,
		EncodingID: encodingID,
		LanguageID: languageID,
		NameID:     nameID,
		Value:      value,
	})
}

// encodeName serializes f.Names back into a format-0 name table.
// Records are sorted by (platform, encoding, language, nameID) as the
// table format requires.
func (f *Font) encodeName() []byte {
	records := make([]NameRecord, len(f.Names))
	copy(records, f.Names)
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.PlatformID != b.PlatformID {
			return a.PlatformID < b.PlatformID
		}
		if a.EncodingID != b.EncodingID {
			return a.EncodingID < b.EncodingID
		}
		if a.LanguageID != b.LanguageID {
			return a.LanguageID < b.LanguageID
		}
		return a.NameID < b.NameID
	})

	header := make([]byte, 6)
	binary.BigEndian.PutUint16(header[2:], uint16(len(records)))
	binary.BigEndian.PutUint16(header[4:], uint16(6+12*len(records)))

	var recBytes []byte
	var strBytes []byte
	var buf [12]byte
	for _, r := range records {
		encoded := encodeNameString(r.PlatformID, r.Value)
		binary.BigEndian.PutUint16(buf[0:], r.PlatformID)
		binary.BigEndian.PutUint16(buf[2:], r.EncodingID)
		binary.BigEndian.PutUint16(buf[4:], r.LanguageID)
		binary.BigEndian.PutUint16(buf[6:], r.NameID)
		binary.BigEndian.PutUint16(buf[8:], uint16(len(encoded)))
		binary.BigEndian.PutUint16(buf[10:], uint16(len(strBytes)))
		recBytes = append(recBytes, buf[:]...)
		strBytes = append(strBytes, encoded...)
	}

	out := header
	out = append(out, recBytes...)
	out = append(out, strBytes...)
	return out
}

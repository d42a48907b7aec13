// Package variant implements the VoDy font family builders.
//
// Each variant takes the base font (Inter, historically also Arial) and
// applies its treatment to the ten vowel glyphs, then rewrites the
// family name and credit metadata so the output installs alongside the
// base font instead of replacing it.
package variant

import (
	"fmt"
	"strings"

	"github.com/brainpowertools/vodyfont/internal/glyph"
	"github.com/brainpowertools/vodyfont/internal/model"
	"github.com/brainpowertools/vodyfont/internal/sfnt"
)

// Credit metadata written into every generated font (name IDs 9 and 13).
const (
	designerCredit = "Sam Glassenberg / Brain Power Tools LLC"
	licenseCredit  = "VoDy font family by Sam Glassenberg / Brain Power Tools LLC. " +
		"Vowel-differentiated fonts for phonological dyslexia."
)

// baseFamilyNames are the base-font family names replaced during the
// rename pass. Any name record containing one of these substrings gets
// it swapped for the variant's family name.
var baseFamilyNames = []string{"Inter", "Arial"}

// Generate parses the base TTF, applies the variant's treatment to every
// vowel glyph present in the font's character map, renames the family,
// and returns the re-encoded TTF bytes. The second return value lists
// the vowels that were actually treated (vowels missing from the base
// font's cmap are skipped rather than treated as errors).
func Generate(base []byte, v model.Variant, t Treatments) ([]byte, []rune, error) {
	f, err := sfnt.Parse(base)
	if err != nil {
		return nil, nil, fmt.Errorf("parse base font: %w", err)
	}

	touched, err := Apply(f, v, t)
	if err != nil {
		return nil, nil, err
	}

	out, err := f.Encode()
	if err != nil {
		return nil, nil, fmt.Errorf("encode %s: %w", v.FamilyName(), err)
	}
	return out, touched, nil
}

// Apply runs the variant's treatment in place on a parsed font and
// rewrites its naming metadata.
func Apply(f *sfnt.Font, v model.Variant, t Treatments) ([]rune, error) {
	if !v.IsValid() {
		return nil, model.NewCLIError(model.ExitUnknownVariant, fmt.Sprintf("unknown variant %q", v))
	}

	var touched []rune
	for _, ch := range model.Vowels {
		gid, ok := f.GlyphIndex(ch)
		if !ok {
			continue
		}
		applyTreatment(f, gid, ch, v, t)
		touched = append(touched, ch)
	}

	rename(f, v.FamilyName())
	return touched, nil
}

// applyTreatment dispatches one vowel glyph to the variant's treatment.
func applyTreatment(f *sfnt.Font, gid sfnt.GlyphID, ch rune, v model.Variant, t Treatments) {
	width := f.Metrics[gid].AdvanceWidth

	switch v {
	case model.VariantSmall:
		glyph.Scale(f, gid, t.SmallScale, t.SmallScale, glyph.AnchorOrigin, glyph.AnchorBaseline)
		glyph.SetAdvanceWidth(f, gid, roundScaled(width, t.SmallScale))

	case model.VariantBig:
		glyph.Scale(f, gid, t.BigScale, t.BigScale, glyph.AnchorOrigin, glyph.AnchorBaseline)
		glyph.SetAdvanceWidth(f, gid, roundScaled(width, t.BigScale))

	case model.VariantSpace:
		extra := roundScaled(width, t.SpacePadding)
		glyph.AddSpacing(f, gid, extra, extra)

	case model.VariantHigh:
		glyph.Scale(f, gid, t.HighScale, t.HighScale, glyph.AnchorCenter, glyph.AnchorTop)
		glyph.SetAdvanceWidth(f, gid, roundScaled(width, t.HighScale))

	case model.VariantShaped:
		applyShaped(f, gid, ch, t.Shaped)
	}
}

// applyShaped gives each vowel its unique treatment:
//
//	A/a — wider
//	E/e — opened counter
//	I/i — thicker strokes
//	O/o — heavier weight
//	U/u — deeper bottom curve
func applyShaped(f *sfnt.Font, gid sfnt.GlyphID, ch rune, t ShapedTreatments) {
	switch ch {
	case 'A', 'a':
		glyph.Widen(f, gid, t.WidenFactor)
	case 'E':
		glyph.OpenCounter(f, gid, t.OpenCounterUpper)
	case 'e':
		glyph.OpenCounter(f, gid, t.OpenCounterLower)
	case 'I', 'i':
		glyph.Thicken(f, gid, t.ThickenI)
	case 'O', 'o':
		glyph.Thicken(f, gid, t.ThickenO)
	case 'U', 'u':
		glyph.DeepenCurve(f, gid, t.DeepenU)
	}
}

// rename replaces the base family name in every name record and stamps
// the designer and license credits for both the Windows and Macintosh
// platforms.
func rename(f *sfnt.Font, familyName string) {
	for i := range f.Names {
		s := f.Names[i].Value
		for _, old := range baseFamilyNames {
			if strings.Contains(s, old) {
				s = strings.ReplaceAll(s, old, familyName)
			}
		}
		f.Names[i].Value = s
	}

	credits := map[uint16]string{
		sfnt.NameIDDesigner: designerCredit,
		sfnt.NameIDLicense:  licenseCredit,
	}
	for nameID, value := range credits {
		f.SetName(value, nameID, 3, 1, 0x0409) // Windows, Unicode BMP, English
		f.SetName(value, nameID, 1, 0, 0)      // Macintosh, Roman, English
	}
}

func roundScaled(width int, scale float64) int {
	return int(float64(width)*scale + 0.5)
}

package variant

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/brainpowertools/vodyfont/internal/model"
)

// Treatments holds the tunable parameters of every variant builder.
// The zero value is not useful; start from DefaultTreatments.
//
// Scale factors are ratios (0.50 = half size); the spacing padding is a
// ratio of the advance width; the shaped amounts are absolute font
// units on the base font's design grid.
type Treatments struct {
	// SmallScale is the vowel scale factor for VoDy Small.
	SmallScale float64 `json:"smallScale"`

	// BigScale is the vowel scale factor for VoDy Big.
	BigScale float64 `json:"bigScale"`

	// SpacePadding is the extra side bearing for VoDy Space, as a
	// fraction of each vowel's advance width, applied on both sides.
	SpacePadding float64 `json:"spacePadding"`

	// HighScale is the vowel scale factor for VoDy High.
	HighScale float64 `json:"highScale"`

	// Shaped holds the per-vowel parameters for VoDy Shaped.
	Shaped ShapedTreatments `json:"shaped"`
}

// ShapedTreatments parameterizes the per-vowel treatments of the
// Shaped variant.
type ShapedTreatments struct {
	// WidenFactor is the horizontal stretch applied to A/a.
	WidenFactor float64 `json:"widenFactor"`

	// OpenCounterUpper and OpenCounterLower are the counter-opening
	// amounts (font units) for E and e respectively.
	OpenCounterUpper int `json:"openCounterUpper"`
	OpenCounterLower int `json:"openCounterLower"`

	// ThickenI and ThickenO are the outward stroke pushes (font units)
	// for I/i and O/o.
	ThickenI int `json:"thickenI"`
	ThickenO int `json:"thickenO"`

	// DeepenU is the downward pull (font units) for the bottom curve
	// of U/u.
	DeepenU int `json:"deepenU"`
}

// DefaultTreatments returns the family's canonical parameters.
func DefaultTreatments() Treatments {
	return Treatments{
		SmallScale:   0.50,
		BigScale:     1.20,
		SpacePadding: 0.20,
		HighScale:    0.95,
		Shaped: ShapedTreatments{
			WidenFactor:      1.25,
			OpenCounterUpper: 120,
			OpenCounterLower: 80,
			ThickenI:         40,
			ThickenO:         50,
			DeepenU:          80,
		},
	}
}

// LoadTreatments reads a JSONC treatment-override file and merges it
// over the defaults: fields absent from the file keep their default
// values. JSONC is accepted (comments and trailing commas) so the file
// can document its own tuning.
func LoadTreatments(path string) (Treatments, error) {
	t := DefaultTreatments()

	data, err := os.ReadFile(path)
	if err != nil {
		return t, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read treatments file %s", path), err)
	}

	// Strip JSONC comments/trailing commas, then parse as regular JSON.
	cleanJSON := jsonc.ToJSON(data)
	if err := json.Unmarshal(cleanJSON, &t); err != nil {
		return t, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to parse treatments file %s", path), err)
	}

	if err := t.Validate(); err != nil {
		return t, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid treatments in %s", path), err)
	}
	return t, nil
}

// Validate rejects parameter values the glyph machinery cannot encode.
// Composite transforms store scale factors as F2Dot14, which caps any
// scale below 2.0.
func (t Treatments) Validate() error {
	checkScale := func(name string, v float64) error {
		if v <= 0 || v >= 2 {
			return fmt.Errorf("%s must be in (0, 2), got %g", name, v)
		}
		return nil
	}
	if err := checkScale("smallScale", t.SmallScale); err != nil {
		return err
	}
	if err := checkScale("bigScale", t.BigScale); err != nil {
		return err
	}
	if err := checkScale("highScale", t.HighScale); err != nil {
		return err
	}
	if err := checkScale("shaped.widenFactor", t.Shaped.WidenFactor); err != nil {
		return err
	}
	if t.SpacePadding < 0 || t.SpacePadding > 1 {
		return fmt.Errorf("spacePadding must be in [0, 1], got %g", t.SpacePadding)
	}
	return nil
}

package variant_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainpowertools/vodyfont/internal/variant"
)

func writeTreatments(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "treatments.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadTreatmentsMergesOverDefaults verifies partial files override
// only the fields they set, and JSONC comments and trailing commas are
// accepted.
func TestLoadTreatmentsMergesOverDefaults(t *testing.T) {
	path := writeTreatments(t, `{
		// tuned for a narrower base font
		"smallScale": 0.6,
		"shaped": {
			"deepenU": 100,
		},
	}`)

	got, err := variant.LoadTreatments(path)
	require.NoError(t, err)

	want := variant.DefaultTreatments()
	want.SmallScale = 0.6
	want.Shaped.DeepenU = 100
	assert.Equal(t, want, got)
}

func TestLoadTreatmentsMissingFile(t *testing.T) {
	_, err := variant.LoadTreatments(filepath.Join(t.TempDir(), "nope.jsonc"))
	require.Error(t, err)
}

func TestLoadTreatmentsBadJSON(t *testing.T) {
	path := writeTreatments(t, `{"smallScale": "half"}`)
	_, err := variant.LoadTreatments(path)
	require.Error(t, err)
}

func TestLoadTreatmentsRejectsInvalid(t *testing.T) {
	path := writeTreatments(t, `{"bigScale": 2.5}`)
	_, err := variant.LoadTreatments(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid treatments")
}

// TestValidate pins the encodable ranges: composite transforms store
// scales as F2Dot14, so every scale must stay below 2.0.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*variant.Treatments)
		wantErr bool
	}{
		{"defaults", func(*variant.Treatments) {}, false},
		{"zero scale", func(tr *variant.Treatments) { tr.SmallScale = 0 }, true},
		{"scale at two", func(tr *variant.Treatments) { tr.BigScale = 2.0 }, true},
		{"negative highScale", func(tr *variant.Treatments) { tr.HighScale = -0.5 }, true},
		{"widen too large", func(tr *variant.Treatments) { tr.Shaped.WidenFactor = 3 }, true},
		{"padding over one", func(tr *variant.Treatments) { tr.SpacePadding = 1.5 }, true},
		{"padding at bounds", func(tr *variant.Treatments) { tr.SpacePadding = 1.0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := variant.DefaultTreatments()
			tt.mutate(&tr)
			err := tr.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

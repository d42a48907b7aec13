package variant_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/brainpowertools/vodyfont/internal/model"
	"github.com/brainpowertools/vodyfont/internal/variant"
)

func TestBuildManifest(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	m := variant.BuildManifest("Inter-Regular.ttf", []model.Variant{
		model.VariantSmall, model.VariantShaped,
	}, now)

	assert.Equal(t, "VoDy", m.Family)
	assert.Equal(t, "Inter-Regular.ttf", m.Base)
	assert.Equal(t, now, m.GeneratedAt)
	require.Len(t, m.Fonts, 2)
	assert.Equal(t, variant.ManifestFont{
		Variant:   "small",
		Family:    "VoDy Small",
		File:      "VoDy_Small.ttf",
		Treatment: model.VariantSmall.Description(),
	}, m.Fonts[0])
	assert.Equal(t, "VoDy Shaped", m.Fonts[1].Family)
}

// TestWriteManifestRoundTrip verifies the YAML on disk deserializes back
// to the same manifest.
func TestWriteManifestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	m := variant.BuildManifest("base.ttf", model.AllVariants, time.Now())

	require.NoError(t, variant.WriteManifest(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got variant.Manifest
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, m.Family, got.Family)
	assert.Equal(t, m.Base, got.Base)
	assert.Equal(t, m.Fonts, got.Fonts)
	assert.True(t, m.GeneratedAt.Equal(got.GeneratedAt))
}

// TestWriteSpecimen verifies the rendered page references every variant
// by family and file name.
func TestWriteSpecimen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "specimen.html")
	m := variant.BuildManifest("base.ttf", model.AllVariants, time.Now())

	require.NoError(t, variant.WriteSpecimen(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	for _, v := range model.AllVariants {
		assert.Contains(t, html, v.FamilyName())
		assert.Contains(t, html, v.FileName())
	}
	assert.Contains(t, html, "<!DOCTYPE html>")
}

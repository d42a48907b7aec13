// manifest.go generates the YAML manifest describing a generated font
// family, written next to the TTFs so the site (and any downstream
// tooling) can discover what was built without parsing font binaries.
package variant

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brainpowertools/vodyfont/internal/model"
)

// Manifest describes one generation run of the font family.
type Manifest struct {
	// Family is the family name shared by all variants.
	Family string `yaml:"family"`

	// Base is the file name of the base font the variants were built from.
	Base string `yaml:"base"`

	// GeneratedAt is the UTC timestamp of the generation run.
	GeneratedAt time.Time `yaml:"generatedAt"`

	// Fonts lists the generated variants in generation order.
	Fonts []ManifestFont `yaml:"fonts"`
}

// ManifestFont describes a single generated TTF.
type ManifestFont struct {
	// Variant is the variant identifier (small, big, ...).
	Variant string `yaml:"variant"`

	// Family is the variant's full family name (e.g. "VoDy Small").
	Family string `yaml:"family"`

	// File is the TTF file name, relative to the manifest.
	File string `yaml:"file"`

	// Treatment is the human-readable treatment summary.
	Treatment string `yaml:"treatment"`
}

// BuildManifest assembles a Manifest for the given variants.
func BuildManifest(base string, variants []model.Variant, generatedAt time.Time) Manifest {
	m := Manifest{
		Family:      "VoDy",
		Base:        base,
		GeneratedAt: generatedAt.UTC(),
		Fonts:       make([]ManifestFont, 0, len(variants)),
	}
	for _, v := range variants {
		m.Fonts = append(m.Fonts, ManifestFont{
			Variant:   v.String(),
			Family:    v.FamilyName(),
			File:      v.FileName(),
			Treatment: v.Description(),
		})
	}
	return m
}

// WriteManifest serializes the manifest to YAML at the given path.
func WriteManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to serialize manifest", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to write manifest %s", path), err)
	}
	return nil
}

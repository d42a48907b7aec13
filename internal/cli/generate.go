// generate.go implements the "vodyfont generate" command.
//
// Generate builds the VoDy font family from a base TTF: it parses the
// base font once per variant, applies the variant's vowel treatment,
// and writes the renamed TTF into the output directory, along with a
// YAML manifest describing the run and (optionally) an HTML specimen
// page for visual review.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/brainpowertools/vodyfont/internal/model"
	"github.com/brainpowertools/vodyfont/internal/variant"
)

// generateFlags holds the flag values for the generate command.
// These are bound to cobra flags in NewGenerateCommand.
type generateFlags struct {
	base     string // --base: base font TTF path
	outDir   string // --out-dir: output directory for generated TTFs
	config   string // --config: optional JSONC treatment overrides
	specimen bool   // --specimen: also write specimen.html
}

// NewGenerateCommand creates the "generate" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewGenerateCommand() *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate [variant...]",
		Short: "Generate the VoDy font family from a base font",
		Long: `Generate VoDy font variants from a base TrueType font.

With no arguments, all five variants are generated (small, big, space,
high, shaped). Individual variants can be named to regenerate a subset.

Each run also writes a manifest.yaml describing the generated family.

Examples:
  vodyfont generate
  vodyfont generate small shaped
  vodyfont generate --base Arial.ttf --out-dir fonts
  vodyfont generate --config treatments.jsonc --specimen`,

		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.base, "base", "Inter-Regular.ttf", "Base font TTF to derive variants from")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", filepath.Join("www", "fonts"), "Output directory for generated fonts")
	cmd.Flags().StringVar(&flags.config, "config", "", "JSONC file overriding treatment parameters")
	cmd.Flags().BoolVar(&flags.specimen, "specimen", false, "Also write a specimen.html preview page")

	return cmd
}

// generatedFont records one written TTF for the result output.
type generatedFont struct {
	Variant string `json:"variant"`
	File    string `json:"file"`
	Vowels  int    `json:"vowels"`
}

// runGenerate is the main orchestration function for the generate command.
func runGenerate(args []string, flags *generateFlags) error {
	// Step 1: Resolve the variant set. No arguments means the whole family.
	variants := model.AllVariants
	if len(args) > 0 {
		variants = make([]model.Variant, 0, len(args))
		for _, arg := range args {
			v, err := model.ParseVariant(arg)
			if err != nil {
				return model.WrapCLIError(model.ExitUnknownVariant, "invalid variant argument", err)
			}
			variants = append(variants, v)
		}
	}

	// Step 2: Load treatment parameters (defaults, optionally overridden).
	treatments := variant.DefaultTreatments()
	if flags.config != "" {
		var err error
		treatments, err = variant.LoadTreatments(flags.config)
		if err != nil {
			return err // LoadTreatments already returns CLIError
		}
		VerboseLog("Loaded treatment overrides from %s", flags.config)
	}

	// Step 3: Read the base font once; each variant parses its own copy
	// so treatments never stack across variants.
	base, err := os.ReadFile(flags.base)
	if err != nil {
		return model.WrapCLIError(model.ExitFontError,
			fmt.Sprintf("failed to read base font %s", flags.base), err)
	}
	VerboseLog("Base font: %s (%d bytes)", flags.base, len(base))

	if err := os.MkdirAll(flags.outDir, 0755); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to create output directory %s", flags.outDir), err)
	}

	// Step 4: Generate and write each variant.
	results := make([]generatedFont, 0, len(variants))
	for _, v := range variants {
		VerboseLog("Generating %s...", v.FamilyName())

		data, touched, err := variant.Generate(base, v, treatments)
		if err != nil {
			if _, ok := err.(*model.CLIError); ok {
				return err
			}
			return model.WrapCLIError(model.ExitFontError,
				fmt.Sprintf("failed to generate %s", v.FamilyName()), err)
		}

		outPath := filepath.Join(flags.outDir, v.FileName())
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to write %s", outPath), err)
		}
		VerboseLog("Saved %s (%d vowels treated)", outPath, len(touched))

		results = append(results, generatedFont{
			Variant: v.String(),
			File:    v.FileName(),
			Vowels:  len(touched),
		})
	}

	// Step 5: Write the manifest describing the run.
	manifest := variant.BuildManifest(filepath.Base(flags.base), variants, time.Now())
	manifestPath := filepath.Join(flags.outDir, "manifest.yaml")
	if err := variant.WriteManifest(manifestPath, manifest); err != nil {
		return err
	}
	VerboseLog("Manifest written to %s", manifestPath)

	// Step 6: Optionally write the specimen preview page.
	if flags.specimen {
		specimenPath := filepath.Join(flags.outDir, "specimen.html")
		if err := variant.WriteSpecimen(specimenPath, manifest); err != nil {
			return err
		}
		VerboseLog("Specimen written to %s", specimenPath)
	}

	printGenerateResult(flags.outDir, results)
	return nil
}

// printGenerateResult outputs the generate results in text or JSON
// format depending on the --json global flag.
func printGenerateResult(outDir string, fonts []generatedFont) {
	if IsJSONOutput() {
		result := struct {
			OutDir string          `json:"outDir"`
			Fonts  []generatedFont `json:"fonts"`
		}{OutDir: outDir, Fonts: fonts}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Generated %d font(s) in %s\n", len(fonts), outDir)
	for _, f := range fonts {
		fmt.Printf("  %-20s %d vowels treated\n", f.File, f.Vowels)
	}
}

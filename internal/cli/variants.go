// variants.go implements the "vodyfont variants" command, which lists
// the members of the font family and their treatments as a text table
// or JSON array, depending on the --json flag.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brainpowertools/vodyfont/internal/model"
)

// NewVariantsCommand creates the "variants" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewVariantsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the VoDy font family variants",
		Long: `List every variant of the VoDy font family with its output file
name and treatment description.

Examples:
  vodyfont variants
  vodyfont variants --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			printVariants(model.AllVariants)
			return nil
		},
	}
}

// variantJSON is the JSON output structure for a single variant.
type variantJSON struct {
	Name      string `json:"name"`
	Family    string `json:"family"`
	File      string `json:"file"`
	Treatment string `json:"treatment"`
}

// printVariants outputs the variant list in text or JSON format.
func printVariants(variants []model.Variant) {
	if IsJSONOutput() {
		result := struct {
			Variants []variantJSON `json:"variants"`
		}{Variants: make([]variantJSON, 0, len(variants))}

		for _, v := range variants {
			result.Variants = append(result.Variants, variantJSON{
				Name:      v.String(),
				Family:    v.FamilyName(),
				File:      v.FileName(),
				Treatment: v.Description(),
			})
		}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("%-8s %-12s %-18s %s\n", "NAME", "FAMILY", "FILE", "TREATMENT")
	for _, v := range variants {
		fmt.Printf("%-8s %-12s %-18s %s\n", v.String(), v.FamilyName(), v.FileName(), v.Description())
	}
}

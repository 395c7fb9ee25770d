package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/addislabs/cropsight/internal/analytics"
	"github.com/addislabs/cropsight/internal/dataset"
	"github.com/addislabs/cropsight/internal/utils"
)

var (
	profOutputPath string
	profJSON       bool
)

var profileCmd = &cobra.Command{
	Use:   "profile <batch.json|lots.csv ...>",
	Short: "Profile import batches and print the column catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := loadProfile(args)
		if err != nil {
			return err
		}

		var out string
		if profJSON {
			b, err := utils.PrettyJSON(profile)
			if err != nil {
				return err
			}
			out = string(b)
		} else {
			out = renderProfile(profile)
		}

		if profOutputPath != "" {
			if err := utils.SafeWriteFile(profOutputPath, []byte(out)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote profile to %s\n", profOutputPath)
			return nil
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVarP(&profOutputPath, "output", "o", "", "optional path to write the profile")
	profileCmd.Flags().BoolVar(&profJSON, "json", false, "emit the full profile as JSON")
}

// renderProfile produces a compact text summary of a dataset profile.
func renderProfile(profile *dataset.DatasetProfile) string {
	var b strings.Builder
	b.WriteString("[DATASET PROFILE]\n")
	fmt.Fprintf(&b, "Imports: %d\n", len(profile.Imports))
	fmt.Fprintf(&b, "Rows: %s\n", analytics.FormatInt(len(profile.Rows)))
	fmt.Fprintf(&b, "Columns: %d (%d numeric, %d categorical, %d date)\n",
		len(profile.Columns), len(profile.NumericColumns),
		len(profile.CategoricalColumns), len(profile.DateColumns))
	fmt.Fprintf(&b, "Coverage: %d%%\n", analytics.Coverage(profile))

	b.WriteString("\n[COLUMNS]\n")
	for _, column := range profile.Columns {
		cp := profile.ColumnProfiles[column]
		fmt.Fprintf(&b, "- %s: %s (unique %d)", column, cp.Type, cp.UniqueValues)
		if len(cp.SampleValues) > 0 {
			samples := cp.SampleValues
			if len(samples) > 3 {
				samples = samples[:3]
			}
			fmt.Fprintf(&b, " — e.g., %s", strings.Join(samples, " | "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/addislabs/cropsight/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Cropsight configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		fmt.Printf("numeric_ratio: %.2f\n", c.ProfilerOptions().NumericRatio)
		fmt.Printf("date_ratio: %.2f\n", c.ProfilerOptions().DateRatio)
		fmt.Printf("sample_limit: %d\n", c.ProfilerOptions().SampleLimit)
		opt := c.DashboardOptions()
		fmt.Printf("frequency_limit: %d\n", opt.FrequencyLimit)
		fmt.Printf("recent_imports: %d\n", opt.RecentImports)
		fmt.Printf("sample_rows: %d\n", opt.SampleRows)
		if len(c.ColumnKeywords) > 0 {
			fmt.Println("column_keywords: (customized)")
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c := activeConfig()
		switch key {
		case "numeric_ratio":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 || f > 1 {
				return fmt.Errorf("invalid ratio for numeric_ratio: %v", val)
			}
			c.NumericRatio = f
		case "date_ratio":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 || f > 1 {
				return fmt.Errorf("invalid ratio for date_ratio: %v", val)
			}
			c.DateRatio = f
		case "sample_limit":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for sample_limit: %v", val)
			}
			c.SampleLimit = i
		case "frequency_limit":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for frequency_limit: %v", val)
			}
			c.FrequencyLimit = i
		case "recent_imports":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for recent_imports: %v", val)
			}
			c.RecentImports = i
		case "sample_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for sample_rows: %v", val)
			}
			c.SampleRows = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Println("✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

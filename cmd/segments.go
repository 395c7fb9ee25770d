package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/addislabs/cropsight/internal/analytics"
	"github.com/addislabs/cropsight/internal/utils"
)

var (
	segDimension string
	segMetric    string
	segAgg       string
	segScope     string
	segLimit     int
	segJSON      bool
)

var segmentsCmd = &cobra.Command{
	Use:   "segments <batch.json|lots.csv ...>",
	Short: "Group rows by a dimension and aggregate an optional metric",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch segAgg {
		case "count", "sum", "average":
		default:
			return fmt.Errorf("unsupported --agg: %s (use count|sum|average)", segAgg)
		}
		if segAgg != "count" && segMetric == "" {
			return fmt.Errorf("--agg %s requires --metric", segAgg)
		}

		profile, err := loadProfile(args)
		if err != nil {
			return err
		}

		result := analytics.Aggregate(profile, analytics.AggregationRequest{
			Dimension:   segDimension,
			Metric:      segMetric,
			Aggregation: segAgg,
			ImportScope: segScope,
		}, segLimit)

		if segJSON {
			b, err := utils.PrettyJSON(result)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}
		for _, datum := range result {
			fmt.Printf("%s: %s (count %d)\n", datum.Name, analytics.FormatNumber(&datum.Value), datum.Count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(segmentsCmd)
	segmentsCmd.Flags().StringVarP(&segDimension, "dimension", "d", "", "column to group by (required)")
	segmentsCmd.Flags().StringVarP(&segMetric, "metric", "m", "", "numeric column to aggregate")
	segmentsCmd.Flags().StringVar(&segAgg, "agg", "count", "aggregation: count|sum|average")
	segmentsCmd.Flags().StringVar(&segScope, "scope", "", "restrict to a single import ID")
	segmentsCmd.Flags().IntVar(&segLimit, "limit", 20, "maximum groups to return")
	segmentsCmd.Flags().BoolVar(&segJSON, "json", false, "emit the result as JSON")
	_ = segmentsCmd.MarkFlagRequired("dimension")
}

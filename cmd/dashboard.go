package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/addislabs/cropsight/internal/analytics"
	"github.com/addislabs/cropsight/internal/source"
	"github.com/addislabs/cropsight/internal/utils"
)

var (
	dashShipmentsPath string
	dashJSON          bool
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard <batch.json|lots.csv ...>",
	Short: "Build the dashboard summary for the combined dataset",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := loadProfile(args)
		if err != nil {
			return err
		}

		var shipments []analytics.Shipment
		if dashShipmentsPath != "" {
			shipments, err = source.LoadShipments(dashShipmentsPath)
			if err != nil {
				return err
			}
		}

		dashboard := analytics.BuildDashboard(profile, shipments, activeConfig().DashboardOptions())

		if dashJSON {
			b, err := utils.PrettyJSON(dashboard)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}
		fmt.Println(renderDashboard(dashboard))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringVar(&dashShipmentsPath, "shipments", "", "optional JSON file of shipment records")
	dashboardCmd.Flags().BoolVar(&dashJSON, "json", false, "emit the dashboard as JSON")
}

func renderDashboard(dashboard *analytics.DashboardSummary) string {
	var b strings.Builder
	s := dashboard.Summary
	m := dashboard.Metrics

	b.WriteString("[SUMMARY]\n")
	fmt.Fprintf(&b, "Rows: %s across %d imports\n", analytics.FormatInt(s.TotalRows), s.TotalImports)
	fmt.Fprintf(&b, "Fields: %d (%d numeric, %d categorical)\n", s.ColumnCount, s.NumericColumnCount, s.CategoricalColumnCount)
	fmt.Fprintf(&b, "Coverage: %d%%\n", s.DataCoveragePct)

	b.WriteString("\n[METRICS]\n")
	fmt.Fprintf(&b, "Average quality score: %s\n", analytics.FormatNumber(m.AverageQualityScore))
	fmt.Fprintf(&b, "Total volume: %s\n", analytics.FormatNumber(m.TotalVolume))
	fmt.Fprintf(&b, "Contract value: %s\n", analytics.FormatUSD(m.TotalContractValue))
	fmt.Fprintf(&b, "Shipments in progress: %d\n", m.ShipmentsInProgress)

	writeSegment := func(title string, table []analytics.FrequencyDatum) {
		if len(table) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n[%s]\n", title)
		for _, item := range table {
			fmt.Fprintf(&b, "- %s: %s\n", item.Name, analytics.FormatInt(item.Count))
		}
	}
	writeSegment("TOP REGIONS", dashboard.Segments.TopRegions)
	writeSegment("TOP VARIETIES", dashboard.Segments.TopVarieties)
	writeSegment("TOP PROCESSES", dashboard.Segments.TopProcesses)

	if points := dashboard.Timeline.RowsPerMonth; len(points) > 0 {
		b.WriteString("\n[TIMELINE]\n")
		for _, point := range points {
			fmt.Fprintf(&b, "- %s: %s rows\n", point.Label, analytics.FormatInt(point.Value))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

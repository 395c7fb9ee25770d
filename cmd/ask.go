package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/addislabs/cropsight/internal/agent"
	"github.com/addislabs/cropsight/internal/analytics"
	"github.com/addislabs/cropsight/internal/source"
)

var askShipmentsPath string

var askCmd = &cobra.Command{
	Use:   "ask <question> <batch.json|lots.csv ...>",
	Short: "Answer a free-text question about the dataset",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := args[0]

		profile, err := loadProfile(args[1:])
		if err != nil {
			return err
		}

		var shipments []analytics.Shipment
		if askShipmentsPath != "" {
			shipments, err = source.LoadShipments(askShipmentsPath)
			if err != nil {
				return err
			}
		}

		dashboard := analytics.BuildDashboard(profile, shipments, activeConfig().DashboardOptions())
		fmt.Println(agent.Respond(question, dashboard))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askShipmentsPath, "shipments", "", "optional JSON file of shipment records")
}

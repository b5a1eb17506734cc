package cmd

import (
	"asset-sync/feature/resource"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// resourceCmd represents the resource command
var resourceCmd = &cobra.Command{
	Use:   "resource [path]",
	Short: "Show the detail report of a single resource",
	Long:  `Reports the fingerprints, cache state and staleness of one resource path. Omit the path for the document root.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		report, err := resource.NewService(a.sync, a.logger).GetResourceDetail(cmd.Context(), path)
		if err != nil {
			return err
		}
		a.logger.Debug("Resource checked", zap.String("key", report.Key), zap.String("status", report.IntegrityStatus))
		return printJSON(report)
	},
}

func init() {
	RootCmd.AddCommand(resourceCmd)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd inspects the database schema for the configured profile.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the database schema",
	Long: `Checks that the aircraft, flight and position tables of the configured
profile exist with every column the logger writes to. Prints the report as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap()
		if err != nil {
			return err
		}
		defer d.log.Sync()

		report, err := d.store.CheckSchema()
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(out))

		if !report.Matched {
			d.log.Warn("Schema does not match profile", zap.Strings("errors", report.Errors))
			return fmt.Errorf("schema does not match profile %s", report.Profile)
		}
		d.log.Info("Schema matches profile")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}

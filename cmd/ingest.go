package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"flight-logger/core/reconcile"
	"flight-logger/feature/ingest"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ingestJSON bool

// ingestCmd reconciles snapshot files given on the command line.
var ingestCmd = &cobra.Command{
	Use:   "ingest FILE...",
	Short: "Reconcile snapshot files once",
	Long: `Reconciles the given dump1090 snapshot files into the database, in the order
given, each in its own transaction. A file that fails is reported and the
remaining files are still processed.

Examples:
  # Replay a receiver's history
  flight-logger ingest /run/dump1090-mutability/history_*.json

  # Print one JSON summary per file
  flight-logger ingest --json aircraft.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "Print a JSON summary per file")
	RootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := bootstrap()
	if err != nil {
		return err
	}
	defer d.log.Sync()

	var opts []ingest.Option
	archiver, err := d.archiver(ctx)
	if err != nil {
		return err
	}
	if archiver != nil {
		opts = append(opts, ingest.WithArchiver(archiver))
	}

	engine := reconcile.NewEngine(d.store, d.log.Named("reconcile"))
	worker := ingest.NewWorker(engine, d.log.Named("ingest"), opts...)

	enc := json.NewEncoder(os.Stdout)
	failed := 0
	for _, path := range args {
		summary, err := worker.ProcessFile(ctx, path)
		if err != nil {
			failed++
		}
		if ingestJSON {
			if encErr := enc.Encode(summary); encErr != nil {
				return fmt.Errorf("failed to write summary: %w", encErr)
			}
		}
	}

	stats := worker.Stats()
	d.log.Info("Ingest finished",
		zap.Int64("committed", stats.Committed),
		zap.Int64("failed", stats.Failed),
		zap.Int64("unreadable", stats.Unreadable),
		zap.Int("positions_inserted", stats.Totals.PositionsInserted),
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d snapshots failed", failed, len(args))
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rogerio-castellano/container-tracker/internal/export"
	"github.com/rogerio-castellano/container-tracker/internal/filter"
	"github.com/rogerio-castellano/container-tracker/internal/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportStart string
	exportEnd   string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered movements as CSV",
	Long: `export takes one snapshot of the movements collection, keeps the movements
between --start and --end (yyyy-MM-dd, both inclusive) and writes them as CSV.
Without either flag the current week is exported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), cmd.Flags().Changed("start") || cmd.Flags().Changed("end"), cmd.OutOrStdout())
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportStart, "start", "", "first day (yyyy-MM-dd)")
	exportCmd.Flags().StringVar(&exportEnd, "end", "", "last day (yyyy-MM-dd)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", export.Filename, "output file, - for stdout")
}

func runExport(ctx context.Context, explicitRange bool, stdout io.Writer) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	loc, err := a.cfg.Location()
	if err != nil {
		return err
	}

	rng := filter.CurrentWeek(time.Now().In(loc))
	if explicitRange {
		if rng, err = filter.ParseRange(exportStart, exportEnd, loc); err != nil {
			return err
		}
	}

	if err := a.syncer.Start(ctx); err != nil {
		return err
	}
	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := a.syncer.WaitSynced(waitCtx); err != nil {
		return fmt.Errorf("movements not loaded: %w", err)
	}

	movements := a.syncer.Movements()
	for i := range movements {
		movements[i].Date = movements[i].Date.In(loc)
	}
	movements = filter.Apply(movements, rng)

	if err := writeExport(exportOut, stdout, movements); err != nil {
		return err
	}
	a.logger.Info("exported movements", zap.Int("count", len(movements)), zap.String("out", exportOut))
	return nil
}

// writeExport writes movements as CSV to path, or to stdout when path is "-". No file
// is created when there is nothing to export.
func writeExport(path string, stdout io.Writer, movements []models.Movement) error {
	if len(movements) == 0 {
		return export.ErrNothingToExport
	}

	out := stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("could not create %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}
	return export.WriteCSV(out, movements)
}

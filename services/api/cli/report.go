package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/02loveslollipop/Shizuku-water-quality/services/api/dataset"
)

var reportSample int

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the dataset once and print the cleaning report",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	reportCmd.Flags().IntVar(&reportSample, "sample", 5, "number of cleaned observations to print")
}

func runReport(ctx context.Context, w io.Writer) error {
	provider, closeSources, err := newProvider(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSources()

	snap, err := provider.Build(ctx)
	if err != nil {
		return err
	}
	return writeReport(w, snap, reportSample)
}

func writeReport(w io.Writer, snap *dataset.Snapshot, sample int) error {
	if err := snap.Report.WriteText(w); err != nil {
		return err
	}
	if !snap.Ready() {
		_, err := fmt.Fprintln(w, "\nNo observations remain after cleaning.")
		return err
	}

	fmt.Fprintf(w, "\n--- First %d cleaned observations ---\n", min(sample, snap.Store.Len()))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "timestamp\tlatitude\tlongitude\ttemperature\tsalinity\todo")
	for _, o := range snap.Store.Head(sample) {
		fmt.Fprintf(tw, "%s\t%.5f\t%.5f\t%.2f\t%.2f\t%.2f\n",
			o.Timestamp, o.Latitude, o.Longitude, o.Temperature, o.Salinity, o.ODO)
	}
	return tw.Flush()
}

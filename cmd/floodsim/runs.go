package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/floodsim/internal/persistence"
	"github.com/talgya/floodsim/internal/report"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect archived flood runs",
}

// -- runs list --

var runsListLimit int

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDB(cfg.Data.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := db.ListRuns(runsListLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs found.")
			return nil
		}
		return formatRunsList(cmd.OutOrStdout(), runs)
	},
}

// -- runs show --

var runsShowFormat string

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the district table of an archived run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cfg.Data.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		run, err := db.GetRun(args[0])
		if err != nil {
			return err
		}
		rows, err := db.RunRows(run.ID)
		if err != nil {
			return err
		}
		return report.Write(cmd.OutOrStdout(), run.Report(rows), runsShowFormat)
	},
}

func init() {
	runsListCmd.Flags().IntVar(&runsListLimit, "limit", 20, "maximum number of runs to list")
	runsShowCmd.Flags().StringVar(&runsShowFormat, "format", report.FormatText, "report format: text, json or yaml")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func formatRunsList(w io.Writer, runs []persistence.Run) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRIVER\tSEVERITY\tSEED\tMOVERS\tPOPULATION\tCREATED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%.0fcm\t%d\t%s\t%s\t%s\n",
			r.ID, r.River, r.SeverityCm, r.Seed,
			humanize.Comma(int64(r.Movers)), humanize.Comma(int64(r.TotalPopulation)),
			r.CreatedAt().Format(time.DateTime))
	}
	return tw.Flush()
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/talgya/floodsim/internal/districts"
	"github.com/talgya/floodsim/internal/entropy"
)

var districtsCmd = &cobra.Command{
	Use:   "districts",
	Short: "Inspect and manage district reference data",
}

// -- districts list --

var districtsListCSV string

var districtsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the districts a flood run would use",
	RunE: func(cmd *cobra.Command, _ []string) error {
		list, err := loadDistricts(cfg, districtsListCSV, entropy.Resolve(cfg.Simulation.Seed))
		if err != nil {
			return err
		}
		reg, err := districts.NewRegistry(list)
		if err != nil {
			return eris.Wrap(err, "districts list")
		}
		return formatDistricts(cmd.OutOrStdout(), reg)
	},
}

// -- districts import --

var districtsImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Store districts from a CSV file in the database",
	Long:  "Replaces the stored district set. Later flood runs without a CSV use it instead of generated districts.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := readDistrictsCSV(args[0])
		if err != nil {
			return err
		}
		if _, err := districts.NewRegistry(list); err != nil {
			return eris.Wrap(err, "districts import")
		}

		db, err := openDB(cfg.Data.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.SaveDistricts(list); err != nil {
			return err
		}
		slog.Info("districts imported", "count", len(list), "db", cfg.Data.DBPath)
		return nil
	},
}

// -- districts export --

var districtsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current district set as CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		list, err := loadDistricts(cfg, "", entropy.Resolve(cfg.Simulation.Seed))
		if err != nil {
			return err
		}
		return districts.WriteCSV(cmd.OutOrStdout(), list)
	},
}

func init() {
	districtsListCmd.Flags().StringVar(&districtsListCSV, "districts", "", "district CSV overriding data.districts_csv")

	districtsCmd.AddCommand(districtsListCmd)
	districtsCmd.AddCommand(districtsImportCmd)
	districtsCmd.AddCommand(districtsExportCmd)
	rootCmd.AddCommand(districtsCmd)
}

func formatDistricts(w io.Writer, reg *districts.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPOPULATION\tELEVATION\tLAT\tLON\tRIVERS")
	for _, d := range reg.All() {
		fmt.Fprintf(tw, "%s\t%s\t%dm\t%.4f\t%.4f\t%s\n",
			d.Name, humanize.Comma(int64(d.Population)), d.Elevation, d.Lat(), d.Lon(), riverList(d))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if reg.Len() == 0 {
		return nil
	}
	b := reg.Bounds()
	_, err := fmt.Fprintf(w, "\n%d districts, %s residents, lat %.2f..%.2f, lon %.2f..%.2f\n",
		reg.Len(), humanize.Comma(int64(reg.TotalPopulation())), b.Min(0), b.Max(0), b.Min(1), b.Max(1))
	return err
}

func riverList(d *districts.District) string {
	out := ""
	for _, r := range districts.Rivers() {
		if !d.OnRiver(r) {
			continue
		}
		if out != "" {
			out += ","
		}
		out += r.String()
	}
	if out == "" {
		return "-"
	}
	return out
}

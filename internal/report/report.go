// Package report renders the outcome of a flood event: arrivals and final
// population per district.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/talgya/floodsim/internal/districts"
	"github.com/talgya/floodsim/internal/engine"
)

// Row is one district's line in a report.
type Row struct {
	District   string `json:"district" yaml:"district"`
	Status     string `json:"status" yaml:"status"` // unaffected, direct or secondary
	Arrivals   int    `json:"arrivals" yaml:"arrivals"`
	Population int    `json:"population" yaml:"population"`
}

// Report summarises one flood event.
type Report struct {
	RunID           string  `json:"run_id" yaml:"run_id"`
	River           string  `json:"river" yaml:"river"`
	SeverityCm      float64 `json:"severity_cm" yaml:"severity_cm"`
	AverageDistance float64 `json:"average_distance" yaml:"average_distance"`
	Evaluated       int     `json:"evaluated" yaml:"evaluated"`
	Movers          int     `json:"movers" yaml:"movers"`
	TotalPopulation int     `json:"total_population" yaml:"total_population"`
	Rows            []Row   `json:"districts" yaml:"districts"`
}

// Status values for Row.Status.
const (
	StatusUnaffected = "unaffected"
	StatusDirect     = "direct"
	StatusSecondary  = "secondary"
)

// Build reads the registry after a flood and produces a report in registry
// order. It does not modify anything.
func Build(reg *districts.Registry, res *engine.Result) *Report {
	r := &Report{
		RunID:           res.ID.String(),
		River:           res.River.String(),
		SeverityCm:      res.SeverityCm,
		AverageDistance: res.AverageDistance,
		Evaluated:       res.Evaluated,
		Movers:          res.Movers(),
		TotalPopulation: reg.TotalPopulation(),
		Rows:            make([]Row, 0, reg.Len()),
	}
	for _, d := range reg.All() {
		r.Rows = append(r.Rows, Row{
			District:   d.Name,
			Status:     status(res.Impact, d.Key()),
			Arrivals:   res.Arrivals[d.Key()],
			Population: d.Population,
		})
	}
	return r
}

func status(im *engine.Impact, k districts.Key) string {
	switch {
	case im == nil:
		return StatusUnaffected
	case im.IsDirect(k):
		return StatusDirect
	case im.IsSecondary(k):
		return StatusSecondary
	}
	return StatusUnaffected
}

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Write renders the report in the named format.
func Write(w io.Writer, r *Report, format string) error {
	switch format {
	case "", FormatText:
		return WriteText(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatYAML:
		return WriteYAML(w, r)
	}
	return eris.Errorf("report: unknown format %q", format)
}

// WriteText renders an aligned table with thousands separators.
func WriteText(w io.Writer, r *Report) error {
	fmt.Fprintf(w, "Flood on the %s at %.0fcm (run %s)\n", r.River, r.SeverityCm, r.RunID)
	fmt.Fprintf(w, "%s residents evaluated, %s moved\n\n",
		humanize.Comma(int64(r.Evaluated)), humanize.Comma(int64(r.Movers)))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DISTRICT\tSTATUS\tARRIVALS\tPOPULATION\t")
	for _, row := range r.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			row.District, row.Status, humanize.Comma(int64(row.Arrivals)), humanize.Comma(int64(row.Population)))
	}
	fmt.Fprintf(tw, "TOTAL\t\t%s\t%s\t\n", humanize.Comma(int64(r.Movers)), humanize.Comma(int64(r.TotalPopulation)))
	if err := tw.Flush(); err != nil {
		return eris.Wrap(err, "report: write text")
	}
	return nil
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return eris.Wrap(err, "report: write json")
	}
	return nil
}

// WriteYAML renders the report as YAML.
func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return eris.Wrap(err, "report: write yaml")
	}
	if err := enc.Close(); err != nil {
		return eris.Wrap(err, "report: close yaml")
	}
	return nil
}

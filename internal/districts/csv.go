package districts

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// csvFields is the column count of a district row:
// name,population,lat,lon,elevation,jamuna,ganges,meghna
const csvFields = 8

// LoadCSV parses district reference data. A leading header row is skipped
// when its population column is not an integer. Blank lines are ignored.
func LoadCSV(r io.Reader) ([]*District, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var out []*District
	seen := make(map[Key]bool)
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "districts: read csv")
		}
		row++

		if row == 1 && isHeader(record) {
			continue
		}
		d, err := parseRow(record)
		if err != nil {
			return nil, eris.Wrapf(err, "districts: row %d", row)
		}
		if seen[d.Key()] {
			return nil, eris.Wrapf(ErrDuplicateDistrict, "districts: row %d: %q", row, d.Name)
		}
		seen[d.Key()] = true
		out = append(out, d)
	}
	return out, nil
}

// WriteCSV writes districts in the format LoadCSV reads, with a header row.
func WriteCSV(w io.Writer, list []*District) error {
	cw := csv.NewWriter(w)
	header := []string{"name", "population", "lat", "lon", "elevation", "jamuna", "ganges", "meghna"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "districts: write csv header")
	}
	for _, d := range list {
		rec := []string{
			d.Name,
			strconv.Itoa(d.Population),
			strconv.FormatFloat(d.Lat(), 'f', -1, 64),
			strconv.FormatFloat(d.Lon(), 'f', -1, 64),
			strconv.Itoa(d.Elevation),
			flag(d.Rivers[Jamuna]),
			flag(d.Rivers[Ganges]),
			flag(d.Rivers[Meghna]),
		}
		if err := cw.Write(rec); err != nil {
			return eris.Wrapf(err, "districts: write csv row %q", d.Name)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "districts: flush csv")
	}
	return nil
}

func isHeader(record []string) bool {
	if len(record) < 2 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(record[1]))
	return err != nil
}

func parseRow(record []string) (*District, error) {
	if len(record) < csvFields {
		return nil, eris.Errorf("expected %d fields, got %d", csvFields, len(record))
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	name := record[0]
	if name == "" {
		return nil, eris.New("empty district name")
	}
	pop, err := strconv.Atoi(record[1])
	if err != nil {
		return nil, eris.Wrap(err, "population")
	}
	if pop < 0 {
		return nil, eris.Errorf("negative population %d", pop)
	}
	lat, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return nil, eris.Wrap(err, "lat")
	}
	lon, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return nil, eris.Wrap(err, "lon")
	}
	elev, err := strconv.Atoi(record[4])
	if err != nil {
		return nil, eris.Wrap(err, "elevation")
	}

	var rivers [NumRivers]bool
	for i := 0; i < NumRivers; i++ {
		v, err := parseFlag(record[5+i])
		if err != nil {
			return nil, eris.Wrap(err, River(i).String())
		}
		rivers[i] = v
	}

	return New(name, elev, pop, lat, lon, rivers[Jamuna], rivers[Ganges], rivers[Meghna]), nil
}

func parseFlag(s string) (bool, error) {
	switch s {
	case "1":
		return true, nil
	case "0", "":
		return false, nil
	}
	return false, eris.Errorf("river flag must be 0 or 1, got %q", s)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

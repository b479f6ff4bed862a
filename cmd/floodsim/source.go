package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/talgya/floodsim/internal/config"
	"github.com/talgya/floodsim/internal/districts"
	"github.com/talgya/floodsim/internal/persistence"
)

// loadDistricts resolves the district set: an explicit CSV wins, then a
// previously imported set in the database, then the generator.
func loadDistricts(c *config.Config, csvPath string, seed int64) ([]*districts.District, error) {
	if csvPath == "" {
		csvPath = c.Data.DistrictsCSV
	}
	if csvPath != "" {
		list, err := readDistrictsCSV(csvPath)
		if err != nil {
			return nil, err
		}
		slog.Info("districts loaded", "source", csvPath, "count", len(list))
		return list, nil
	}

	if dbExists(c.Data.DBPath) {
		db, err := persistence.Open(c.Data.DBPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if db.HasDistricts() {
			list, err := db.LoadDistricts()
			if err != nil {
				return nil, err
			}
			slog.Info("districts loaded", "source", c.Data.DBPath, "count", len(list))
			return list, nil
		}
	}

	gen := districts.DefaultGenConfig()
	gen.Count = c.Generator.Districts
	gen.Seed = seed
	list := districts.Generate(gen)
	slog.Info("districts generated", "count", len(list), "seed", seed)
	return list, nil
}

func readDistrictsCSV(path string) ([]*districts.District, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	list, err := districts.LoadCSV(f)
	if err != nil {
		return nil, eris.Wrapf(err, "load %s", path)
	}
	return list, nil
}

func dbExists(path string) bool {
	if path == ":memory:" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// openDB opens the run archive, creating its directory if needed.
func openDB(path string) (*persistence.DB, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, eris.Wrapf(err, "create %s", dir)
		}
	}
	return persistence.Open(path)
}

package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/floodsim/internal/districts"
	"github.com/talgya/floodsim/internal/report"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDistricts_SaveLoad(t *testing.T) {
	db := openTestDB(t)
	assert.False(t, db.HasDistricts())

	list := []*districts.District{
		districts.New("Sirajganj", 14, 3_097_489, 24.45, 89.70, true, false, false),
		districts.New("Rajshahi", 20, 2_595_197, 24.37, 88.60, false, true, false),
		districts.New("Chandpur", 8, 2_416_018, 23.23, 90.65, false, false, true),
	}
	require.NoError(t, db.SaveDistricts(list))
	assert.True(t, db.HasDistricts())

	back, err := db.LoadDistricts()
	require.NoError(t, err)
	require.Len(t, back, 3)
	for i := range list {
		assert.Equal(t, list[i].Name, back[i].Name)
		assert.Equal(t, list[i].Population, back[i].Population)
		assert.Equal(t, list[i].Elevation, back[i].Elevation)
		assert.Equal(t, list[i].Rivers, back[i].Rivers)
		assert.InDelta(t, list[i].Lat(), back[i].Lat(), 1e-9)
		assert.InDelta(t, list[i].Lon(), back[i].Lon(), 1e-9)
	}
}

func TestDistricts_SaveReplaces(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveDistricts([]*districts.District{
		districts.New("A", 1, 1, 0, 0, false, false, false),
		districts.New("B", 1, 1, 1, 1, false, false, false),
	}))
	require.NoError(t, db.SaveDistricts([]*districts.District{
		districts.New("C", 1, 1, 0, 0, false, false, false),
	}))

	back, err := db.LoadDistricts()
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, "C", back[0].Name)
}

func testReport(id string, movers int) *report.Report {
	return &report.Report{
		RunID:           id,
		River:           "ganges",
		SeverityCm:      400,
		AverageDistance: 1.7,
		Evaluated:       10,
		Movers:          movers,
		TotalPopulation: 105,
		Rows: []report.Row{
			{District: "A", Status: report.StatusDirect, Arrivals: 0, Population: 99},
			{District: "B", Status: report.StatusUnaffected, Arrivals: movers, Population: 6},
		},
	}
}

func TestRuns_SaveList(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SaveRun(testReport("run-1", 1), 42))
	require.NoError(t, db.SaveRun(testReport("run-2", 3), 43))

	runs, err := db.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	byID := map[string]Run{}
	for _, r := range runs {
		byID[r.ID] = r
	}
	assert.Equal(t, int64(42), byID["run-1"].Seed)
	assert.Equal(t, 3, byID["run-2"].Movers)
	assert.Equal(t, "ganges", byID["run-2"].River)
	assert.False(t, byID["run-1"].CreatedAt().IsZero())

	limited, err := db.ListRuns(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRuns_Rows(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveRun(testReport("run-1", 1), 42))

	rows, err := db.RunRows("run-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, report.Row{District: "A", Status: report.StatusDirect, Arrivals: 0, Population: 99}, rows[0])
	assert.Equal(t, 1, rows[1].Arrivals)

	none, err := db.RunRows("missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRuns_DuplicateID(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveRun(testReport("run-1", 1), 42))
	assert.Error(t, db.SaveRun(testReport("run-1", 1), 42))

	rows, err := db.RunRows("run-1")
	require.NoError(t, err)
	assert.Len(t, rows, 2, "failed insert is rolled back")
}

func TestRuns_GetAndRebuildReport(t *testing.T) {
	db := openTestDB(t)
	want := testReport("run-1", 1)
	require.NoError(t, db.SaveRun(want, 42))

	run, err := db.GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), run.Seed)

	rows, err := db.RunRows(run.ID)
	require.NoError(t, err)
	assert.Equal(t, want, run.Report(rows))
}

func TestRuns_GetMissing(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetRun("nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

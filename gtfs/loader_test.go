package gtfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fixtureStops = `stop_id,stop_name,stop_lat,stop_lon
S1,Alpha,-37.8,144.9
S2,Beta,-37.7,145.0
S3,Gamma,-37.6,145.1
`
	fixtureRoutes = `route_id,agency_id,route_short_name,route_long_name
2-PKM,MT,PKM,Pakenham Line
`
	// Rows deliberately out of stop_sequence order: the loader must sort.
	fixtureStopTimes = `trip_id,arrival_time,departure_time,stop_id,stop_sequence
5.T3.2-PKM-vic-2.1.H,08:12:00,08:12:30,S3,3
5.T3.2-PKM-vic-2.1.H,08:00:00,08:00:30,S1,1
5.T3.2-PKM-vic-2.1.H,08:05:00,08:05:30,S2,2
6.T3.2-PKM-vic-2.1.H,25:10:00,25:10:30,S1,1
`
	// Same for shape_pt_sequence.
	fixtureShapes = `shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence
2-PKM-vic-2.1.H,-37.6,145.1,3
2-PKM-vic-2.1.H,-37.8,144.9,1
2-PKM-vic-2.1.H,-37.7,145.0,2
`
)

func writeFixture(t *testing.T, overrides map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	tables := map[string]string{
		"stops.txt":      fixtureStops,
		"stop_times.txt": fixtureStopTimes,
		"shapes.txt":     fixtureShapes,
		"routes.txt":     fixtureRoutes,
	}
	for name, content := range overrides {
		tables[name] = content
	}
	for name, content := range tables {
		if content == "" {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadBuildsOrderedIndex(t *testing.T) {
	idx, err := Load(writeFixture(t, nil))
	require.NoError(t, err)

	st, err := idx.StopTimes("5.T3.2-PKM-vic-2.1.H")
	require.NoError(t, err)
	require.Len(t, st, 3)
	assert.Equal(t, []string{"S1", "S2", "S3"}, []string{st[0].StopID, st[1].StopID, st[2].StopID})
	assert.Equal(t, "08:00:00", st[0].Arrival.String())
	assert.Equal(t, "08:12:00", st[2].Arrival.String())

	pts := idx.Geometry("2-PKM-vic-2.1.H")
	require.Len(t, pts, 3)
	assert.Equal(t, Point{Lon: 144.9, Lat: -37.8}, pts[0])
	assert.Equal(t, Point{Lon: 145.1, Lat: -37.6}, pts[2])
}

func TestLoadPostMidnightArrival(t *testing.T) {
	idx, err := Load(writeFixture(t, nil))
	require.NoError(t, err)

	st, err := idx.StopTimes("6.T3.2-PKM-vic-2.1.H")
	require.NoError(t, err)
	assert.Equal(t, "25:10:00", st[0].Arrival.String())
	assert.Equal(t, 25*3600+10*60, st[0].Arrival.Seconds())
}

func TestLoadMissingTableIsFatal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stops.txt"), []byte(fixtureStops), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
}

func TestLoadMalformedValueIsFatal(t *testing.T) {
	bad := `trip_id,arrival_time,stop_id,stop_sequence
5.T3.2-PKM-vic-2.1.H,not-a-time,S1,1
`
	_, err := Load(writeFixture(t, map[string]string{"stop_times.txt": bad}))
	require.Error(t, err)
}

func TestLoadTruncatedRowIsFatal(t *testing.T) {
	// A row shorter than the header must come back as an error, not a panic.
	bad := `trip_id,arrival_time,stop_id,stop_sequence
5.T3.2-PKM-vic-2.1.H,08:00:00
`
	_, err := Load(writeFixture(t, map[string]string{"stop_times.txt": bad}))
	require.Error(t, err)
}

func TestLoadMissingColumnsIsFatal(t *testing.T) {
	bad := `trip_id,stop_id
5.T3.2-PKM-vic-2.1.H,S1
`
	_, err := Load(writeFixture(t, map[string]string{"stop_times.txt": bad}))
	require.Error(t, err)
}

func TestLoadMissingPathIsFatal(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

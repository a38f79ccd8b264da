package gtfs

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// The four tables the index is built from. A missing or malformed table is a
// startup error; the process must not begin serving without a complete index.
var requiredTables = []string{"stops.txt", "stop_times.txt", "shapes.txt", "routes.txt"}

// Load builds the schedule index from a GTFS dataset at path, which may be a
// zip archive or a directory of extracted .txt tables.
func Load(path string) (*Index, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("gtfs dataset: %w", err)
	}
	b := newBuilder()
	if info.IsDir() {
		err = b.consumeDir(path)
	} else {
		err = b.consumeZip(path)
	}
	if err != nil {
		return nil, err
	}
	return b.finish()
}

// builder accumulates raw rows with their sequence numbers, then sorts.
// Input row order is never trusted: the ordering invariant on stop sequences
// and shape polylines is enforced here, not assumed.
type builder struct {
	idx       *Index
	seen      map[string]bool
	tripRows  map[string][]stopTimeRow
	shapeRows map[string][]shapeRow
}

type stopTimeRow struct {
	seq int
	st  StopTime
}

type shapeRow struct {
	seq int
	pt  Point
}

func newBuilder() *builder {
	return &builder{
		idx: &Index{
			stops:         map[string]Stop{},
			tripStopTimes: map[string][]StopTime{},
			shapePoints:   map[string][]Point{},
		},
		seen:      map[string]bool{},
		tripRows:  map[string][]stopTimeRow{},
		shapeRows: map[string][]shapeRow{},
	}
}

func (b *builder) consumeDir(dir string) error {
	for _, name := range requiredTables {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("gtfs table %s: %w", name, err)
		}
		err = b.consumeCSV(name, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) consumeZip(path string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("gtfs archive: %w", err)
	}
	defer zr.Close()
	for _, f := range zr.File {
		name := strings.ToLower(filepath.Base(f.Name))
		if !isRequiredTable(name) {
			continue
		}
		r, err := f.Open()
		if err != nil {
			return fmt.Errorf("gtfs table %s: %w", name, err)
		}
		err = b.consumeCSV(name, r)
		r.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func isRequiredTable(name string) bool {
	for _, t := range requiredTables {
		if name == t {
			return true
		}
	}
	return false
}

func (b *builder) consumeCSV(name string, r io.Reader) error {
	// The default FieldsPerRecord check pins every row to the header's width,
	// so a truncated row fails here instead of indexing out of range below.
	csvr := csv.NewReader(r)
	rec, err := csvr.ReadAll()
	if err != nil {
		return fmt.Errorf("gtfs table %s: %w", name, err)
	}
	if len(rec) < 1 {
		return fmt.Errorf("gtfs table %s: empty", name)
	}
	b.seen[name] = true
	head := rec[0]
	col := func(name string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	switch name {
	case "stops.txt":
		id, nm, lat, lon := col("stop_id"), col("stop_name"), col("stop_lat"), col("stop_lon")
		if id < 0 || nm < 0 || lat < 0 || lon < 0 {
			return fmt.Errorf("gtfs table %s: missing required columns", name)
		}
		for _, row := range rec[1:] {
			la, err := strconv.ParseFloat(row[lat], 64)
			if err != nil {
				return fmt.Errorf("gtfs stop %s: bad stop_lat: %w", row[id], err)
			}
			lo, err := strconv.ParseFloat(row[lon], 64)
			if err != nil {
				return fmt.Errorf("gtfs stop %s: bad stop_lon: %w", row[id], err)
			}
			b.idx.stops[row[id]] = Stop{StopID: row[id], Name: row[nm], Lat: la, Lon: lo}
		}
	case "stop_times.txt":
		tid, arr, sid, seq := col("trip_id"), col("arrival_time"), col("stop_id"), col("stop_sequence")
		if tid < 0 || arr < 0 || sid < 0 || seq < 0 {
			return fmt.Errorf("gtfs table %s: missing required columns", name)
		}
		for _, row := range rec[1:] {
			t, err := ParseTimeOfDay(row[arr])
			if err != nil {
				return fmt.Errorf("gtfs trip %s: %w", row[tid], err)
			}
			n, err := strconv.Atoi(row[seq])
			if err != nil {
				return fmt.Errorf("gtfs trip %s: bad stop_sequence: %w", row[tid], err)
			}
			b.tripRows[row[tid]] = append(b.tripRows[row[tid]], stopTimeRow{
				seq: n,
				st:  StopTime{StopID: row[sid], Arrival: t},
			})
		}
	case "shapes.txt":
		sid, lat, lon, seq := col("shape_id"), col("shape_pt_lat"), col("shape_pt_lon"), col("shape_pt_sequence")
		if sid < 0 || lat < 0 || lon < 0 || seq < 0 {
			return fmt.Errorf("gtfs table %s: missing required columns", name)
		}
		for _, row := range rec[1:] {
			la, err := strconv.ParseFloat(row[lat], 64)
			if err != nil {
				return fmt.Errorf("gtfs shape %s: bad shape_pt_lat: %w", row[sid], err)
			}
			lo, err := strconv.ParseFloat(row[lon], 64)
			if err != nil {
				return fmt.Errorf("gtfs shape %s: bad shape_pt_lon: %w", row[sid], err)
			}
			n, err := strconv.Atoi(row[seq])
			if err != nil {
				return fmt.Errorf("gtfs shape %s: bad shape_pt_sequence: %w", row[sid], err)
			}
			b.shapeRows[row[sid]] = append(b.shapeRows[row[sid]], shapeRow{
				seq: n,
				pt:  Point{Lon: lo, Lat: la},
			})
		}
	case "routes.txt":
		rid, ln := col("route_id"), col("route_long_name")
		if rid < 0 || ln < 0 {
			return fmt.Errorf("gtfs table %s: missing required columns", name)
		}
		for _, row := range rec[1:] {
			b.idx.routes = append(b.idx.routes, Route{RouteID: row[rid], LongName: row[ln]})
		}
	}
	return nil
}

func (b *builder) finish() (*Index, error) {
	for _, name := range requiredTables {
		if !b.seen[name] {
			return nil, fmt.Errorf("gtfs table %s: not found in dataset", name)
		}
	}
	for tripID, rows := range b.tripRows {
		sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
		st := make([]StopTime, len(rows))
		for i, r := range rows {
			st[i] = r.st
		}
		b.idx.tripStopTimes[tripID] = st
	}
	for shapeID, rows := range b.shapeRows {
		sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
		pts := make([]Point, len(rows))
		for i, r := range rows {
			pts[i] = r.pt
		}
		b.idx.shapePoints[shapeID] = pts
	}
	return b.idx, nil
}

// Package gtfs loads the static GTFS schedule into an in-memory index.
//
// The index is built once at process startup from stops.txt, stop_times.txt,
// shapes.txt and routes.txt (zip archive or extracted directory) and is
// read-only for the process lifetime. All lookups rely on two ordering
// invariants enforced during load: a trip's calls are sorted by stop_sequence
// and a shape's polyline by shape_pt_sequence.
//
// Arrival times are kept as TimeOfDay values (seconds since midnight) because
// GTFS times past 24:00:00 describe post-midnight service and must not wrap.
package gtfs

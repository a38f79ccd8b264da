// Package feed owns the live side of the service: fetching and decoding the
// two GTFS-Realtime upstream feeds and publishing them as immutable snapshots.
//
// The Store is the single shared mutable resource in the process. Publishing
// is one atomic pointer replace; readers never lock and never observe a
// half-written snapshot. The Poller is the only writer and guards itself with
// a single-flight gate so overlapping cycles cannot publish out of order.
package feed

// Package metrolive serves the live geographic position and schedule
// adherence of metro trains. It combines a static schedule index built once
// at startup with a periodically refreshed snapshot of the upstream
// GTFS-Realtime feeds, and exposes both over HTTP plus a websocket stream.
package metrolive

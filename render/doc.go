// Package render turns position samples into frames for a map front end and
// writes them out as JSON lines, MessagePack or GTFS-realtime vehicle
// positions.
package render

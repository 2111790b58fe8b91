// Package taxiway builds taxi routes from a GeoJSON taxiway network.
//
// Every LineString vertex becomes a node and consecutive vertices become
// edges usable in both directions. Each path query runs Dijkstra from the
// start node and finished paths are cached.
package taxiway

// Package route holds the immutable taxi route a simulated aircraft follows.
//
// A Route is validated once when it is built and precomputes its cumulative
// great-circle distances, so that PointAt can be called every animation frame
// without allocating. Routes with fewer than two coordinates are legal; the
// simulator treats them as degenerate.
package route

// Package session runs navigation sessions. Each session owns a route, a
// frame clock and the goroutine that advances it.
package session

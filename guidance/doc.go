// Package guidance produces the turn-by-turn panel shown while following a
// taxi route: the surface the aircraft is on, the distance to the next
// maneuver and what comes after it.
package guidance

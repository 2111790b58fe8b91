// Package simulator advances a simulated aircraft along a taxi route.
//
// This package handles:
// - Translating (route, frame) into a position and heading (Simulator.Sample)
// - Owning the animation frame counter (Clock)
// - Driving the clock from a timer and delivering samples to a callback (Driver)
//
// Sample is a pure function: it performs no I/O, keeps no state between calls
// and does not allocate, so it can run inside a per-frame callback.
package simulator

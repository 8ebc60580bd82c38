// Package tui renders a running check as an interactive terminal UI.
//
// It is a thin consumer of the engine's event queue: a Bubble Tea model
// polls the queue on a fixed tick and folds the drained events into its
// view state. Pressing q requests a cooperative stop; the run's summary is
// shown before the program exits.
package tui

// Package progress keeps aggregated scheduler counters (processes created,
// terminated, instructions executed, rounds ...) and lets observers receive a
// copy after every change.
package progress

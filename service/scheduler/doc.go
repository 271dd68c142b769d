// Package scheduler implements a round-robin process scheduler.
//
// Ready processes wait in a FIFO queue. Each round pops the head, lets it run
// up to Quantum instructions and either retires it or appends it back at the
// tail. Frames are requested from Memory at creation and released on
// termination. The scheduler lock is never held while calling Memory or while
// instructions run.
package scheduler

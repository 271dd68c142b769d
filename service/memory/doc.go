// Package memory simulates physical memory as a fixed pool of fixed-size
// frames. Frames are handed to processes by pid and zeroed when granted or
// released. All operations are serialized by a single manager-wide lock.
package memory

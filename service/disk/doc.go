// Package disk implements the virtual disk: a single flat file holding one
// "name::content" entry per line, stored at any afs supported URL.
package disk

// Package program decodes declarative program definitions and builds their
// instruction sequences.
//
// A program is a YAML document:
//
//	name: writer
//	instructions:
//	  - op: system/memory.store
//	    args:
//	      frame: 0
//	      data: hola
//	  - op: printer.print
//	    args:
//	      message: done
//	    repeat: 3
package program

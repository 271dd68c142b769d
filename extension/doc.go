// Package extension holds the registry of instruction services. Programs
// refer to instructions as "service.method"; the registry converts the
// declared arguments into the method's typed input and binds the result to a
// process.Instruction.
package extension

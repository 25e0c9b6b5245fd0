// Package wire delimits frames on a byte stream.
//
// Every frame is preceded by its length as a big-endian uint32. TCP may
// split or coalesce writes, so a single Read never maps to a single
// message; ReadFrame reassembles exactly one frame per call.
//
// Frames larger than the caller's limit are rejected before any payload is
// read, which also catches a desynchronised stream early.
package wire

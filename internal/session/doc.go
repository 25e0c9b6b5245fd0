// Package session runs one half-duplex encrypted conversation over an
// established connection.
//
// A Session alternates strictly between a local turn (read a line, encrypt
// it, send one frame) and a remote turn (wait for one frame, decrypt it,
// print it). The client speaks first. A Monitor watches the connection and
// closes it once no message has been sent or received for the idle timeout.
// Every failure is terminal and is reported as one of the domain sentinel
// errors.
package session

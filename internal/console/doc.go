// Package console is the local side of a conversation: where the operator
// types and where the peer's messages appear.
package console

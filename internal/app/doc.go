// Package app wires application dependencies for the CLI.
//
// Config gathers options from defaults, an optional TOML or YAML file and
// command-line flags. NewWire builds the concrete stores and services from
// it, and App runs the server and client ends of a conversation on top.
package app

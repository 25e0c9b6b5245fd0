// Package commands defines the veilchat CLI and wires dependencies for subcommands.
//
// Commands
//
//   - keygen        Create the shared session key (random or from a seed)
//   - fingerprint   Print the key fingerprint for out-of-band comparison
//   - key export    Write the key to an encrypted transfer file
//   - key import    Store the key from a transfer file
//   - auth enroll   Enroll an authenticator app for operator verification
//   - serve         Wait for one client and chat with it
//   - connect       Verify the operator, connect to a server and chat
//
// # Implementation
//
// The root command merges defaults, the optional config file and flags,
// builds the logger and the dependency graph before any subcommand runs,
// and cancels the command context on SIGINT or SIGTERM.
package commands

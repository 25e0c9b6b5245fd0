// Package auth verifies the local operator before a client session may
// connect.
//
// An Authenticator answers "is the person at the keyboard allowed to use
// this key". The Gate runs one within a time bound and turns its outcome
// into domain.ErrAuthFailed or domain.ErrAuthExpired.
package auth

// Package cli provides the interactive userkeeper command-line client.
//
// It wires configuration, the HTTP API client and a small REPL. Typical
// flow: log in with email and password, list users, then add, update or
// delete records.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or stdin is closed. See runREPL for the command set.
package cli

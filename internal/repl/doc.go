// Package repl provides the interactive csvdb shell.
//
// It wires configuration, logging, on-disk storage, the account service and
// the command interpreter, then runs a read–eval–print loop over stdin.
//
// Shell commands handled here:
//   - help           — show available commands
//   - register       — create an account
//   - logout         — end the session
//   - exit | quit    — leave the program
//
// Every other line is passed to the query interpreter (login, show, create,
// open, drop, insert, delete, select) and its result is printed.
//
// The shell is started via App.Run(ctx), which blocks until the user exits,
// stdin is exhausted or ctx is cancelled.
package repl

// Package query parses the csvdb command language and executes commands
// against the authenticated session.
//
// An Interpreter owns one session: the logged-in account and the database
// currently open. Every input line yields exactly one human-readable result
// string; no command failure ends the session.
package query

package repl

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

const helpText = `Shell commands: help, register, logout, exit | quit
Queries:
  login
  show
  create <database>
  open <database>
  drop <table | database>
  create table <name> (attr1, attr2, ...)
  insert into <table> (value1, value2, ...)
  delete from <table> id:<value>
  select from <table> [limit] [last]`

// execIface is the command surface the loop drives. App satisfies it; tests
// provide a stub.
type execIface interface {
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Execute(ctx context.Context, line string) string
}

// runREPL reads lines from reader until EOF, exit/quit or ctx cancellation.
// Shell commands are handled here, everything else goes to Execute and the
// result is printed. Handler errors are reported and the loop continues.
//
// The loop shares reader with the credential prompts, so it must not buffer
// beyond the current line.
func runREPL(ctx context.Context, a execIface, prompt func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printFn(prompt())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			printlnFn()
			return
		}
		line = strings.TrimRight(line, "\r\n")

		switch shellCommand(line) {
		case "help":
			printlnFn(helpText)

		case "register":
			if err := a.Register(ctx); err != nil {
				printlnFn("Registration failed:", err)
			}

		case "logout":
			if err := a.Logout(ctx); err != nil {
				printlnFn("Logout failed:", err)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn(a.Execute(ctx, line))
		}
	}
}

// shellCommand returns the lower-cased line when it is a single word, so
// "EXIT;" and "exit" match the same case.
func shellCommand(line string) string {
	line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ";"))
	if strings.ContainsAny(line, " \t(") {
		return ""
	}
	return strings.ToLower(line)
}

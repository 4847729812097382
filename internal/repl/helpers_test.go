package repl

import (
	"fmt"
	"strings"
	"testing"
)

// captureOutput swaps the print seams for the duration of the test and
// returns the collected println lines.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	origPrintln, origPrint := printlnFn, printFn

	var lines []string
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	printFn = func(...any) (int, error) { return 0, nil }

	t.Cleanup(func() { printlnFn, printFn = origPrintln, origPrint })
	return &lines
}

// Command dialect converts text between American and British English.
//
// Usage:
//
//	dialect translate [--locale=<locale> | --from=<tag> --to=<tag>] [--highlight] [--html] [--json] [file...]
//	dialect serve [--config=<path>]
//	dialect tables validate [path|url]
//	dialect tables dump [path|url]
//	dialect cache export <file>
//	dialect cache import <file>
//	dialect version
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

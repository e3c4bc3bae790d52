// Command uwuc is the uwu compiler driver: compile, repl, and version
// subcommands over the internal/pipeline entry point.
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "compile":
		os.Exit(runCompile(os.Args[2:]))
	case "repl":
		runREPL()
	case "version":
		fmt.Println("uwuc " + version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "uwuc: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  uwuc compile [<glob>] [--watch]
  uwuc repl
  uwuc version`)
}

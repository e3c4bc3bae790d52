package main

import (
	"os"

	"github.com/uwu-lang/uwuc/internal/repl"
)

func runREPL() {
	repl.New(os.Stdout).Run()
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/uwu-lang/uwuc/internal/config"
	"github.com/uwu-lang/uwuc/internal/pipeline"
)

// runCompile implements `uwuc compile [<glob>] [--watch]` and returns
// the process exit code: 0 if every matched unit compiled cleanly.
func runCompile(args []string) int {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	watch := fs.Bool("watch", false, "re-compile changed files")
	fs.Parse(args)

	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "uwuc: reading uwuc.yaml: %v\n", err)
		return 1
	}

	glob := cfg.Glob
	if fs.NArg() > 0 {
		glob = fs.Arg(0)
	}

	diag := newDiagnostics(cfg)

	paths, err := matchGlob(glob)
	if err != nil {
		fmt.Fprintf(os.Stderr, "uwuc: %v\n", err)
		return 1
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "uwuc: no files matched %q\n", glob)
		return 1
	}

	ok := compileAll(paths, cfg, diag)

	if *watch {
		watchAndRecompile(paths, cfg, diag)
		return 0
	}

	if !ok {
		return 1
	}
	return 0
}

// compileAll compiles every path independently (one fresh Counter per
// unit, per SPEC_FULL.md §5) and reports whether all units succeeded.
func compileAll(paths []string, cfg config.Config, diag *diagnostics) bool {
	ok := true
	for _, p := range paths {
		if !compileOne(p, cfg, diag) {
			ok = false
		}
	}
	return ok
}

func compileOne(path string, cfg config.Config, diag *diagnostics) bool {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "uwuc: %v\n", err)
		return false
	}

	res := pipeline.Run(pipeline.Config{Mode: pipeline.ModeEmit}, pipeline.Source{
		Code:     string(src),
		Filename: path,
	})

	for _, w := range res.Warnings {
		diag.warn(w)
	}
	if res.Failed() {
		for _, e := range res.Errors {
			diag.err(e)
		}
		return false
	}

	out := path + cfg.OutExt
	js := res.JS
	if cfg.TrailingNL && (len(js) == 0 || js[len(js)-1] != '\n') {
		js += "\n"
	}
	if err := os.WriteFile(out, []byte(js), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "uwuc: writing %s: %v\n", out, err)
		return false
	}
	return true
}

func matchGlob(pattern string) ([]string, error) {
	if !containsDoubleStar(pattern) {
		return filepath.Glob(pattern)
	}
	// filepath.Glob has no "**" support; walk from the pattern's fixed
	// prefix (the part before "**") and match the pattern's last element
	// against each file's base name.
	suffix := filepath.Base(pattern)
	root := "."
	if i := strings.Index(pattern, "**"); i > 0 {
		root = filepath.Clean(pattern[:i])
	}
	var out []string
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if matched, _ := filepath.Match(suffix, filepath.Base(p)); matched {
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

func containsDoubleStar(pattern string) bool {
	for i := 0; i+1 < len(pattern); i++ {
		if pattern[i] == '*' && pattern[i+1] == '*' {
			return true
		}
	}
	return false
}

// watchAndRecompile re-runs compileOne for a changed path, one
// synchronous compilation at a time; it never starts a second
// compilation before the first's types.Counter has gone out of
// scope.
func watchAndRecompile(paths []string, cfg config.Config, diag *diagnostics) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "uwuc: watch: %v\n", err)
		return
	}
	defer w.Close()

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			fmt.Fprintf(os.Stderr, "uwuc: watch: %v\n", err)
		}
	}
	fmt.Fprintln(os.Stderr, "uwuc: watching for changes, ctrl-c to stop")

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			compileOne(ev.Name, cfg, diag)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "uwuc: watch: %v\n", err)
		}
	}
}

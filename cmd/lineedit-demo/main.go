// Command lineedit-demo is a small REPL that exercises the lineedit
// library end to end: it loads a layered config, wires user key
// bindings on top of the defaults, and echoes back whatever line the
// user enters until the session is terminated.
package main

import (
	"fmt"
	"os"

	"lineedit"
	"lineedit/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "lineedit-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ed := lineedit.New()

	if cfg.History.File != "" {
		if err := ed.SetHistoryWithFile(cfg.History.MaxLines, cfg.History.File); err != nil {
			return fmt.Errorf("set history: %w", err)
		}
	} else {
		ed.SetHistory(cfg.History.MaxLines)
	}

	if len(cfg.Bindings) > 0 {
		bindings, err := resolveBindings(cfg.Bindings)
		if err != nil {
			return fmt.Errorf("resolve bindings: %w", err)
		}
		ed.SetKeyBindings(bindings)
	}

	for {
		line, ok := ed.Read("lineedit>")
		if !ok {
			return nil
		}
		fmt.Printf("you said: %s\n", line)
	}
}

// resolveBindings converts the host's on-disk binding config into the
// library's Binding type, layering the user's entries on top of the
// library defaults so an unconfigured command keeps behaving as
// before.
func resolveBindings(entries []config.BindingEntry) ([]lineedit.Binding, error) {
	resolved, err := config.DecodeBindings(entries, func(name string) (int, bool) {
		id, ok := lineedit.ParseCommandID(name)
		return int(id), ok
	})
	if err != nil {
		return nil, err
	}

	out := append([]lineedit.Binding(nil), lineedit.DefaultBindings()...)
	for _, r := range resolved {
		out = append(out, lineedit.Binding{
			Sequence: r.Sequence,
			Command:  lineedit.CommandID(r.Command),
		})
	}
	return out, nil
}

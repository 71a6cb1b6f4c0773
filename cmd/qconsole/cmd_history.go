package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/pretty"
	"golang.org/x/term"

	"github.com/sadopc/qconsole/internal/core/history"
	"github.com/sadopc/qconsole/internal/runner"
)

// historyCmd returns the process exit code so the store is closed first.
func historyCmd() int {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limitFlag := fs.Int("n", 20, "Number of entries to list (0 for all)")
	outputFlag := fs.String("output", "", "Export destination file (default stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qconsole history [list|search <query>|clear|export] [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	args := os.Args[2:]
	sub := "list"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	s, err := loadSession("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	store, err := s.openHistory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	defer store.Close()

	ctx := context.Background()
	color := term.IsTerminal(int(os.Stdout.Fd()))

	switch sub {
	case "list":
		entries, err := store.Read(ctx)
		if err != nil {
			return fail(err)
		}
		runner.PrintHistory(os.Stdout, history.Latest(entries, *limitFlag), color)

	case "search":
		if fs.NArg() < 1 {
			fmt.Fprintf(os.Stderr, "Error: search query is required\n\n")
			fs.Usage()
			return 2
		}
		entries, err := store.Read(ctx)
		if err != nil {
			return fail(err)
		}
		runner.PrintHistory(os.Stdout, history.Search(entries, strings.Join(fs.Args(), " ")), color)

	case "clear":
		if err := store.Write(ctx, nil); err != nil {
			return fail(err)
		}
		fmt.Fprintln(os.Stderr, "History cleared.")

	case "export":
		entries, err := store.Read(ctx)
		if err != nil {
			return fail(err)
		}
		data, err := json.Marshal(entries)
		if err != nil {
			return fail(err)
		}
		data = pretty.Pretty(data)
		if *outputFlag == "" {
			os.Stdout.Write(data)
			return 0
		}
		if err := os.WriteFile(*outputFlag, data, 0644); err != nil {
			return fail(err)
		}
		fmt.Fprintf(os.Stderr, "Exported %d entries to %s\n", len(entries), *outputFlag)

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown history command %q\n\n", sub)
		fs.Usage()
		return 2
	}
	return 0
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/sadopc/qconsole/internal/core/environment"
	httpclient "github.com/sadopc/qconsole/internal/protocol/http"
	"github.com/sadopc/qconsole/internal/runner"
)

// runCmd returns the process exit code so deferred cleanup runs first.
func runCmd() int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fileFlag := fs.String("file", "", "Read the snippet from a file instead of stdin")
	envFlag := fs.String("env", "", "Connection name from connections.yaml")
	copyFlag := fs.Bool("copy", false, "Copy the response payload to the clipboard")
	rawFlag := fs.Bool("raw", false, "Print the result as JSON without decoration")
	verboseFlag := fs.Bool("verbose", false, "Show timing details")
	timeoutFlag := fs.Duration("timeout", 0, "Request timeout (defaults to the configured timeout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qconsole run [flags] [snippet]\n\n")
		fmt.Fprintf(os.Stderr, "Send a request snippet. The snippet comes from the argument, --file, or stdin.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  qconsole run 'GET /collections'\n")
		fmt.Fprintf(os.Stderr, "  qconsole run --file create.txt --env staging\n")
		fmt.Fprintf(os.Stderr, "  echo 'GET /cluster' | qconsole run --raw\n")
		fmt.Fprintf(os.Stderr, "\nExit codes:\n")
		fmt.Fprintf(os.Stderr, "  0  A response was received\n")
		fmt.Fprintf(os.Stderr, "  1  The snippet could not be parsed\n")
		fmt.Fprintf(os.Stderr, "  2  No response was received\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		return 2
	}

	text, err := readSnippet(*fileFlag, fs.Arg(0), os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	s, err := loadSession(*envFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	tlsCfg, err := s.tlsConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	store, err := s.openHistory()
	if err != nil {
		// Requests still go out; only recording is lost.
		s.log.Error().Err(err).Msg("opening history")
	} else {
		defer store.Close()
	}

	timeout := s.cfg.DefaultTimeout
	if *timeoutFlag > 0 {
		timeout = *timeoutFlag
	}

	client := httpclient.New()
	client.SetTimeout(timeout)
	client.SetProxy(s.cfg.Proxy, s.cfg.NoProxy)
	client.SetTLS(tlsCfg)

	ex := runner.New(runner.Config{
		BaseURL: s.conn.URL,
		APIKey:  s.conn.APIKey,
		Timeout: timeout,
		Format:  s.entryFormat(),
	}, client, store, runner.WithLogger(s.log), runner.WithClock(time.Now))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	result := ex.Execute(ctx, environment.Resolve(text, s.conn.Variables))

	if *rawFlag {
		if err := runner.PrintJSON(os.Stdout, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			return 2
		}
	} else {
		runner.PrintText(os.Stdout, result, runner.PrintOptions{
			Color:   term.IsTerminal(int(os.Stdout.Fd())),
			Verbose: *verboseFlag,
		})
	}

	if *copyFlag && result.Kind == runner.ResultOK {
		if err := clipboard.WriteAll(string(result.Payload)); err != nil {
			s.log.Warn().Err(err).Msg("copying payload to clipboard")
		}
	}

	return runner.ExitCode(result)
}

// readSnippet takes the snippet from a file, the positional argument, or stdin,
// in that order.
func readSnippet(path, arg string, stdin io.Reader) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading snippet: %w", err)
		}
		return string(data), nil
	}
	if arg != "" {
		return arg, nil
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("no snippet given; pass one as an argument, with --file, or on stdin")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tidwall/pretty"

	"github.com/sadopc/qconsole/internal/core/environment"
	"github.com/sadopc/qconsole/internal/dsl"
	"github.com/sadopc/qconsole/internal/export"
	"github.com/sadopc/qconsole/internal/runner"
)

func parseCmd() {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	fileFlag := fs.String("file", "", "Read the snippet from a file instead of stdin")
	curlFlag := fs.Bool("curl", false, "Print the request as a curl command instead")
	envFlag := fs.String("env", "", "Connection name used to build the curl command")
	showKeyFlag := fs.Bool("show-key", false, "Include the api key in the curl command")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qconsole parse [flags] [snippet]\n\n")
		fmt.Fprintf(os.Stderr, "Print the descriptor for a snippet without sending it.\n")
		fmt.Fprintf(os.Stderr, "Exits 1 when the snippet carries an error.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	text, err := readSnippet(*fileFlag, fs.Arg(0), os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if *curlFlag {
		s, err := loadSession(*envFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		ex := runner.New(runner.Config{BaseURL: s.conn.URL, APIKey: s.conn.APIKey}, nil, nil)
		req, _, err := ex.Prepare(environment.Resolve(text, s.conn.Variables))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(export.AsCurl(req, export.CurlOptions{MaskSecrets: !*showKeyFlag}))
		return
	}

	d := dsl.Parse(text)
	data, err := d.MarshalJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	os.Stdout.Write(pretty.Pretty(data))

	if d.Err() != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"

	httpclient "github.com/sadopc/qconsole/internal/protocol/http"
	"github.com/sadopc/qconsole/internal/snapshot"
)

// snapshotCmd returns the process exit code so deferred cleanup runs first.
func snapshotCmd() int {
	fs := flag.NewFlagSet("snapshot download", flag.ExitOnError)
	envFlag := fs.String("env", "", "Connection name from connections.yaml")
	sizeFlag := fs.Int64("size", 0, "Snapshot size in bytes, as listed by the server")
	outFlag := fs.String("out", "", "Output file (defaults to the snapshot name)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qconsole snapshot download <collection> <name> [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if len(os.Args) < 3 || os.Args[2] != "download" {
		fs.Usage()
		return 2
	}
	if err := fs.Parse(os.Args[3:]); err != nil {
		return 2
	}
	if fs.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Error: collection and snapshot name are required\n\n")
		fs.Usage()
		return 2
	}
	collection, name := fs.Arg(0), fs.Arg(1)

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
	hc := httpclient.New()
	hc.SetProxy(s.cfg.Proxy, s.cfg.NoProxy)
	hc.SetTLS(tlsCfg)
	client, err := hc.StreamingClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	out := *outFlag
	if out == "" {
		out = name
	}
	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	defer f.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	n, err := snapshot.Download(ctx, client, snapshot.Options{
		BaseURL:    s.conn.URL,
		APIKey:     s.conn.APIKey,
		Collection: collection,
		Name:       name,
		Size:       *sizeFlag,
	}, f, func(p snapshot.Progress) {
		if p.Total > 0 {
			fmt.Fprintf(os.Stderr, "\r%s / %s (%d%%)", humanize.IBytes(uint64(p.Loaded)), humanize.IBytes(uint64(p.Total)), p.Percent)
		} else {
			fmt.Fprintf(os.Stderr, "\r%s", humanize.IBytes(uint64(p.Loaded)))
		}
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		s.log.Error().Err(err).Str("collection", collection).Str("snapshot", name).Msg("download failed")
		f.Close()
		os.Remove(out)
		return 1
	}
	s.log.Info().Str("file", out).Str("size", humanize.IBytes(uint64(n))).Msg("snapshot downloaded")
	return 0
}

// Command ticketrender renders ticket records from JSON files into PNG or
// PDF artifacts.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/youruser/ticketrender/internal/qr"
	"github.com/youruser/ticketrender/internal/render"
	"github.com/youruser/ticketrender/internal/ticket"
	"github.com/youruser/ticketrender/internal/util"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "ticketrender:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stderr io.Writer) error {
	flags := pflag.NewFlagSet("ticketrender", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	in := flags.StringP("in", "i", "-", "ticket JSON file, - for stdin")
	format := flags.StringP("format", "f", "png", "output format: png or pdf")
	tpl := flags.StringP("template", "t", "A", "ticket template: A or B")
	outDir := flags.StringP("out-dir", "o", ".", "directory for the rendered artifact")
	qrURL := flags.String("qr-url", "", "ticket service base URL; QR codes are generated locally when empty")
	logoPath := flags.String("logo", "", "logo image path; the bundled logo is used when empty")
	brand := flags.String("brand", "Ticketing", "brand name in the footer")
	qrTimeout := flags.Duration("qr-timeout", render.DefaultQRTimeout, "QR fetch timeout")
	verbose := flags.BoolP("verbose", "v", false, "debug logging")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	t, err := render.ParseTemplate(*tpl)
	if err != nil {
		return err
	}
	f, err := render.ParseFormat(*format)
	if err != nil {
		return err
	}
	rec, err := readRecord(*in, stdin)
	if err != nil {
		return err
	}

	var fetcher qr.Fetcher = qr.LocalFetcher{Size: qr.DefaultSize}
	if *qrURL != "" {
		fetcher = qr.NewHTTPFetcher(*qrURL, util.DefaultClient)
	}
	r := render.New(render.LogoFrom(*logoPath, "", nil), fetcher,
		render.WithLogger(log),
		render.WithBrand(*brand),
		render.WithQRTimeout(*qrTimeout),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	a, err := r.Render(ctx, rec, t, f)
	if err != nil {
		return err
	}
	path, err := util.WriteFile(*outDir, a.Filename(rec), a.Bytes)
	if err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	log.Info("ticket written", "path", path, "bytes", len(a.Bytes))
	return nil
}

func readRecord(path string, stdin io.Reader) (*ticket.Record, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var rec ticket.Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("read ticket record: %w", err)
	}
	return &rec, nil
}

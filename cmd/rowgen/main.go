package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"inspectgrid/internal/export"
	"inspectgrid/internal/model"
	"inspectgrid/internal/source"
)

// rowgen writes synthetic inspection records, either all at once or as a
// stream appended to a file that inspectgrid --follow can watch.
func main() {
	var (
		format      string
		outPath     string
		rate        float64
		count       int
		start       int
		seed        int64
		durationStr string
	)
	flag.StringVar(&format, "format", "ndjson", "Output format: csv or ndjson")
	flag.StringVar(&outPath, "out", "", "Append to this file instead of writing to stdout")
	flag.Float64Var(&rate, "rate", 0, "Rows per second; 0 writes --count rows at once")
	flag.IntVar(&count, "count", 100, "Rows to write; 0 with --rate means until interrupted")
	flag.IntVar(&start, "start", 1, "First record number; reusing numbers updates earlier rows")
	flag.Int64Var(&seed, "seed", 0, "Random seed (0 = time based)")
	flag.StringVar(&durationStr, "duration", "", "Optional run duration (e.g., 30s, 2m)")
	flag.Parse()

	format = strings.ToLower(format)
	if format != "csv" && format != "ndjson" {
		fmt.Fprintf(os.Stderr, "unsupported format: %s\n", format)
		os.Exit(2)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if durationStr != "" {
		d, err := time.ParseDuration(durationStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid duration: %v\n", err)
			os.Exit(2)
		}
		var stop context.CancelFunc
		ctx, stop = context.WithTimeout(ctx, d)
		defer stop()
	}

	var w io.Writer = os.Stdout
	fresh := true
	if outPath != "" {
		f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if st, err := f.Stat(); err == nil && st.Size() > 0 {
			fresh = false
		}
		w = f
	}
	g := &generator{
		w:      w,
		format: format,
		cols:   source.DemoColumns(),
		rng:    rand.New(rand.NewSource(seed)),
		next:   start,
	}
	if fresh && format == "csv" {
		if err := export.WriteCSV(w, g.cols, nil); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	var err error
	if rate <= 0 {
		err = g.batch(count)
	} else {
		fmt.Fprintf(os.Stderr, "generating %s rows -> %s at %.2f rows/s\n", format, describe(outPath), rate)
		err = g.stream(ctx, rate, count)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type generator struct {
	w      io.Writer
	format string
	cols   []model.Column
	rng    *rand.Rand
	next   int
}

func (g *generator) rows(n int) []model.Row {
	out := make([]model.Row, n)
	for i := range out {
		out[i] = source.DemoRow(g.rng, g.next)
		g.next++
	}
	return out
}

func (g *generator) write(rows []model.Row) error {
	if g.format == "csv" {
		return export.WriteCSVRows(g.w, g.cols, rows)
	}
	return export.WriteNDJSON(g.w, g.cols, rows)
}

func (g *generator) batch(n int) error {
	bw := bufio.NewWriter(g.w)
	g.w = bw
	if err := g.write(g.rows(n)); err != nil {
		return err
	}
	return bw.Flush()
}

// stream writes one row per tick until count rows, ctx done or error.
func (g *generator) stream(ctx context.Context, rate float64, count int) error {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / rate))
	defer ticker.Stop()
	for written := 0; count == 0 || written < count; written++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if err := g.write(g.rows(1)); err != nil {
			return err
		}
	}
	return nil
}

func describe(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}

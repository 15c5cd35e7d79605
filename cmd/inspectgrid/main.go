package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap/zapcore"

	"inspectgrid/internal/config"
	"inspectgrid/internal/export"
	"inspectgrid/internal/ui"
	"inspectgrid/internal/util/logx"
	"inspectgrid/internal/version"
)

func main() {
	logx.SetLevelFromEnv()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Println("inspectgrid", version.String())
		return
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "log file:", err)
			os.Exit(1)
		}
		defer f.Close()
		logx.AddOutput(zapcore.AddSync(f))
	}
	defer logx.Sync()

	// Setup cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logx.Infof("starting inspectgrid %s: %s", version.String(), cfg.String())
	if cfg.ExportFormat != "" {
		if err := exportAndExit(cfg); err != nil {
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(1)
		}
		return
	}
	if err := ui.Run(ctx, cfg); err != nil {
		logx.Errorf("inspectgrid exited with error: %v", err)
		os.Exit(1)
	}
}

// exportAndExit writes the loaded rows without starting the UI.
func exportAndExit(cfg *config.Config) error {
	ds, origin, err := ui.LoadDataset(cfg)
	if err != nil {
		return err
	}
	logx.Infof("export: %d rows (columns from %s) -> %s", len(ds.Rows), origin, cfg.ExportOut)
	if cfg.ExportFormat == "ndjson" {
		return export.ToNDJSON(cfg.ExportOut, ds.Columns, ds.Rows)
	}
	return export.ToCSV(cfg.ExportOut, ds.Columns, ds.Rows)
}

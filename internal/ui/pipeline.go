package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"inspectgrid/internal/ai"
	"inspectgrid/internal/config"
	"inspectgrid/internal/model"
	"inspectgrid/internal/source"
	"inspectgrid/internal/util/logx"
)

const aiSampleRows = 30

// LoadDataset reads the configured data file with the best columns known
// up front (columns file, then cache, else inference), or generates demo
// rows when no file is set. It also returns where the columns came from.
func LoadDataset(cfg *config.Config) (source.Dataset, string, error) {
	if strings.TrimSpace(cfg.FilePath) == "" {
		logx.Infof("source: no file given, generating %d demo rows", cfg.DemoRows)
		return source.Demo(cfg.DemoRows), "demo", nil
	}
	cols, origin, err := resolveColumns(cfg)
	if err != nil {
		return source.Dataset{}, "", err
	}
	ds, err := source.Load(cfg.FilePath, cols)
	if err != nil {
		return source.Dataset{}, "", err
	}
	return ds, origin, nil
}

func resolveColumns(cfg *config.Config) ([]model.Column, string, error) {
	if cfg.ColumnsPath != "" {
		cols, err := source.LoadColumns(cfg.ColumnsPath)
		if err != nil {
			return nil, "", err
		}
		return cols, "columns file", nil
	}
	if cols, ok := cachedColumns(cfg); ok {
		logx.Infof("detect: using cached columns for %s", cfg.FilePath)
		return cols, "cache", nil
	}
	return nil, "heuristics", nil
}

func loadCmd(cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		ds, origin, err := LoadDataset(cfg)
		if err != nil {
			return loadErrMsg{err: err}
		}
		return loadedMsg{ds: ds, origin: origin}
	}
}

// wantsRefine reports whether inferred columns should be sent to OpenAI.
func wantsRefine(cfg *config.Config, origin string) bool {
	return origin == "heuristics" && !cfg.Offline && cfg.OpenAIKey() != "" && cfg.FilePath != ""
}

// refineCmd asks OpenAI for better labels and types, then re-reads the
// file so values are parsed with the refined types.
func refineCmd(ctx context.Context, cfg *config.Config, ds source.Dataset) tea.Cmd {
	return func() tea.Msg {
		client := ai.NewOpenAIClient(cfg.OpenAIKey(), cfg.OpenAIBase, cfg.OpenAIModel, time.Duration(cfg.OpenAITimeoutSec)*time.Second)
		cols, err := client.InferColumns(ctx, ds.Columns, sampleOf(ds, aiSampleRows))
		if err != nil {
			return columnsMsg{err: err}
		}
		refined, err := source.Load(cfg.FilePath, cols)
		if err != nil {
			return columnsMsg{err: err}
		}
		cacheColumns(cfg, refined.Columns)
		return columnsMsg{ds: refined}
	}
}

func sampleOf(ds source.Dataset, n int) []map[string]string {
	n = min(n, len(ds.Rows))
	out := make([]map[string]string, 0, n)
	for _, r := range ds.Rows[:n] {
		m := make(map[string]string, len(r.Fields))
		for k, v := range r.Fields {
			m[k] = v.String()
		}
		out = append(out, m)
	}
	return out
}

// startFollow tails the data file; every snapshot replaces the row set.
func (m *Model) startFollow() tea.Cmd {
	if m.followCancel != nil {
		m.followCancel()
	}
	cols, origin, err := resolveColumns(m.cfg)
	if err != nil {
		return func() tea.Msg { return loadErrMsg{err: err} }
	}
	m.origin = origin
	ctx, cancel := context.WithCancel(m.ctx)
	m.followCancel = cancel
	m.followRows, m.followErrs = source.Follow(ctx, m.cfg.FilePath, source.FollowOptions{Columns: cols})
	logx.Infof("source: following %s (columns from %s)", m.cfg.FilePath, origin)
	return waitFollow(m.followRows, m.followErrs)
}

func waitFollow(rows <-chan source.Dataset, errs <-chan error) tea.Cmd {
	return func() tea.Msg {
		select {
		case ds, ok := <-rows:
			if !ok {
				return followDoneMsg{}
			}
			return followMsg{ds: ds}
		case err, ok := <-errs:
			if !ok {
				return followErrMsg{closed: true}
			}
			return followErrMsg{err: err}
		}
	}
}

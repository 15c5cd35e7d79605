package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"inspectgrid/internal/config"
	"inspectgrid/internal/model"
	"inspectgrid/internal/nav"
	"inspectgrid/internal/store"
	"inspectgrid/internal/util/logx"
	"inspectgrid/internal/window"
)

func initialModel(ctx context.Context, cfg *config.Config) *Model {
	m := &Model{
		ctx:     ctx,
		cfg:     cfg,
		mode:    modeGrid,
		styles:  NewStyles(cfg.Theme == config.ThemeDark),
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		spin:    spinner.New(),
		input:   textinput.New(),
		loading: true,
		source:  "demo",
	}
	if cfg.FilePath != "" {
		m.source = cfg.FilePath
	}
	m.spin.Spinner = spinner.Dot
	m.input.CharLimit = 1024
	m.modalVP = viewport.New(80, 20)

	m.store = store.New(nil, nil, store.Options{
		HistoryDepth: cfg.HistoryDepth,
		PageSize:     cfg.PageSize,
		Virtualized:  cfg.Virtualized,
		Metrics:      window.CellMetrics(),
	})
	m.nav = nav.New(m.store, m.store.Window(), nil)
	m.unsub = m.store.Subscribe(store.ListenerFuncs{
		CellEdit: func(e model.CellEdit) {
			logx.Debugf("ui: cell %s/%s changed", e.RowID, e.ColumnID)
		},
		RowSelect: func(ids []string) {
			m.lastMsg = fmt.Sprintf("%d rows selected", len(ids))
		},
		Sort: func(keys []model.SortKey) {
			m.lastMsg = "sort: " + describeSort(keys)
		},
		Filter: func(filters []model.FilterCondition) {
			m.lastMsg = fmt.Sprintf("%d filters active", len(filters))
		},
	})
	return m
}

func Run(ctx context.Context, cfg *config.Config) error {
	m := initialModel(ctx, cfg)
	defer m.close()
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	if m.cfg.Follow {
		return tea.Batch(m.spin.Tick, m.startFollow())
	}
	return tea.Batch(m.spin.Tick, loadCmd(m.cfg))
}

func (m *Model) close() {
	if m.followCancel != nil {
		m.followCancel()
	}
	if m.unsub != nil {
		m.unsub()
	}
}

package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"inspectgrid/internal/export"
	"inspectgrid/internal/model"
	"inspectgrid/internal/nav"
	"inspectgrid/internal/util/logx"
)

// chrome is the rows taken by the title, status and footer lines.
const chrome = 3

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		m.resize()
		return m, nil
	case spinner.TickMsg:
		if !m.loading && !m.netBusy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case loadedMsg:
		m.loading = false
		m.origin = msg.origin
		m.store.Load(msg.ds.Rows, msg.ds.Columns)
		m.nav.Sync()
		m.lastMsg = fmt.Sprintf("loaded %d rows (columns: %s)", len(msg.ds.Rows), msg.origin)
		if wantsRefine(m.cfg, msg.origin) {
			m.netBusy = true
			logx.Infof("openai: refining %d columns", len(msg.ds.Columns))
			return m, tea.Batch(m.spin.Tick, refineCmd(m.ctx, m.cfg, msg.ds))
		}
		return m, nil
	case loadErrMsg:
		m.loading = false
		m.lastMsg = "load failed: " + msg.err.Error()
		logx.Errorf("source: %v", msg.err)
		return m, nil
	case columnsMsg:
		m.netBusy = false
		if msg.err != nil {
			m.lastMsg = "OpenAI failed; keeping inferred columns"
			logx.Warnf("openai: failed to infer columns: %v", msg.err)
			return m, nil
		}
		m.origin = "openai"
		m.store.Load(msg.ds.Rows, msg.ds.Columns)
		m.nav.Sync()
		m.lastMsg = "columns refined by OpenAI"
		return m, nil
	case followMsg:
		m.loading = false
		m.store.Load(msg.ds.Rows, msg.ds.Columns)
		m.nav.Sync()
		return m, waitFollow(m.followRows, m.followErrs)
	case followErrMsg:
		if msg.closed {
			m.followErrs = nil
		} else {
			logx.Warnf("source: follow: %v", msg.err)
		}
		return m, waitFollow(m.followRows, m.followErrs)
	case followDoneMsg:
		m.loading = false
		m.lastMsg = "follow stopped"
		logx.Infof("source: follow of %s ended", m.cfg.FilePath)
		return m, nil
	case toastMsg:
		m.lastMsg = msg.text
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) resize() {
	m.store.Window().Resize(m.termWidth-2, max(m.termHeight-chrome, 1))
	m.nav.Sync()
	m.input.Width = max(m.termWidth-20, 10)
	m.modalVP.Width = max(m.termWidth*3/4, 20)
	m.modalVP.Height = max(m.termHeight*2/3, 5)
	m.help.Width = m.termWidth
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeEdit:
		return m.handleEditKey(msg)
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeFilter:
		return m.handleFilterKey(msg)
	case modeHelp, modeLogs:
		return m.handleModalKey(msg)
	}
	k := m.keymap
	switch {
	case key.Matches(msg, k.Quit):
		m.flushEdits()
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.openModal(modeHelp)
		return m, nil
	case key.Matches(msg, k.AppLogs):
		m.openModal(modeLogs)
		return m, nil
	case key.Matches(msg, k.Undo):
		if !m.store.Undo() {
			m.lastMsg = "nothing to undo"
		}
		m.nav.Sync()
		return m, nil
	case key.Matches(msg, k.Redo):
		if !m.store.Redo() {
			m.lastMsg = "nothing to redo"
		}
		m.nav.Sync()
		return m, nil
	case key.Matches(msg, k.Search):
		m.prevSearch = m.searchText
		m.beginInput(modeSearch, "search: ", m.searchText, "text, \"word\" or /regex/")
		return m, nil
	case key.Matches(msg, k.Filter):
		col, ok := m.activeColumn()
		if !ok {
			m.lastMsg = "select a cell to filter its column"
			return m, nil
		}
		m.filterCol = col
		m.beginInput(modeFilter, "filter "+col.Title()+": ", "", ">5  a..b  in x,y  ~text  empty  expr …")
		return m, nil
	case key.Matches(msg, k.ResetFilters):
		m.store.UpdateFilters(nil)
		m.nav.Sync()
		return m, nil
	case key.Matches(msg, k.Sort):
		col, ok := m.activeColumn()
		if !ok {
			m.lastMsg = "select a cell to sort its column"
			return m, nil
		}
		m.store.UpdateSort(col.ID, nextDirection(sortDirection(m.store.Sort(), col.ID)))
		m.nav.Sync()
		return m, nil
	case key.Matches(msg, k.SelectRow):
		if row, ok := m.activeRow(); ok {
			m.store.ToggleRowSelection(row.ID)
		}
		return m, nil
	case key.Matches(msg, k.SelectAll):
		m.store.ToggleSelectAll()
		return m, nil
	case key.Matches(msg, k.NextPage), key.Matches(msg, k.PrevPage):
		if m.store.Virtualized() {
			m.lastMsg = "paging is off (ctrl+w)"
			return m, nil
		}
		p := m.store.Pagination()
		if key.Matches(msg, k.NextPage) {
			p.Page++
		} else {
			p.Page--
		}
		m.store.UpdatePagination(p)
		m.nav.Sync()
		return m, nil
	case key.Matches(msg, k.Virtual):
		m.store.SetVirtualized(!m.store.Virtualized())
		m.nav.Sync()
		if m.store.Virtualized() {
			m.lastMsg = "scrolling the whole view"
		} else {
			m.lastMsg = "paged view"
		}
		return m, nil
	case key.Matches(msg, k.Export):
		m.exportView()
		return m, nil
	case key.Matches(msg, k.Flush):
		m.flushEdits()
		return m, nil
	}
	return m, m.applyNav(m.nav.HandleKey(msg))
}

func (m *Model) applyNav(a nav.Action) tea.Cmd {
	switch a.Kind {
	case nav.EditStart:
		row, _ := m.store.Row(a.RowID)
		text := row.Get(a.ColumnID).String()
		switch {
		case a.Initial != nil:
			text = string(a.Initial)
		case a.Paste:
			clip, err := clipboard.ReadAll()
			if err != nil {
				logx.Warnf("ui: paste failed: %v", err)
			} else {
				text = clip
			}
		}
		col, _ := m.column(a.ColumnID)
		m.beginInput(modeEdit, col.Title()+": ", text, "")
	case nav.EditClear:
		m.nav.Sync()
	case nav.Copy:
		if a.Err != nil {
			m.lastMsg = "copy failed: " + a.Err.Error()
		} else {
			m.lastMsg = "copied " + a.ColumnID
		}
	}
	return nil
}

func (m *Model) beginInput(md mode, prompt, value, placeholder string) {
	m.mode = md
	m.input.Prompt = prompt
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) endInput() {
	m.mode = modeGrid
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if ref, ok := m.store.Editing(); ok {
			col, _ := m.column(ref.ColumnID)
			m.store.UpdateCell(ref.RowID, ref.ColumnID, model.ParseValue(col.Type, m.input.Value()))
			m.store.FinishCellEdit()
		}
		m.endInput()
		m.nav.Sync()
		return m, nil
	case tea.KeyEsc:
		m.store.CancelCellEdit()
		m.endInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.endInput()
		return m, nil
	case tea.KeyEsc:
		m.setSearch(m.prevSearch)
		m.endInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.searchText {
		m.setSearch(m.input.Value())
	}
	return m, cmd
}

func (m *Model) setSearch(text string) {
	m.searchText = text
	m.store.UpdateSearch(parseSearch(text))
	m.nav.Sync()
	if err := m.store.State().SearchErr; err != nil {
		m.lastMsg = "bad pattern: " + err.Error()
	}
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		f, err := parseQuickFilter(m.filterCol, m.input.Value())
		m.endInput()
		if err != nil {
			m.lastMsg = "filter: " + err.Error()
			return m, nil
		}
		m.store.AddFilter(f)
		m.nav.Sync()
		m.lastMsg = "filter: " + describeFilter(f)
		return m, nil
	case tea.KeyEsc:
		m.endInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) openModal(md mode) {
	m.mode = md
	switch md {
	case modeHelp:
		m.modalVP.SetContent(m.help.FullHelpView(m.keymap.FullHelp()))
		m.modalVP.GotoTop()
	case modeLogs:
		m.modalVP.SetContent(logx.Dump())
		m.modalVP.GotoBottom()
	}
}

func (m *Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap
	if msg.Type == tea.KeyEsc || key.Matches(msg, k.Help) || key.Matches(msg, k.AppLogs) || key.Matches(msg, k.Quit) {
		m.mode = modeGrid
		return m, nil
	}
	var cmd tea.Cmd
	m.modalVP, cmd = m.modalVP.Update(msg)
	return m, cmd
}

func (m *Model) activeColumn() (model.Column, bool) {
	cell, ok := m.nav.Active()
	cols := m.store.Columns()
	if !ok || cell.ColumnIndex >= len(cols) {
		return model.Column{}, false
	}
	return cols[cell.ColumnIndex], true
}

func (m *Model) column(id string) (model.Column, bool) {
	for _, c := range m.store.Columns() {
		if c.ID == id {
			return c, true
		}
	}
	return model.Column{}, false
}

func (m *Model) activeRow() (model.Row, bool) {
	cell, ok := m.nav.Active()
	rows := m.store.Rendered()
	if !ok || cell.RowIndex >= len(rows) {
		return model.Row{}, false
	}
	return rows[cell.RowIndex], true
}

// flushEdits appends pending edits to the edits file and clears them once
// written.
func (m *Model) flushEdits() {
	pending := m.store.Pending()
	if len(pending) == 0 {
		return
	}
	if err := export.WriteEdits(m.cfg.EditsOut, pending); err != nil {
		m.lastMsg = "save failed: " + err.Error()
		logx.Errorf("export: edits: %v", err)
		return
	}
	m.store.FlushPending()
	m.lastMsg = fmt.Sprintf("saved %d edits to %s", len(pending), m.cfg.EditsOut)
}

func (m *Model) exportPath() (format, path string) {
	path = m.cfg.ExportOut
	format = strings.ToLower(m.cfg.ExportFormat)
	if format == "" {
		format = "csv"
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ndjson", ".jsonl", ".json":
			format = "ndjson"
		}
	}
	if path == "" {
		path = "inspectgrid-export." + format
	}
	return format, path
}

func (m *Model) exportView() {
	format, path := m.exportPath()
	var err error
	switch format {
	case "ndjson":
		err = export.ToNDJSON(path, m.store.Columns(), m.store.View())
	default:
		err = export.ToCSV(path, m.store.Columns(), m.store.View())
	}
	if err != nil {
		m.lastMsg = "export failed: " + err.Error()
		logx.Errorf("export: %v", err)
		return
	}
	m.lastMsg = fmt.Sprintf("exported %d rows to %s", len(m.store.View()), path)
	logx.Infof("export: %s (%s)", path, format)
}

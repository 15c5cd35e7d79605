package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"inspectgrid/internal/model"
)

func (m *Model) View() string {
	if m.termWidth == 0 {
		return "starting..."
	}
	base := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderTable(),
		m.renderStatus(),
		m.renderFooter(),
	)
	if !m.mode.modal() {
		return base
	}
	title := "Keys"
	if m.mode == modeLogs {
		title = "App logs"
	}
	popup := m.styles.PopupBox.Render(m.styles.PopupTitle.Render(title) + "\n\n" + m.modalVP.View())
	return overlay(base, lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, popup))
}

func (m *Model) renderTitle() string {
	left := m.styles.Title.Render("inspectgrid") + " " + m.styles.Status.Render(m.source)
	if m.loading || m.netBusy {
		left += " " + m.spin.View()
	}
	p := m.store.Pagination()
	var right string
	if m.store.Virtualized() {
		right = fmt.Sprintf("%d/%d rows", len(m.store.View()), len(m.store.Rows()))
	} else {
		right = fmt.Sprintf("page %d/%d · %d/%d rows", p.Page, p.Pages(), len(m.store.View()), len(m.store.Rows()))
	}
	gap := max(m.termWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + m.styles.Status.Render(right)
}

// renderTable draws the header and the rows intersecting the window. The
// first two cells of each line hold the selection marker.
func (m *Model) renderTable() string {
	height := max(m.termHeight-chrome, 1)
	w := m.store.Window()
	cols := m.store.Columns()
	widths := w.Widths()
	ts := m.styles.TableStyles
	if len(cols) == 0 {
		return lipgloss.NewStyle().Height(height).Render(m.styles.Status.Render("no columns"))
	}
	first, last := w.Columns()
	sortKeys := m.store.Sort()

	lines := make([]string, 0, height)
	var hb strings.Builder
	hb.WriteString("  ")
	for i := first; i < last; i++ {
		title := cols[i].Title()
		style := ts.Header
		switch sortDirection(sortKeys, cols[i].ID) {
		case model.Asc:
			title += " ▲"
			style = ts.HeaderSorted
		case model.Desc:
			title += " ▼"
			style = ts.HeaderSorted
		}
		hb.WriteString(style.Render(fit(title, widths[i])))
	}
	lines = append(lines, hb.String())

	edited := map[[2]string]bool{}
	for _, e := range m.store.Pending() {
		edited[[2]string{e.RowID, e.ColumnID}] = true
	}
	sel := m.store.Selection()
	active, hasActive := m.nav.Active()
	rowFirst, _ := w.Range()
	for j, row := range w.Visible() {
		idx := rowFirst + j
		var rb strings.Builder
		if sel.Has(row.ID) {
			rb.WriteString(ts.Selected.Render("● "))
		} else {
			rb.WriteString("  ")
		}
		for i := first; i < last; i++ {
			v := row.Get(cols[i].ID)
			text := fit(formatCell(v), widths[i])
			style := ts.Cell
			switch {
			case hasActive && active.RowIndex == idx && active.ColumnIndex == i:
				style = ts.Active
			case edited[[2]string{row.ID, cols[i].ID}]:
				style = ts.Edited
			case v.IsNull():
				style = ts.Null
			case hasActive && active.RowIndex == idx:
				style = ts.ActiveRow
			case sel.Has(row.ID):
				style = ts.Selected
			}
			rb.WriteString(style.Render(text))
		}
		lines = append(lines, rb.String())
		if len(lines) >= height {
			break
		}
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus() string {
	st := m.store.State()
	parts := []string{}
	if n := len(st.Filters); n > 0 {
		parts = append(parts, fmt.Sprintf("filters:%d", n))
	}
	if st.Search.Query != "" {
		parts = append(parts, "search:"+m.searchText)
	}
	if len(st.Sort) > 0 {
		parts = append(parts, "sort:"+describeSort(st.Sort))
	}
	if n := len(st.Selection.Rows); n > 0 {
		parts = append(parts, fmt.Sprintf("selected:%d", n))
	}
	if n := len(st.Editing.Pending); n > 0 {
		parts = append(parts, fmt.Sprintf("unsaved:%d", n))
	}
	parts = append(parts, fmt.Sprintf("undo:%d redo:%d", len(st.History.Undo), len(st.History.Redo)))
	if cell, ok := m.nav.Active(); ok {
		parts = append(parts, fmt.Sprintf("r%d c%d", cell.RowIndex+1, cell.ColumnIndex+1))
	}
	line := strings.Join(parts, " · ")
	if m.lastMsg != "" {
		line += "  " + m.lastMsg
	}
	if st.SearchErr != nil {
		return m.styles.Error.Render(runewidth.Truncate(line, m.termWidth, "…"))
	}
	return m.styles.Status.Render(runewidth.Truncate(line, m.termWidth, "…"))
}

func (m *Model) renderFooter() string {
	if m.mode.inline() {
		return m.input.View()
	}
	return m.help.ShortHelpView(m.keymap.ShortHelp())
}

// fit pads or truncates s to exactly w cells, keeping one trailing space.
func fit(s string, w int) string {
	if w <= 1 {
		return strings.Repeat(" ", max(w, 0))
	}
	s = runewidth.Truncate(s, w-1, "…")
	return runewidth.FillRight(s, w)
}

// overlay draws top over base line by line; blank top lines are
// transparent.
func overlay(base, top string) string {
	bLines := strings.Split(base, "\n")
	oLines := strings.Split(top, "\n")
	n := max(len(bLines), len(oLines))
	out := make([]string, n)
	for i := 0; i < n; i++ {
		switch {
		case i < len(oLines) && strings.TrimSpace(oLines[i]) != "":
			out[i] = oLines[i]
		case i < len(bLines):
			out[i] = bLines[i]
		}
	}
	return strings.Join(out, "\n")
}

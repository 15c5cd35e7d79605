package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"inspectgrid/internal/config"
	"inspectgrid/internal/model"
	"inspectgrid/internal/nav"
	"inspectgrid/internal/source"
	"inspectgrid/internal/store"
)

type mode int

const (
	modeGrid mode = iota
	modeEdit
	modeSearch
	modeFilter
	modeHelp
	modeLogs
)

// modal reports whether the mode draws a popup over the grid.
func (md mode) modal() bool { return md == modeHelp || md == modeLogs }

// inline reports whether the footer hosts the text input.
func (md mode) inline() bool { return md == modeEdit || md == modeSearch || md == modeFilter }

type Model struct {
	ctx context.Context
	cfg *config.Config

	store *store.Store
	nav   *nav.Controller
	unsub func()

	// follow mode
	followCancel context.CancelFunc
	followRows   <-chan source.Dataset
	followErrs   <-chan error

	// where columns came from: "columns file", "cache", "heuristics", "openai", "demo"
	origin string
	source string

	// UI
	mode       mode
	styles     Styles
	keymap     KeyMap
	help       help.Model
	spin       spinner.Model
	input      textinput.Model
	modalVP    viewport.Model
	termWidth  int
	termHeight int

	loading    bool
	netBusy    bool
	lastMsg    string
	searchText string // raw text behind the active search
	prevSearch string // restored when search input is cancelled
	filterCol  model.Column
}

type loadedMsg struct {
	ds     source.Dataset
	origin string
}

type loadErrMsg struct{ err error }

// columnsMsg carries a dataset re-read with refined columns.
type columnsMsg struct {
	ds  source.Dataset
	err error
}

type followMsg struct{ ds source.Dataset }

type followErrMsg struct {
	err    error
	closed bool
}

type followDoneMsg struct{}

type toastMsg struct{ text string }

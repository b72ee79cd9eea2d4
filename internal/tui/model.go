// Package tui provides an interactive terminal review of extracted clauses.
package tui

import (
	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the review screen state.
type Model struct {
	theme      themes.Theme
	contract   *model.Contract
	help       help.Model
	keymap     KeyMap
	categories []model.Category
	width      int
	height     int
	cursor     int
	offset     int
	quitting   bool
}

// NewModel creates a review model for contract.
func NewModel(contract *model.Contract, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if contract.Clauses == nil {
		contract.Clauses = model.NewExtractionResult()
	}

	return Model{
		theme:      cfg.Theme,
		contract:   contract,
		help:       help.New(),
		keymap:     DefaultKeyMap(),
		categories: model.Categories(),
		width:      cfg.Width,
		height:     cfg.Height,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampOffset()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keymap.Up):
			m.selectCategory(m.cursor - 1)
		case key.Matches(msg, m.keymap.Down):
			m.selectCategory(m.cursor + 1)
		case key.Matches(msg, m.keymap.Top):
			m.selectCategory(0)
		case key.Matches(msg, m.keymap.Bottom):
			m.selectCategory(len(m.categories) - 1)
		case key.Matches(msg, m.keymap.ScrollUp):
			m.offset -= m.pageSize()
			m.clampOffset()
		case key.Matches(msg, m.keymap.ScrollDown):
			m.offset += m.pageSize()
			m.clampOffset()
		}
	}

	return m, nil
}

// Selected returns the category under the cursor.
func (m Model) Selected() model.Category {
	return m.categories[m.cursor]
}

// Quitting reports whether the user asked to leave the review.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m *Model) selectCategory(index int) {
	if index < 0 {
		index = 0
	}
	if index >= len(m.categories) {
		index = len(m.categories) - 1
	}
	if index != m.cursor {
		m.cursor = index
		m.offset = 0
	}
}

// pageSize is the number of clauses shown in the clause pane.
func (m Model) pageSize() int {
	// Header, completeness box, pane borders and help footer.
	size := m.height - 14
	if size < 1 {
		return 1
	}
	return size
}

func (m *Model) clampOffset() {
	maxOffset := len(m.contract.Clauses[m.Selected()]) - m.pageSize()
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

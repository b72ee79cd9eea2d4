package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/smartcp/internal/engine"
	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

const categoryPaneWidth = 34

// View renders the review screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderCompleteness(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderCategories(), m.renderClauses()),
		m.help.View(m.keymap),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	status := string(m.contract.Status)
	switch m.contract.Status {
	case model.StatusCompleted:
		status = m.theme.StatusSuccess.Render(status)
	case model.StatusError:
		status = m.theme.StatusError.Render(status)
	default:
		status = m.theme.StatusWarning.Render(status)
	}

	title := m.theme.Title.Render("⚓ " + m.contract.Name)
	subtitle := m.theme.Subtitle.Render(fmt.Sprintf("%d clauses extracted", m.contract.Clauses.Total()))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", status, "  ", subtitle)
}

func (m Model) renderCompleteness() string {
	report := m.contract.Completeness
	if len(report) == 0 {
		report = engine.AnalyzeCompleteness(m.contract.Clauses)
	}

	lines := make([]string, 0, len(report))
	for _, essential := range engine.Essentials() {
		status, ok := report[essential.Category]
		if !ok {
			continue
		}
		if strings.HasPrefix(status, engine.FoundMarker) {
			lines = append(lines, m.theme.StatusSuccess.Render(status))
		} else {
			lines = append(lines, m.theme.StatusWarning.Render(status))
		}
	}
	return m.theme.RoundedBox.Render(strings.Join(lines, "\n"))
}

func (m Model) renderCategories() string {
	lines := make([]string, 0, len(m.categories))
	for i, category := range m.categories {
		line := fmt.Sprintf("%s %-22s %3d",
			themes.GetCategoryIcon(string(category)),
			categoryLabel(category),
			len(m.contract.Clauses[category]))
		if i == m.cursor {
			line = m.theme.Selected.Render(line)
		} else {
			line = m.theme.Normal.Render(line)
		}
		lines = append(lines, line)
	}
	return m.theme.RoundedBox.Width(categoryPaneWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) renderClauses() string {
	category := m.Selected()
	items := m.contract.Clauses[category]

	width := m.width - categoryPaneWidth - 6
	if width < 20 {
		width = 20
	}

	lines := []string{m.theme.Title.Render(categoryLabel(category))}
	if len(items) == 0 {
		lines = append(lines, m.theme.Muted.Render("No clauses found"))
	}

	end := m.offset + m.pageSize()
	if end > len(items) {
		end = len(items)
	}
	for i := m.offset; i < end; i++ {
		text := strings.Join(strings.Fields(items[i]), " ")
		lines = append(lines, m.theme.Normal.Width(width).Render(fmt.Sprintf("%d. %s", i+1, text)))
	}
	if end < len(items) {
		lines = append(lines, m.theme.Muted.Render(fmt.Sprintf("… %d more", len(items)-end)))
	}

	return m.theme.RoundedBox.Width(width + 4).Render(strings.Join(lines, "\n"))
}

func categoryLabel(category model.Category) string {
	words := strings.Split(string(category), "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

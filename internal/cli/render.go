package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/smartcp/internal/engine"
	"github.com/Veraticus/smartcp/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// CategoryTitle turns a category key into a heading, e.g. "Payment Terms".
func CategoryTitle(category model.Category) string {
	words := strings.Split(string(category), "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// RenderResult writes every category with its clauses.
func RenderResult(w io.Writer, result model.ExtractionResult) error {
	var b strings.Builder
	for _, category := range model.Categories() {
		items := result[category]
		b.WriteString(CategoryStyle.Render(fmt.Sprintf("%s (%d)", CategoryTitle(category), len(items))))
		b.WriteString("\n")
		if len(items) == 0 {
			b.WriteString(SubtleStyle.Render("  none found"))
			b.WriteString("\n")
		}
		for _, item := range items {
			b.WriteString("  • ")
			b.WriteString(strings.Join(strings.Fields(item), " "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderCompleteness writes the completeness report in essential order.
func RenderCompleteness(w io.Writer, report model.CompletenessReport) error {
	lines := make([]string, 0, len(report))
	for _, essential := range engine.Essentials() {
		status, ok := report[essential.Category]
		if !ok {
			continue
		}
		if strings.HasPrefix(status, engine.FoundMarker) {
			lines = append(lines, SuccessStyle.Render(status))
		} else {
			lines = append(lines, WarningStyle.Render(status))
		}
	}

	_, err := fmt.Fprintln(w, RenderBox("Completeness", strings.Join(lines, "\n")))
	return err
}

// ShortID abbreviates a contract ID for tables.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// StatusText renders a contract status with its color.
func StatusText(status model.ContractStatus) string {
	switch status {
	case model.StatusCompleted:
		return SuccessStyle.Render(string(status))
	case model.StatusError:
		return ErrorStyle.Render(string(status))
	case model.StatusProcessing:
		return WarningStyle.Render(string(status))
	default:
		return SubtleStyle.Render(string(status))
	}
}

// RenderContracts writes a table of contracts.
func RenderContracts(w io.Writer, contracts []model.Contract) error {
	if len(contracts) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No contracts found"))
		return err
	}

	cell := lipgloss.NewStyle().PaddingRight(2)
	columns := [][]string{{"ID"}, {"NAME"}, {"STATUS"}, {"CREATED"}}
	for _, c := range contracts {
		columns[0] = append(columns[0], ShortID(c.ID))
		columns[1] = append(columns[1], c.Name)
		columns[2] = append(columns[2], StatusText(c.Status))
		columns[3] = append(columns[3], c.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	rendered := make([]string, len(columns))
	for i, column := range columns {
		rows := make([]string, len(column))
		for j, value := range column {
			if j == 0 {
				rows[j] = TableHeaderStyle.Render(value)
				continue
			}
			rows[j] = value
		}
		rendered[i] = cell.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	_, err := fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	return err
}

// RenderContract writes a contract's details, clauses and processing logs.
func RenderContract(w io.Writer, contract *model.Contract, logs []model.ProcessingLog) error {
	header := []string{
		fmt.Sprintf("ID:      %s", contract.ID),
		fmt.Sprintf("Status:  %s", StatusText(contract.Status)),
		fmt.Sprintf("Created: %s", contract.CreatedAt.Local().Format("2006-01-02 15:04:05")),
		fmt.Sprintf("Updated: %s", contract.UpdatedAt.Local().Format("2006-01-02 15:04:05")),
		fmt.Sprintf("Roles:   %s", strings.Join(contract.Documents.Roles(), ", ")),
	}
	if _, err := fmt.Fprintln(w, RenderBox(contract.Name, strings.Join(header, "\n"))); err != nil {
		return err
	}

	if err := RenderResult(w, contract.Clauses); err != nil {
		return err
	}
	if len(contract.Completeness) > 0 {
		if err := RenderCompleteness(w, contract.Completeness); err != nil {
			return err
		}
	}

	if len(logs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, TitleStyle.Render("Processing log")); err != nil {
		return err
	}
	for _, entry := range logs {
		line := fmt.Sprintf("%s [%s] %s", entry.CreatedAt.Local().Format("15:04:05"), entry.Level, entry.Message)
		switch entry.Level {
		case model.LogLevelError:
			line = ErrorStyle.Render(line)
		case model.LogLevelWarning:
			line = WarningStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderStats writes contract statistics.
func RenderStats(w io.Writer, stats model.ContractStats, counts map[model.ContractStatus]int) error {
	lines := []string{
		fmt.Sprintf("Total contracts: %d", stats.Total),
		fmt.Sprintf("Completed:       %d", stats.Completed),
		fmt.Sprintf("Success rate:    %.1f%%", stats.SuccessRate),
	}
	for _, row := range []struct {
		label  string
		status model.ContractStatus
	}{
		{label: "Draft:", status: model.StatusDraft},
		{label: "Processing:", status: model.StatusProcessing},
		{label: "Failed:", status: model.StatusError},
	} {
		lines = append(lines, fmt.Sprintf("%-16s %d", row.label, counts[row.status]))
	}

	_, err := fmt.Fprintln(w, RenderBox(ChartIcon+" Contract statistics", strings.Join(lines, "\n")))
	return err
}

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Width(18)
	valueStyle = lipgloss.NewStyle()
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// row is one label/value line of human output.
type row struct {
	label string
	value string
}

// printRows renders rows as an aligned two-column block.
func printRows(w io.Writer, title string, rows []row) {
	lines := make([]string, 0, len(rows)+1)
	if title != "" {
		lines = append(lines, title)
	}
	for _, r := range rows {
		value := valueStyle.Render(r.value)
		if r.value == "" {
			value = mutedStyle.Render("-")
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(r.label), value))
	}
	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, lines...))
}

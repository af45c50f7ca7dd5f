package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"row-hasher/internal/pipeline"
)

var okStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#10B981")).
	Bold(true)

var labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B6B6B"))

var newStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))

var changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))

// renderSummary formats the outcome of a hash run for the terminal.
func renderSummary(sum pipeline.Summary, tracked bool) string {
	var b strings.Builder

	b.WriteString(okStyle.Render("✓ "))
	fmt.Fprintf(&b, "hashed %d of %d rows", sum.Hashed, sum.Rows)
	b.WriteString(labelStyle.Render(fmt.Sprintf(" in %s", sum.Duration.Round(time.Millisecond))))

	if sum.Filtered > 0 {
		b.WriteString(labelStyle.Render(fmt.Sprintf(" (%d filtered)", sum.Filtered)))
	}

	if len(sum.Groups) > 0 {
		b.WriteString("\n  ")
		b.WriteString(labelStyle.Render("groups: "))
		b.WriteString(sum.Groups.String())
	}

	if tracked {
		b.WriteString("\n  ")
		b.WriteString(newStyle.Render(fmt.Sprintf("%d new", sum.New)))
		b.WriteString(labelStyle.Render(" · "))
		b.WriteString(changedStyle.Render(fmt.Sprintf("%d changed", sum.Changed)))
		b.WriteString(labelStyle.Render(" · "))
		fmt.Fprintf(&b, "%d unchanged", sum.Unchanged)
		b.WriteString(labelStyle.Render(fmt.Sprintf(" · %d written", sum.Written)))
	}

	return b.String()
}

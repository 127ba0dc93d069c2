package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dyike/arandu/config"
)

// UI styles
var (
	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6")).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8B5CF6")).
		Width(18)

	completedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	pendingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))
)

// ClearScreen clears the terminal screen
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[2J\033[H")
}

// renderConfig formats the effective configuration. The API key is never
// printed, only whether it is set.
func renderConfig(cfg *config.Config) string {
	key := pendingStyle.Render("not set")
	if cfg.HasNewsAPIKey() {
		key = completedStyle.Render("set")
	}

	rows := [][2]string{
		{"NewsAPI key", key},
		{"HTTP timeout", cfg.HTTPTimeout.String()},
		{"Refresh interval", cfg.RefreshInterval.String()},
		{"User agent", cfg.UserAgent},
		{"Log level", cfg.LogLevel},
		{"Log format", cfg.LogFormat},
		{"Tracing", fmt.Sprintf("%t", cfg.TracingEnabled)},
		{"Debug", fmt.Sprintf("%t", cfg.Debug)},
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("⚙️  Arandu configuration"))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(keyStyle.Render(row[0]))
		b.WriteString(row[1])
		b.WriteString("\n")
	}
	return b.String()
}

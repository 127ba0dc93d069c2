package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/dyike/arandu/internal/processing"
	"github.com/dyike/arandu/pkg/app"
	"github.com/dyike/arandu/pkg/dataflows"
)

const width = 78

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6")).
		MarginTop(1)

	panelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#6B7280")).
		Padding(0, 1).
		Width(width)

	upStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	downStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	flatStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Italic(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

// Renderer writes dashboards as styled text or JSON.
type Renderer struct {
	out  io.Writer
	json bool
}

func NewRenderer(out io.Writer, asJSON bool) *Renderer {
	return &Renderer{out: out, json: asJSON}
}

// Render writes one dashboard.
func (r *Renderer) Render(d *app.Dashboard) error {
	if r.json {
		return RenderJSON(r.out, d)
	}
	_, err := io.WriteString(r.out, RenderText(d))
	return err
}

// RenderJSON writes the dashboard as indented JSON.
func RenderJSON(w io.Writer, d *app.Dashboard) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// RenderText formats the dashboard for a terminal.
func RenderText(d *app.Dashboard) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ARANDU · MARKET INTELLIGENCE"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s · %s  %s\n",
		d.Session.Icon, d.Session.Name, d.Session.Description,
		mutedStyle.Render(d.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")))

	b.WriteString(sectionStyle.Render("MARKETS"))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(marketLines(d.Market)))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("SIGNAL"))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(signalLines(d)))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("HEADLINES"))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(newsLines(d.Headlines, "no keyed headlines (set NEWSAPI_KEY)")))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("RSS"))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(newsLines(d.RSS, "no feed items")))
	b.WriteString("\n")

	for _, w := range d.Warnings {
		b.WriteString(warningStyle.Render("⚠ " + w))
		b.WriteString("\n")
	}
	return b.String()
}

func marketLines(snap *dataflows.MarketSnapshot) string {
	if snap == nil || len(snap.Quotes) == 0 {
		return mutedStyle.Render("market data unavailable")
	}

	lines := make([]string, 0, len(snap.Quotes)+1)
	for _, q := range snap.Quotes {
		lines = append(lines, fmt.Sprintf("%-10s %14s %-4s %s",
			q.Instrument.Name, q.PriceString(), q.Instrument.Unit, formatDelta(q)))
	}
	if line := historyLine(snap); line != "" {
		lines = append(lines, "", line)
	}
	return strings.Join(lines, "\n")
}

func formatDelta(q dataflows.Quote) string {
	if !q.Available() {
		return flatStyle.Render("  -")
	}
	text := q.DeltaPct.StringFixed(2) + "%"
	switch q.DeltaPct.Sign() {
	case 1:
		return upStyle.Render("▲ +" + text)
	case -1:
		return downStyle.Render("▼ " + text)
	default:
		return flatStyle.Render("■ " + text)
	}
}

var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// historyLine draws the reference history as a sparkline.
func historyLine(snap *dataflows.MarketSnapshot) string {
	if len(snap.History) == 0 {
		return ""
	}

	low, high := snap.History[0].Close, snap.History[0].Close
	for _, p := range snap.History {
		low = decimal.Min(low, p.Close)
		high = decimal.Max(high, p.Close)
	}
	span := high.Sub(low)
	steps := decimal.NewFromInt(int64(len(sparkTicks) - 1))

	var spark strings.Builder
	for _, p := range snap.History {
		idx := 0
		if !span.IsZero() {
			idx = int(p.Close.Sub(low).Div(span).Mul(steps).Round(0).IntPart())
		}
		spark.WriteRune(sparkTicks[idx])
	}
	return fmt.Sprintf("%s %dd %s", snap.Reference.Name, len(snap.History), spark.String())
}

func signalLines(d *app.Dashboard) string {
	style := flatStyle
	switch d.Signal {
	case processing.Bullish:
		style = upStyle
	case processing.Bearish:
		style = downStyle
	}
	return fmt.Sprintf("%s  score %+.3f  %s\n%s",
		style.Render(string(d.Signal)), d.Score,
		mutedStyle.Render("basis: "+string(d.SentimentBasis)),
		style.Render(d.Recommendation))
}

func newsLines(items []processing.ScoredItem, empty string) string {
	if len(items) == 0 {
		return mutedStyle.Render(empty)
	}
	lines := make([]string, 0, len(items))
	for _, s := range items {
		line := fmt.Sprintf("%s %s", s.Marker.Emoji(), truncate(s.Item.Title, width-8))
		if s.Item.Source != "" {
			line += " " + mutedStyle.Render("("+s.Item.Source+")")
		}
		lines = append(lines, line)
		if desc := strings.Join(strings.Fields(s.Item.Description), " "); desc != "" {
			lines = append(lines, "   "+mutedStyle.Render(truncate(desc, width-8)))
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

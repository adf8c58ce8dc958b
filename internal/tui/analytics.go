package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/chronoflow/internal/insight"
	"github.com/sadopc/chronoflow/internal/timeline"
	"github.com/sadopc/chronoflow/internal/track"
)

// chartDays is the window the weekly chart covers.
const chartDays = 7

type analyticsModel struct {
	store     *track.Store
	generator *insight.Generator
	width     int
	height    int

	loadingInsight bool
	insightText    string
}

func newAnalyticsModel(s *track.Store, g *insight.Generator) analyticsModel {
	return analyticsModel{
		store:     s,
		generator: g,
	}
}

func (r *analyticsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r analyticsModel) update(msg tea.Msg) (analyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case insightMsg:
		r.insightText = msg.text
		r.loadingInsight = false
		return r, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Insight) && !r.loadingInsight {
			r.loadingInsight = true
			return r, r.generateInsight()
		}
	}
	return r, nil
}

func (r analyticsModel) generateInsight() tea.Cmd {
	activities := r.store.Activities()
	categories := r.store.Categories()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return insightMsg{text: r.generator.Generate(ctx, activities, categories)}
	}
}

func (r analyticsModel) view() string {
	if r.width < 20 {
		return "Terminal too small"
	}

	w := r.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Analytics"), "  ",
		mutedStyle.Render(fmt.Sprintf("last %d days", chartDays)),
	)

	chartView := r.renderChart()
	legend := r.renderLegend()
	tableView := r.renderTotalsTable()
	insightView := r.renderInsightPanel(w)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", legend, "", tableView,
		),
	) + "\n" + insightView
}

func (r analyticsModel) renderChart() string {
	chartWidth := r.width - 12
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 34 {
		chartHeight = 14
	}

	chart := barchart.New(chartWidth, chartHeight)

	categories := r.store.Categories()
	colors := categoryColors(categories)
	series := timeline.LastNDays(r.store.Activities(), categories, chartDays, time.Now())

	var bars []barchart.BarData
	for _, day := range series {
		var values []barchart.BarValue
		for _, c := range categories {
			hours := day.Hours[c.Name]
			if hours == 0 {
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(colors[c.Name]))
			values = append(values, barchart.BarValue{
				Name:  c.Name,
				Value: hours,
				Style: style,
			})
		}
		if hours := day.Hours[track.Unknown.Name]; hours > 0 {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(track.Unknown.Color))
			values = append(values, barchart.BarValue{
				Name:  track.Unknown.Name,
				Value: hours,
				Style: style,
			})
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}
		bars = append(bars, barchart.BarData{
			Label:  day.Label,
			Values: values,
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}

func (r analyticsModel) renderTotalsTable() string {
	totals := timeline.Totals(r.store.Activities(), r.store.Categories())
	if len(totals) == 0 {
		return mutedStyle.Render("  No completed activities yet")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-20s %10s", "Category", "Total")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", 32)))
	for _, t := range totals {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Category.Color)).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-18s %10s", dot, t.Category.Name, formatHours(t.Hours)))
	}
	return strings.Join(rows, "\n")
}

func (r analyticsModel) renderLegend() string {
	var items []string
	for _, c := range r.store.Categories() {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, c.Name))
	}
	if len(items) == 0 {
		return ""
	}
	return "  " + strings.Join(items, "  ")
}

func (r analyticsModel) renderInsightPanel(w int) string {
	title := titleStyle.Render("AI Insight")

	body := mutedStyle.Render("Press g to generate an insight from your last 7 days")
	if r.loadingInsight {
		body = warningStyle.Render("Generating...")
	} else if r.insightText != "" {
		body = lipgloss.NewStyle().Width(w - 6).Render(r.insightText)
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", body),
	)
}

// categoryColors maps category names to their colors, including the
// Unknown placeholder dangling ids resolve to.
func categoryColors(categories []track.Category) map[string]string {
	colors := make(map[string]string, len(categories)+1)
	for _, c := range categories {
		colors[c.Name] = c.Color
	}
	colors[track.Unknown.Name] = track.Unknown.Color
	return colors
}

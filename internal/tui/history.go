package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/chronoflow/internal/timeline"
	"github.com/sadopc/chronoflow/internal/track"
	"github.com/sadopc/chronoflow/internal/view"
)

// daysShown is how far back the day list reaches.
const daysShown = 14

// dayBarWidth is the number of columns a day strip is drawn in. Each
// column covers half an hour.
const dayBarWidth = 48

type historyModel struct {
	store  *track.Store
	dates  *view.DateSelection
	width  int
	height int

	cursor int // 0 = today, growing into the past
}

func newHistoryModel(s *track.Store, includeToday bool) historyModel {
	today := timeline.DateKey(time.Now())
	return historyModel{
		store: s,
		dates: view.NewDateSelection(includeToday, today),
	}
}

func (h *historyModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

func (h historyModel) today() string {
	return timeline.DateKey(time.Now())
}

// dateAt maps a list row to its date key.
func (h historyModel) dateAt(i int) string {
	return timeline.DateKey(time.Now().AddDate(0, 0, -i))
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsChangedMsg:
		h.dates.SetIncludeToday(msg.settings.IncludeTodayInComparison)
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up), key.Matches(msg, keys.Left):
			if h.cursor > 0 {
				h.cursor--
			}
			return h, nil

		case key.Matches(msg, keys.Down), key.Matches(msg, keys.Right):
			if h.cursor < daysShown-1 {
				h.cursor++
			}
			return h, nil

		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			h.dates.Toggle(h.dateAt(h.cursor), h.today())
			return h, nil

		case key.Matches(msg, keys.Calendar):
			// Reset the comparison back to just today.
			h.dates = view.NewDateSelection(h.dates.IncludeToday(), h.today())
			h.cursor = 0
			return h, nil
		}
	}
	return h, nil
}

// allActivities returns completed plus the running activity, if any.
func (h historyModel) allActivities() []track.Activity {
	list := h.store.Activities()
	if a := h.store.Active(); a != nil {
		list = append(list, *a)
	}
	return list
}

func (h historyModel) view() string {
	if h.width < 20 {
		return "Terminal too small"
	}

	listWidth := 34
	detailWidth := h.width - listWidth - 6
	if detailWidth < 20 {
		detailWidth = 20
	}

	dayList := h.renderDayList(listWidth)
	detail := h.renderComparison(detailWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, dayList, detail)
}

func (h historyModel) renderDayList(w int) string {
	title := titleStyle.Render("Days")
	activities := h.allActivities()
	now := time.Now()

	var rows []string
	rows = append(rows, title)
	for i := 0; i < daysShown; i++ {
		date := h.dateAt(i)
		blocks := timeline.DayBlocks(activities, date, now)

		var mins float64
		for _, b := range blocks {
			mins += b.Minutes
		}

		label := date
		if date == h.today() {
			label = "Today"
		}

		mark := "[ ]"
		if h.dates.Selected(date) {
			mark = "[x]"
		}
		cursor := "  "
		style := normalItemStyle
		if i == h.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-10s %s", cursor, mark, label, formatHours(mins/60))))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(" space: compare"))
	rows = append(rows, mutedStyle.Render(" c: reset"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (h historyModel) renderComparison(w int) string {
	activities := h.allActivities()
	now := time.Now()
	categories := h.store.Categories()

	var panels []string
	for _, date := range h.dates.DatesToRender(h.today()) {
		panels = append(panels, h.renderDay(date, activities, categories, now, w))
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (h historyModel) renderDay(date string, activities []track.Activity, categories []track.Category, now time.Time, w int) string {
	blocks := timeline.DayBlocks(activities, date, now)

	label := date
	if date == h.today() {
		label = "Today (" + date + ")"
	}
	title := titleStyle.Render(label)

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "  "+h.renderDayBar(blocks, categories))

	if len(blocks) == 0 {
		rows = append(rows, mutedStyle.Render("  No activity on this day"))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	// List rows newest first; the strip above stays positional.
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		names := make([]string, 0, len(b.Activity.CategoryIDs))
		for _, c := range track.Resolve(categories, b.Activity.CategoryIDs) {
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
			names = append(names, dot+" "+c.Name)
		}

		startStr := b.Activity.StartAt().Local().Format("15:04")
		dur := formatHM(time.Duration(b.Minutes * float64(time.Minute)))
		if b.Activity.Running() {
			dur = successStyle.Render("running")
		}

		row := fmt.Sprintf("  %s  %s  %s", mutedStyle.Render(startStr), strings.Join(names, "  "), dur)
		rows = append(rows, row)

		for _, th := range b.Activity.Thoughts {
			rows = append(rows, mutedStyle.Render("        ◦ "+th.Text))
		}
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderDayBar draws a one-line strip of the day, one column per half
// hour, using each block's render width so short sessions stay visible.
func (h historyModel) renderDayBar(blocks []timeline.Block, categories []track.Category) string {
	cells := make([]string, dayBarWidth)
	empty := lipgloss.NewStyle().Foreground(colorSubtle).Render("·")
	for i := range cells {
		cells[i] = empty
	}

	for _, b := range blocks {
		start := b.StartMinute * dayBarWidth / timeline.MinutesPerDay
		span := int(b.RenderMinutes) * dayBarWidth / timeline.MinutesPerDay
		if span < 1 {
			span = 1
		}

		color := track.Unknown.Color
		if resolved := track.Resolve(categories, b.Activity.CategoryIDs); len(resolved) > 0 {
			color = resolved[0].Color
		}
		cell := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("█")

		for i := start; i < start+span && i < dayBarWidth; i++ {
			cells[i] = cell
		}
	}
	return strings.Join(cells, "")
}

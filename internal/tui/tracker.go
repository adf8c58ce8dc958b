package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/chronoflow/internal/track"
	"github.com/sadopc/chronoflow/internal/view"
)

// moods the tracker can stamp on a new activity. Index 0 is "none".
var moods = []string{"", "Focused", "Calm", "Tired", "Energized"}

type trackerModel struct {
	store     *track.Store
	selection *view.CategorySelection
	width     int
	height    int

	cursor  int // category under the cursor
	moodIdx int

	typingThought bool
	thoughtInput  textinput.Model
}

func newTrackerModel(s *track.Store, multiSelect bool) trackerModel {
	ti := textinput.New()
	ti.Placeholder = "What's on your mind?"
	ti.CharLimit = 200

	return trackerModel{
		store:        s,
		selection:    view.NewCategorySelection(multiSelect),
		thoughtInput: ti,
	}
}

func (t *trackerModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t trackerModel) isRunning() bool {
	return t.store.Active() != nil
}

func (t trackerModel) elapsed() time.Duration {
	a := t.store.Active()
	if a == nil {
		return 0
	}
	return a.Duration(time.Now())
}

func (t trackerModel) update(msg tea.Msg) (trackerModel, tea.Cmd) {
	if t.typingThought {
		return t.updateThoughtInput(msg)
	}

	switch msg := msg.(type) {
	case settingsChangedMsg:
		t.selection.SetMultiSelect(msg.settings.MultiSelectEnabled)
		return t, nil

	case tickMsg:
		// The view recomputes elapsed from the wall clock, nothing to
		// store here.
		return t, nil

	case tea.KeyMsg:
		categories := t.store.Categories()

		switch {
		case key.Matches(msg, keys.Left), key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
			return t, nil

		case key.Matches(msg, keys.Right), key.Matches(msg, keys.Down):
			if t.cursor < len(categories)-1 {
				t.cursor++
			}
			return t, nil

		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if t.cursor < len(categories) {
				t.selection.Toggle(categories[t.cursor].ID)
			}
			return t, nil

		case key.Matches(msg, keys.Mood):
			if !t.isRunning() {
				t.moodIdx = (t.moodIdx + 1) % len(moods)
			}
			return t, nil

		case key.Matches(msg, keys.Start):
			return t.startActivity()

		case key.Matches(msg, keys.Stop):
			return t.stopActivity()

		case key.Matches(msg, keys.Thought):
			if !t.isRunning() {
				return t, nil
			}
			t.typingThought = true
			t.thoughtInput.SetValue("")
			t.thoughtInput.Focus()
			return t, textinput.Blink
		}
	}
	return t, nil
}

func (t trackerModel) updateThoughtInput(msg tea.Msg) (trackerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Back):
			t.typingThought = false
			t.thoughtInput.Blur()
			return t, nil

		case key.Matches(msg, keys.Enter):
			text := t.thoughtInput.Value()
			t.typingThought = false
			t.thoughtInput.Blur()
			return t, func() tea.Msg {
				th, err := t.store.AddThought(text)
				if err != nil {
					return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
				}
				if th == nil {
					return nil
				}
				return statusMsg{text: "Thought pinned"}
			}
		}
	}

	var cmd tea.Cmd
	t.thoughtInput, cmd = t.thoughtInput.Update(msg)
	return t, cmd
}

func (t trackerModel) startActivity() (trackerModel, tea.Cmd) {
	if t.isRunning() {
		return t, nil
	}
	if t.selection.Empty() {
		return t, func() tea.Msg {
			return statusMsg{text: "Select at least one category first", isError: true}
		}
	}

	ids := t.selection.IDs()
	mood := moods[t.moodIdx]
	return t, func() tea.Msg {
		a, err := t.store.Start(ids, mood)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		if a == nil {
			return nil
		}
		return activityStartedMsg{}
	}
}

func (t trackerModel) stopActivity() (trackerModel, tea.Cmd) {
	return t, func() tea.Msg {
		a, err := t.store.Stop()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		if a == nil {
			return nil
		}
		return activityStoppedMsg{}
	}
}

func (t trackerModel) view() string {
	if t.width < 20 {
		return "Terminal too small"
	}

	contentWidth := t.width - 4

	clockPanel := t.renderClockPanel(contentWidth)
	categoryPanel := t.renderCategoryPanel(contentWidth)

	var bottomPanel string
	if t.isRunning() {
		bottomPanel = t.renderThoughtsPanel(contentWidth)
	}

	if bottomPanel == "" {
		return lipgloss.JoinVertical(lipgloss.Left, clockPanel, categoryPanel)
	}
	return lipgloss.JoinVertical(lipgloss.Left, clockPanel, categoryPanel, bottomPanel)
}

func (t trackerModel) renderClockPanel(w int) string {
	active := t.store.Active()

	if active != nil {
		timeStr := formatClock(active.Duration(time.Now()))
		timeDisplay := clockRunningStyle.Width(w - 6).Render(timeStr)
		indicator := successStyle.Render("●  TRACKING")

		names := make([]string, 0, len(active.CategoryIDs))
		for _, c := range track.Resolve(t.store.Categories(), active.CategoryIDs) {
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
			names = append(names, dot+" "+c.Name)
		}
		categoryLine := highlightStyle.Render(strings.Join(names, "  "))
		if active.Mood != "" {
			categoryLine += accentStyle.Render("  (" + active.Mood + ")")
		}

		content := lipgloss.JoinVertical(lipgloss.Center,
			timeDisplay,
			indicator,
			categoryLine,
		)
		return activePanelStyle.Width(w).Render(content)
	}

	timeDisplay := clockStyle.Width(w - 6).Render("00:00:00")
	indicator := mutedStyle.Render("■  IDLE")
	hint := mutedStyle.Render("Press s to start tracking")
	if t.moodIdx > 0 {
		hint = mutedStyle.Render("Mood: ") + accentStyle.Render(moods[t.moodIdx])
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		timeDisplay,
		indicator,
		hint,
	)
	return panelStyle.Width(w).Render(content)
}

func (t trackerModel) renderCategoryPanel(w int) string {
	title := titleStyle.Render("Categories")
	mode := mutedStyle.Render("single-select")
	if t.selection.MultiSelect() {
		mode = mutedStyle.Render("multi-select")
	}
	header := fmt.Sprintf("%s  %s", title, mode)

	categories := t.store.Categories()
	if len(categories) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			mutedStyle.Render("No categories. Press 4 to go to Settings and add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	for i, c := range categories {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
		mark := "[ ]"
		if t.selection.Selected(c.ID) {
			mark = "[x]"
		}
		cursor := "  "
		style := normalItemStyle
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s %s", cursor, mark, dot, c.Name)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  s: start  x: stop  t: thought  m: mood"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (t trackerModel) renderThoughtsPanel(w int) string {
	title := titleStyle.Render("Thoughts")

	var rows []string
	rows = append(rows, title)

	active := t.store.Active()
	if active != nil {
		if len(active.Thoughts) == 0 && !t.typingThought {
			rows = append(rows, mutedStyle.Render("Press t to pin a thought to this session"))
		}
		// Newest first.
		for i := len(active.Thoughts) - 1; i >= 0; i-- {
			th := active.Thoughts[i]
			at := time.UnixMilli(th.Timestamp).Local().Format("15:04")
			rows = append(rows, fmt.Sprintf("  %s %s", mutedStyle.Render(at), th.Text))
		}
	}

	if t.typingThought {
		rows = append(rows, "")
		rows = append(rows, "  "+t.thoughtInput.View())
		rows = append(rows, mutedStyle.Render("  enter: pin  esc: cancel"))
		return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

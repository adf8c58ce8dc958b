package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/chronoflow/internal/account"
	"github.com/sadopc/chronoflow/internal/insight"
	"github.com/sadopc/chronoflow/internal/storage"
	"github.com/sadopc/chronoflow/internal/track"
	"github.com/sadopc/chronoflow/internal/view"
)

// App is the root Bubble Tea model.
type App struct {
	store  *track.Store
	width  int
	height int

	activeView viewState
	showHelp   bool

	tracker   trackerModel
	history   historyModel
	analytics analyticsModel
	settings  settingsModel

	help        help.Model
	status      string
	statusError bool
}

func NewApp(s *track.Store, flags storage.Storage, accounts *account.Manager, gen *insight.Generator, settings view.Settings) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		activeView: viewTracker,
		tracker:    newTrackerModel(s, settings.MultiSelectEnabled),
		history:    newHistoryModel(s, settings.IncludeTodayInComparison),
		analytics:  newAnalyticsModel(s, gen),
		settings:   newSettingsModel(s, flags, accounts, settings),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.settings.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.tracker.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.analytics.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// If a child view is capturing input (form or text entry),
		// delegate first.
		if a.isInputActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTracker
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewHistory
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewAnalytics
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			if a.activeView == viewSettings {
				return a, a.settings.refresh()
			}
			return a, nil
		}

	case tickMsg:
		var cmd tea.Cmd
		a.tracker, cmd = a.tracker.update(msg)
		return a, tea.Batch(tickCmd(), cmd)

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		return a, nil

	case activityStartedMsg:
		a.status = "Tracking started"
		a.statusError = false
		return a, nil

	case activityStoppedMsg:
		a.status = "Activity saved"
		a.statusError = false
		return a, nil

	case settingsChangedMsg:
		a.status = "Settings saved"
		a.statusError = false
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.tracker, cmd = a.tracker.update(msg)
		cmds = append(cmds, cmd)
		a.history, cmd = a.history.update(msg)
		cmds = append(cmds, cmd)
		a.settings, cmd = a.settings.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case insightMsg:
		var cmd tea.Cmd
		a.analytics, cmd = a.analytics.update(msg)
		return a, cmd

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusError = false
		return a, nil

	case importDoneMsg:
		a.status = msg.result.Summary()
		a.statusError = false
		return a, nil

	case accountLinkedMsg:
		a.status = "Linked " + msg.email
		a.statusError = false
		return a, a.settings.refresh()

	case accountSyncedMsg:
		a.status = "Synced at " + msg.stamp
		a.statusError = false
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, tea.Batch(cmd, a.settings.refresh())

	case accountStatusMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTracker:
		a.tracker, cmd = a.tracker.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewAnalytics:
		a.analytics, cmd = a.analytics.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isInputActive() bool {
	switch a.activeView {
	case viewTracker:
		return a.tracker.typingThought
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTracker:
		content = a.tracker.view()
	case viewHistory:
		content = a.history.view()
	case viewAnalytics:
		content = a.analytics.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("chronoflow")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Running indicator in footer
	trackerInfo := ""
	if a.tracker.isRunning() {
		trackerInfo = successStyle.Render(" ● " + formatClock(a.tracker.elapsed()))
	}

	left := footerStyle.Render(helpView)
	right := trackerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/chronoflow/internal/backup"
	"github.com/sadopc/chronoflow/internal/view"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTracker viewState = iota
	viewHistory
	viewAnalytics
	viewSettings
)

var viewNames = []string{"Tracker", "History", "Analytics", "Settings"}

// --- Messages ---

type activityStartedMsg struct{}

type activityStoppedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type settingsChangedMsg struct {
	settings view.Settings
}

type insightMsg struct {
	text string
}

type exportDoneMsg struct {
	path string
}

type importDoneMsg struct {
	result backup.Result
}

type accountLinkedMsg struct {
	email string
}

type accountSyncedMsg struct {
	stamp string
}

// --- Helpers ---

// formatClock renders an elapsed duration as HH:MM:SS.
func formatClock(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// formatHM renders a duration the way the history list shows it.
func formatHM(d time.Duration) string {
	mins := int(d.Minutes())
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.2fh", h)
}

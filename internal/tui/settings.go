package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/chronoflow/internal/account"
	"github.com/sadopc/chronoflow/internal/backup"
	"github.com/sadopc/chronoflow/internal/storage"
	"github.com/sadopc/chronoflow/internal/track"
	"github.com/sadopc/chronoflow/internal/view"
)

type settingsRowKind int

const (
	rowMultiSelect settingsRowKind = iota
	rowIncludeToday
	rowCategory
	rowExport
	rowImport
	rowLink
	rowSync
	rowUnlink
)

type settingsRow struct {
	kind     settingsRowKind
	category track.Category // set for rowCategory
}

type settingsFormKind int

const (
	formNone settingsFormKind = iota
	formCategory
	formImport
	formEmail
)

type settingsModel struct {
	store    *track.Store
	flags    storage.Storage
	accounts *account.Manager
	settings view.Settings
	width    int
	height   int

	cursor  int
	status  account.Status
	syncing bool

	formActive bool
	form       *huh.Form
	formKind   settingsFormKind
	editingID  string // category id being edited, empty means new

	// Form values as pointers (survive value copies)
	catName    *string
	catColor   *string
	importPath *string
	email      *string
}

func newSettingsModel(s *track.Store, flags storage.Storage, accounts *account.Manager, settings view.Settings) settingsModel {
	name, color, path, email := "", "", "", ""
	return settingsModel{
		store:      s,
		flags:      flags,
		accounts:   accounts,
		settings:   settings,
		catName:    &name,
		catColor:   &color,
		importPath: &path,
		email:      &email,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type accountStatusMsg struct {
	status account.Status
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		st, _ := s.accounts.Status()
		return accountStatusMsg{status: st}
	}
}

// rows lays out the settings list top to bottom.
func (s settingsModel) rows() []settingsRow {
	rows := []settingsRow{
		{kind: rowMultiSelect},
		{kind: rowIncludeToday},
	}
	for _, c := range s.store.Categories() {
		rows = append(rows, settingsRow{kind: rowCategory, category: c})
	}
	rows = append(rows, settingsRow{kind: rowExport}, settingsRow{kind: rowImport})
	if s.status.Linked() {
		rows = append(rows, settingsRow{kind: rowSync}, settingsRow{kind: rowUnlink})
	} else {
		rows = append(rows, settingsRow{kind: rowLink})
	}
	return rows
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case accountStatusMsg:
		s.status = msg.status
		if s.cursor >= len(s.rows()) {
			s.cursor = len(s.rows()) - 1
		}
		return s, nil

	case settingsChangedMsg:
		s.settings = msg.settings
		return s, nil

	case accountSyncedMsg:
		s.syncing = false
		return s, nil

	case syncFailedMsg:
		s.syncing = false
		err := msg.err
		return s, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Sync error: %v", err), isError: true}
		}

	case tea.KeyMsg:
		rows := s.rows()

		switch {
		case key.Matches(msg, keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
			return s, nil

		case key.Matches(msg, keys.Down):
			if s.cursor < len(rows)-1 {
				s.cursor++
			}
			return s, nil

		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Toggle):
			if s.cursor < len(rows) {
				return s.activate(rows[s.cursor])
			}
			return s, nil

		case key.Matches(msg, keys.New):
			return s.showCategoryForm(track.Category{})

		case key.Matches(msg, keys.Edit):
			if s.cursor < len(rows) && rows[s.cursor].kind == rowCategory {
				return s.showCategoryForm(rows[s.cursor].category)
			}
			return s, nil

		case key.Matches(msg, keys.Delete):
			if s.cursor < len(rows) && rows[s.cursor].kind == rowCategory {
				return s.deleteCategory(rows[s.cursor].category)
			}
			return s, nil
		}
	}
	return s, nil
}

func (s settingsModel) activate(row settingsRow) (settingsModel, tea.Cmd) {
	switch row.kind {
	case rowMultiSelect:
		s.settings.MultiSelectEnabled = !s.settings.MultiSelectEnabled
		return s.saveSettings()

	case rowIncludeToday:
		s.settings.IncludeTodayInComparison = !s.settings.IncludeTodayInComparison
		return s.saveSettings()

	case rowCategory:
		return s.showCategoryForm(row.category)

	case rowExport:
		return s, s.doExport()

	case rowImport:
		return s.showImportForm()

	case rowLink:
		return s.showEmailForm()

	case rowSync:
		if s.syncing {
			return s, nil
		}
		s.syncing = true
		return s, s.doSync()

	case rowUnlink:
		return s, s.doUnlink()
	}
	return s, nil
}

func (s settingsModel) saveSettings() (settingsModel, tea.Cmd) {
	if err := s.settings.Save(s.flags); err != nil {
		return s, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	settings := s.settings
	return s, func() tea.Msg { return settingsChangedMsg{settings: settings} }
}

// ---- Forms ----

func (s settingsModel) showCategoryForm(c track.Category) (settingsModel, tea.Cmd) {
	s.editingID = c.ID
	*s.catName = c.Name
	*s.catColor = c.Color
	if *s.catColor == "" {
		*s.catColor = track.DefaultColors[0]
	}

	colorOptions := make([]huh.Option[string], 0, len(track.DefaultColors))
	for _, col := range track.DefaultColors {
		colorOptions = append(colorOptions, huh.NewOption(col, col))
	}

	title := "New Category"
	if c.ID != "" {
		title = "Edit Category"
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(s.catName),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(s.catColor),
		).Title(title),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	s.formKind = formCategory
	return s, s.form.Init()
}

func (s settingsModel) showImportForm() (settingsModel, tea.Cmd) {
	*s.importPath = ""
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Backup file path").Value(s.importPath),
		).Title("Import Backup"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	s.formKind = formImport
	return s, s.form.Init()
}

func (s settingsModel) showEmailForm() (settingsModel, tea.Cmd) {
	*s.email = ""
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(s.email),
		).Title("Link Account"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	s.formKind = formEmail
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			s.formKind = formNone
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		kind := s.formKind
		s.formKind = formNone
		s.form = nil
		return s.applyForm(kind)
	}

	return s, cmd
}

func (s settingsModel) applyForm(kind settingsFormKind) (settingsModel, tea.Cmd) {
	switch kind {
	case formCategory:
		name, color, id := *s.catName, *s.catColor, s.editingID
		return s, func() tea.Msg {
			if id == "" {
				if _, err := s.store.AddCategory(name, color); err != nil {
					return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
				}
				return statusMsg{text: "Category added"}
			}
			if err := s.store.UpdateCategory(id, name, color); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return statusMsg{text: "Category updated"}
		}

	case formImport:
		path := *s.importPath
		return s, func() tea.Msg {
			result, err := backup.ImportFile(path, s.store)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Import error: %v", err), isError: true}
			}
			return importDoneMsg{result: result}
		}

	case formEmail:
		email := *s.email
		return s, func() tea.Msg {
			if err := s.accounts.Link(email); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return accountLinkedMsg{email: strings.TrimSpace(email)}
		}
	}
	return s, nil
}

// ---- Commands ----

func (s settingsModel) doExport() tea.Cmd {
	categories := s.store.Categories()
	activities := s.store.Activities()
	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		path := filepath.Join(home, backup.DefaultFilename(time.Now()))
		if err := backup.Export(categories, activities, path); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

type syncFailedMsg struct {
	err error
}

func (s settingsModel) doSync() tea.Cmd {
	return func() tea.Msg {
		// The sync is mocked; the pause stands in for the round trip.
		time.Sleep(750 * time.Millisecond)
		stamp, err := s.accounts.MarkSynced(time.Now())
		if err != nil {
			return syncFailedMsg{err: err}
		}
		return accountSyncedMsg{stamp: stamp}
	}
}

func (s settingsModel) doUnlink() tea.Cmd {
	return func() tea.Msg {
		if err := s.accounts.Unlink(); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return statusMsg{text: "Account unlinked"}
	}
}

func (s settingsModel) deleteCategory(c track.Category) (settingsModel, tea.Cmd) {
	return s, func() tea.Msg {
		if err := s.store.DeleteCategory(c.ID); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return statusMsg{text: fmt.Sprintf("Deleted %q. Past activities keep their history.", c.Name)}
	}
}

// ---- View ----

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")

	for i, row := range s.rows() {
		cursor := "  "
		style := normalItemStyle
		if i == s.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+s.rowLabel(row)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  n: new category  e: edit  d: delete"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (s settingsModel) rowLabel(row settingsRow) string {
	switch row.kind {
	case rowMultiSelect:
		return "Multi-select categories   " + onOff(s.settings.MultiSelectEnabled)
	case rowIncludeToday:
		return "Include today in compare  " + onOff(s.settings.IncludeTodayInComparison)
	case rowCategory:
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(row.category.Color)).Render("●")
		return fmt.Sprintf("%s %s", dot, row.category.Name)
	case rowExport:
		return "Export backup"
	case rowImport:
		return "Import backup..."
	case rowLink:
		return "Link account..."
	case rowSync:
		label := "Sync now"
		if s.syncing {
			return warningStyle.Render("Syncing...")
		}
		if s.status.LastSync != "" {
			label += mutedStyle.Render("  (last: " + s.status.LastSync + ")")
		}
		return label
	case rowUnlink:
		return "Unlink " + s.status.Email
	}
	return ""
}

func onOff(v bool) string {
	if v {
		return successStyle.Render("on")
	}
	return mutedStyle.Render("off")
}

// Package account keeps the simulated cloud-account link state. There
// is no real protocol behind it: linking stores an email, syncing
// stamps a time. The artificial latency lives in the UI layer.
package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/chronoflow/internal/storage"
)

// Status is the persisted link state.
type Status struct {
	Email    string // empty when not linked
	LastSync string // display string, empty when never synced
}

func (s Status) Linked() bool { return s.Email != "" }

// Manager reads and writes link state through the storage port.
type Manager struct {
	storage storage.Storage
}

func NewManager(st storage.Storage) *Manager {
	return &Manager{storage: st}
}

func (m *Manager) Status() (Status, error) {
	var st Status
	email, ok, err := m.storage.Get(storage.KeyLinkedEmail)
	if err != nil {
		return Status{}, fmt.Errorf("load linked email: %w", err)
	}
	if ok {
		st.Email = email
	}
	last, ok, err := m.storage.Get(storage.KeyLastSyncTime)
	if err != nil {
		return Status{}, fmt.Errorf("load last sync time: %w", err)
	}
	if ok {
		st.LastSync = last
	}
	return st, nil
}

// Link associates the given email with this install.
func (m *Manager) Link(email string) error {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address %q", email)
	}
	if err := m.storage.Set(storage.KeyLinkedEmail, email); err != nil {
		return fmt.Errorf("persist linked email: %w", err)
	}
	return nil
}

// Unlink clears the link and the sync stamp.
func (m *Manager) Unlink() error {
	if err := m.storage.Delete(storage.KeyLinkedEmail); err != nil {
		return fmt.Errorf("clear linked email: %w", err)
	}
	if err := m.storage.Delete(storage.KeyLastSyncTime); err != nil {
		return fmt.Errorf("clear last sync time: %w", err)
	}
	return nil
}

// MarkSynced records a completed (simulated) sync and returns the
// stored display string.
func (m *Manager) MarkSynced(at time.Time) (string, error) {
	st, err := m.Status()
	if err != nil {
		return "", err
	}
	if !st.Linked() {
		return "", fmt.Errorf("no account linked")
	}
	stamp := at.Format("2006-01-02 15:04:05")
	if err := m.storage.Set(storage.KeyLastSyncTime, stamp); err != nil {
		return "", fmt.Errorf("persist last sync time: %w", err)
	}
	return stamp, nil
}

package view

import (
	"fmt"
	"strconv"

	"github.com/sadopc/chronoflow/internal/storage"
)

// Settings are the two persisted flags the selection state machines
// are reconstructed from at startup.
type Settings struct {
	MultiSelectEnabled       bool
	IncludeTodayInComparison bool
}

// LoadSettings reads the flags, defaulting multi-select off and
// include-today on. Any value other than the literal "true"/"false"
// falls back to the default rather than erroring.
func LoadSettings(st storage.Storage) (Settings, error) {
	s := Settings{
		MultiSelectEnabled:       false,
		IncludeTodayInComparison: true,
	}

	raw, ok, err := st.Get(storage.KeyMultiSelectEnabled)
	if err != nil {
		return Settings{}, fmt.Errorf("load multi-select flag: %w", err)
	}
	if ok {
		s.MultiSelectEnabled = raw == "true"
	}

	raw, ok, err = st.Get(storage.KeyIncludeTodayCompare)
	if err != nil {
		return Settings{}, fmt.Errorf("load include-today flag: %w", err)
	}
	if ok {
		s.IncludeTodayInComparison = raw != "false"
	}
	return s, nil
}

// Save persists both flags.
func (s Settings) Save(st storage.Storage) error {
	if err := st.Set(storage.KeyMultiSelectEnabled, strconv.FormatBool(s.MultiSelectEnabled)); err != nil {
		return fmt.Errorf("persist multi-select flag: %w", err)
	}
	if err := st.Set(storage.KeyIncludeTodayCompare, strconv.FormatBool(s.IncludeTodayInComparison)); err != nil {
		return fmt.Errorf("persist include-today flag: %w", err)
	}
	return nil
}

package ui

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"plantmanager/internal/db"
	"plantmanager/internal/logging"
	"plantmanager/internal/model"
)

// prefsKey is the settings key holding the serialized UIPreferences.
const prefsKey = "ui_prefs"

// UIPreferences stores persisted app preferences.
type UIPreferences struct {
	LastEnvironment string `json:"last_environment"`
}

func defaultUIPreferences() UIPreferences {
	return UIPreferences{LastEnvironment: model.AllEnvironmentsKey}
}

func loadUIPreferences(ctx context.Context, database *sql.DB) UIPreferences {
	if database == nil {
		return defaultUIPreferences()
	}

	raw, err := db.GetSetting(ctx, database, prefsKey)
	if err != nil {
		return defaultUIPreferences()
	}

	prefs := defaultUIPreferences()
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		logging.Warn("ignoring unreadable ui preferences", zap.Error(err))
		return defaultUIPreferences()
	}
	return prefs
}

func saveUIPreferences(ctx context.Context, database *sql.DB, prefs UIPreferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}
	if err := db.SetSetting(ctx, database, prefsKey, string(data)); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	return nil
}

func saveUIPreferencesCmd(ctx context.Context, database *sql.DB, prefs UIPreferences) tea.Cmd {
	return func() tea.Msg {
		if err := saveUIPreferences(ctx, database, prefs); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return nil
	}
}

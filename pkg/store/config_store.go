package store

import (
	"fyne.io/fyne/v2"
	"github.com/snehaj2206-pixel/medscan/pkg/models"
)

// ConfigStore handles application configuration persistence using Fyne preferences
type ConfigStore struct {
	app fyne.App
}

// NewConfigStore creates a new ConfigStore instance
func NewConfigStore(app fyne.App) *ConfigStore {
	return &ConfigStore{app: app}
}

// Load loads configuration from preferences
func (cs *ConfigStore) Load() *models.Config {
	prefs := cs.app.Preferences()

	config := &models.Config{
		AutoStart: prefs.BoolWithFallback("auto_start", false),
		Language:  prefs.StringWithFallback("language", models.LangEnglish),
	}
	config.Normalize()

	return config
}

// Save saves configuration to preferences
func (cs *ConfigStore) Save(config *models.Config) {
	prefs := cs.app.Preferences()

	prefs.SetBool("auto_start", config.AutoStart)
	prefs.SetString("language", config.Language)
}

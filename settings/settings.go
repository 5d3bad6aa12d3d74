// Package settings keeps the player's audio and display preferences
// between runs.
package settings

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/flagrun/common"
)

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

type Settings struct {
	Volume     float64 `yaml:"volume"`
	Muted      bool    `yaml:"muted"`
	Fullscreen bool    `yaml:"fullscreen"`
}

func Default() Settings {
	return Settings{Volume: 0.8}
}

// Manager loads and saves Settings through gdata. A manager without a gdata
// backend keeps settings in memory only.
type Manager struct {
	store    *gdata.Manager
	settings Settings
	log      *log.Logger
}

// Open creates a gdata backend for appName and loads saved settings. When
// the backend cannot be opened the manager still works, in memory.
func Open(appName string) *Manager {
	l := common.Log("settings")
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		l.Warn("settings will not persist", "err", err)
		store = nil
	}
	return New(store)
}

func New(store *gdata.Manager) *Manager {
	m := &Manager{
		store:    store,
		settings: Default(),
		log:      common.Log("settings"),
	}
	if err := m.Load(); err != nil {
		m.log.Warn("using default settings", "err", err)
	}
	return m
}

func (m *Manager) Load() error {
	m.settings = Default()
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("settings: load: %w", err)
	}
	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("settings: unmarshal: %w", err)
	}
	loaded.Volume = common.Clamp(loaded.Volume, 0, 1)
	m.settings = loaded
	return nil
}

func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	m.log.Debug("saved", "muted", m.settings.Muted, "fullscreen", m.settings.Fullscreen)
	return nil
}

func (m *Manager) Settings() Settings { return m.settings }
func (m *Manager) Persistent() bool   { return m.store != nil }

// ToggleMute flips the mute flag, saves, and returns the new value.
func (m *Manager) ToggleMute() bool {
	m.settings.Muted = !m.settings.Muted
	m.saveOrWarn()
	return m.settings.Muted
}

func (m *Manager) ToggleFullscreen() bool {
	m.settings.Fullscreen = !m.settings.Fullscreen
	m.saveOrWarn()
	return m.settings.Fullscreen
}

// Gain is the factor applied to every sound: the volume, or 0 while muted.
func (m *Manager) Gain() float64 {
	if m.settings.Muted {
		return 0
	}
	return m.settings.Volume
}

func (m *Manager) SetVolume(v float64) {
	m.settings.Volume = common.Clamp(v, 0, 1)
	m.saveOrWarn()
}

func (m *Manager) saveOrWarn() {
	if err := m.Save(); err != nil {
		m.log.Warn("save settings", "err", err)
	}
}

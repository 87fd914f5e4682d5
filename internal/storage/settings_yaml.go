package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"breakreminder/internal/core/model"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

const (
	keyWorkMinutes       = "work_minutes"
	keyBreakMinutes      = "break_minutes"
	keyLongBreakMinutes  = "long_break_minutes"
	keySessions          = "sessions_until_long_break"
	keySoundEnabled      = "sound_enabled"
	keyMinimizeToTray    = "minimize_to_tray"
	keyAutoStartBreak    = "auto_start_break"
	keyAutoStartWork     = "auto_start_work"
	keyAutoStartOnLaunch = "auto_start_on_launch"
	keyAutoRestartOnSkip = "auto_restart_on_skip"
	keyActivityDetection = "activity_detection_enabled"
	keyInactivityTimeout = "inactivity_timeout_seconds"
	keyPauseDuringBreaks = "pause_during_breaks"
	keyCustomSoundPath   = "custom_sound_path"
)

type yamlSettings struct {
	WorkMinutes              int    `yaml:"work_minutes"`
	BreakMinutes             int    `yaml:"break_minutes"`
	LongBreakMinutes         int    `yaml:"long_break_minutes"`
	SessionsUntilLongBreak   int    `yaml:"sessions_until_long_break"`
	SoundEnabled             bool   `yaml:"sound_enabled"`
	MinimizeToTray           bool   `yaml:"minimize_to_tray"`
	AutoStartBreak           bool   `yaml:"auto_start_break"`
	AutoStartWork            bool   `yaml:"auto_start_work"`
	AutoStartOnLaunch        bool   `yaml:"auto_start_on_launch"`
	AutoRestartOnSkip        bool   `yaml:"auto_restart_on_skip"`
	ActivityDetectionEnabled bool   `yaml:"activity_detection_enabled"`
	InactivityTimeoutSeconds int    `yaml:"inactivity_timeout_seconds"`
	PauseDuringBreaks        bool   `yaml:"pause_during_breaks"`
	CustomSoundPath          string `yaml:"custom_sound_path,omitempty"`
}

// Store reads and writes the settings file.
type Store struct {
	path string

	mu       sync.Mutex
	known    model.Settings
	hasKnown bool
}

// NewStore returns a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns <configDir>/<appName>/settings.yaml.
func DefaultPath(configDir, appName string) string {
	return filepath.Join(configDir, appName, settingsFileName)
}

// Path returns the settings file location.
func (store *Store) Path() string {
	return store.path
}

// Load reads user preferences from YAML. The returned settings are always
// usable: missing, malformed or out-of-range keys take their default value and
// an unreadable file yields the defaults. The error only reports what went
// wrong and is nil for a missing file.
func (store *Store) Load() (model.Settings, error) {
	settings, err := store.load()
	if err == nil {
		store.remember(settings)
	}
	return settings, err
}

func (store *Store) load() (model.Settings, error) {
	defaults := model.DefaultSettings()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults, nil
		}
		return defaults, fmt.Errorf("read settings file: %w", err)
	}

	var document map[string]yaml.Node
	if err := yaml.Unmarshal(rawData, &document); err != nil {
		return defaults, fmt.Errorf("parse settings yaml: %w", err)
	}

	return decodeSettings(document, defaults), nil
}

// Save writes user preferences to YAML. The file is replaced atomically, so a
// failed save leaves the previous file untouched.
func (store *Store) Save(settings model.Settings) error {
	dir := filepath.Dir(store.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(toYaml(settings))
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	tmp, err := os.CreateTemp(dir, settingsFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(serialized); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close settings file: %w", err)
	}
	if err := os.Rename(tmpPath, store.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}

	store.remember(settings)
	return nil
}

// remember records the settings the file now holds and reports whether they
// differ from the previously recorded ones.
func (store *Store) remember(settings model.Settings) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.hasKnown && store.known == settings {
		return false
	}
	store.known = settings
	store.hasKnown = true
	return true
}

func toYaml(settings model.Settings) yamlSettings {
	return yamlSettings{
		WorkMinutes:              settings.WorkMinutes,
		BreakMinutes:             settings.BreakMinutes,
		LongBreakMinutes:         settings.LongBreakMinutes,
		SessionsUntilLongBreak:   settings.SessionsUntilLongBreak,
		SoundEnabled:             settings.SoundEnabled,
		MinimizeToTray:           settings.MinimizeToTray,
		AutoStartBreak:           settings.AutoStartBreak,
		AutoStartWork:            settings.AutoStartWork,
		AutoStartOnLaunch:        settings.AutoStartOnLaunch,
		AutoRestartOnSkip:        settings.AutoRestartOnSkip,
		ActivityDetectionEnabled: settings.ActivityDetectionEnabled,
		InactivityTimeoutSeconds: settings.InactivityTimeoutSeconds,
		PauseDuringBreaks:        settings.PauseDuringBreaks,
		CustomSoundPath:          settings.CustomSoundPath,
	}
}

func decodeSettings(document map[string]yaml.Node, defaults model.Settings) model.Settings {
	settings := defaults

	decodeInt(document, keyWorkMinutes, &settings.WorkMinutes, model.WorkMinutesRange)
	decodeInt(document, keyBreakMinutes, &settings.BreakMinutes, model.BreakMinutesRange)
	decodeInt(document, keyLongBreakMinutes, &settings.LongBreakMinutes, model.LongBreakMinutesRange)
	decodeInt(document, keySessions, &settings.SessionsUntilLongBreak, model.SessionsRange)
	decodeInt(document, keyInactivityTimeout, &settings.InactivityTimeoutSeconds, model.InactivityTimeoutRange)

	decodeBool(document, keySoundEnabled, &settings.SoundEnabled)
	decodeBool(document, keyMinimizeToTray, &settings.MinimizeToTray)
	decodeBool(document, keyAutoStartBreak, &settings.AutoStartBreak)
	decodeBool(document, keyAutoStartWork, &settings.AutoStartWork)
	decodeBool(document, keyAutoStartOnLaunch, &settings.AutoStartOnLaunch)
	decodeBool(document, keyAutoRestartOnSkip, &settings.AutoRestartOnSkip)
	decodeBool(document, keyActivityDetection, &settings.ActivityDetectionEnabled)
	decodeBool(document, keyPauseDuringBreaks, &settings.PauseDuringBreaks)

	if node, ok := document[keyCustomSoundPath]; ok {
		var value string
		if err := node.Decode(&value); err == nil {
			settings.CustomSoundPath = value
		}
	}

	return settings
}

func decodeInt(document map[string]yaml.Node, key string, target *int, bounds model.IntRange) {
	node, ok := document[key]
	if !ok {
		return
	}
	var value int
	if err := node.Decode(&value); err != nil || !bounds.Contains(value) {
		return
	}
	*target = value
}

func decodeBool(document map[string]yaml.Node, key string, target *bool) {
	node, ok := document[key]
	if !ok {
		return
	}
	var value bool
	if err := node.Decode(&value); err != nil {
		return
	}
	*target = value
}

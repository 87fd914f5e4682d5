package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// MinimizedFlag is passed to the executable when it is launched at login.
const MinimizedFlag = "--minimized"

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
}

// Registrar toggles launching the application at user login.
type Registrar interface {
	IsEnabled() bool
	Enable() (string, error)
	Disable() (string, error)
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

type autostart struct {
	appName  string
	execPath string
	service  Service
}

// NewRegistrar returns the login registration for appName. An empty execPath
// resolves to the running executable.
func NewRegistrar(appName, execPath string) (Registrar, error) {
	if appName == "" {
		return nil, fmt.Errorf("autostart: app name is empty")
	}
	if execPath == "" {
		resolved, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("autostart: resolve executable: %w", err)
		}
		execPath = resolved
	}
	if abs, err := filepath.Abs(execPath); err == nil {
		execPath = abs
	}
	return &autostart{appName: appName, execPath: execPath, service: NewService()}, nil
}

func (registrar *autostart) IsEnabled() bool {
	return registrar.isEnabled()
}

func (registrar *autostart) Enable() (string, error) {
	if err := registrar.enable(); err != nil {
		return "Failed to enable auto-startup", err
	}
	return "Auto-startup enabled successfully", nil
}

func (registrar *autostart) Disable() (string, error) {
	if !registrar.isEnabled() {
		return "Auto-startup was not enabled", nil
	}
	if err := registrar.disable(); err != nil {
		return "Failed to disable auto-startup", err
	}
	return "Auto-startup disabled successfully", nil
}

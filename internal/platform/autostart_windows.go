//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (registrar *autostart) isEnabled() bool {
	command := exec.Command("reg", "query", registryRunKey, "/v", registrar.appName)
	return command.Run() == nil
}

func (registrar *autostart) enable() error {
	command := exec.Command(
		"reg",
		"add",
		registryRunKey,
		"/v",
		registrar.appName,
		"/t",
		"REG_SZ",
		"/d",
		startupCommand(registrar.execPath),
		"/f",
	)
	output, err := command.CombinedOutput()
	if err != nil {
		return fmt.Errorf("enable autostart: reg add failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	return nil
}

func (registrar *autostart) disable() error {
	command := exec.Command(
		"reg",
		"delete",
		registryRunKey,
		"/v",
		registrar.appName,
		"/f",
	)
	output, err := command.CombinedOutput()
	if err != nil {
		return fmt.Errorf("disable autostart: reg delete failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func startupCommand(execPath string) string {
	trimmed := strings.Trim(execPath, `"`)
	return fmt.Sprintf(`"%s" %s`, trimmed, MinimizedFlag)
}

//go:build windows

package platform

import "strings"

func fileSoundCommands(soundPath string) [][]string {
	quoted := "'" + strings.ReplaceAll(soundPath, "'", "''") + "'"
	return [][]string{{
		"powershell", "-NoProfile", "-NonInteractive", "-Command",
		"(New-Object Media.SoundPlayer " + quoted + ").PlaySync()",
	}}
}

func defaultSoundCommands() [][]string {
	return [][]string{{
		"powershell", "-NoProfile", "-NonInteractive", "-Command",
		"[System.Media.SystemSounds]::Exclamation.Play()",
	}}
}

//go:build darwin

package platform

func fileSoundCommands(soundPath string) [][]string {
	return [][]string{{"afplay", soundPath}}
}

func defaultSoundCommands() [][]string {
	return [][]string{{"afplay", "/System/Library/Sounds/Glass.aiff"}}
}

//go:build linux

package platform

const freedesktopAlert = "/usr/share/sounds/freedesktop/stereo/complete.oga"

func fileSoundCommands(soundPath string) [][]string {
	return [][]string{
		{"paplay", soundPath},
		{"aplay", "-q", soundPath},
		{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", soundPath},
	}
}

func defaultSoundCommands() [][]string {
	return [][]string{
		{"canberra-gtk-play", "-i", "complete"},
		{"paplay", freedesktopAlert},
	}
}

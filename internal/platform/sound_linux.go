//go:build linux

package platform

import "os"

const freedesktopComplete = "/usr/share/sounds/freedesktop/stereo/complete.oga"

func newSpeaker() Speaker {
	name, path := lookFirst("espeak-ng", "espeak", "spd-say")
	if path == "" {
		return unsupportedSpeaker{}
	}
	if name == "spd-say" {
		return commandSpeaker{command: command{path: path, args: []string{"--wait"}}}
	}
	return commandSpeaker{command: command{path: path}}
}

func newChime() Chime {
	if _, err := os.Stat(freedesktopComplete); err == nil {
		if _, path := lookFirst("paplay", "pw-play"); path != "" {
			return commandChime{command: command{path: path, args: []string{freedesktopComplete}}}
		}
	}
	if _, path := lookFirst("canberra-gtk-play"); path != "" {
		return commandChime{command: command{path: path, args: []string{"-i", "complete"}}}
	}
	return unsupportedChime{}
}

//go:build darwin

package platform

const systemGlassSound = "/System/Library/Sounds/Glass.aiff"

func newSpeaker() Speaker {
	if _, path := lookFirst("say"); path != "" {
		return commandSpeaker{command: command{path: path}}
	}
	return unsupportedSpeaker{}
}

func newChime() Chime {
	if _, path := lookFirst("afplay"); path != "" {
		return commandChime{command: command{path: path, args: []string{systemGlassSound}}}
	}
	return unsupportedChime{}
}

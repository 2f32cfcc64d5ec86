//go:build !linux && !darwin && !windows

package platform

func newSpeaker() Speaker {
	return unsupportedSpeaker{}
}

func newChime() Chime {
	return unsupportedChime{}
}

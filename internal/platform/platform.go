package platform

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrSpeechUnsupported indicates no speech synthesizer is available.
	ErrSpeechUnsupported = errors.New("speech synthesis unsupported")
	// ErrSoundUnsupported indicates no sound player is available.
	ErrSoundUnsupported = errors.New("alert sound unsupported")
)

// Speaker reads text aloud.
type Speaker interface {
	Speak(text string) error
}

// Chime plays the end-of-countdown sound.
type Chime interface {
	Play() error
}

// NewSpeaker returns the platform speech synthesizer.
func NewSpeaker() Speaker {
	return newSpeaker()
}

// NewChime returns the platform sound player.
func NewChime() Chime {
	return newChime()
}

// command is an external program started without waiting for it.
type command struct {
	path string
	args []string
}

func (cmd command) start(extra ...string) error {
	args := append(append([]string(nil), cmd.args...), extra...)
	process := exec.Command(cmd.path, args...)
	if err := process.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.path, err)
	}
	go func() {
		_ = process.Wait()
	}()
	return nil
}

type commandSpeaker struct {
	command command
	// format adapts the text to what the program expects as its last argument.
	format func(string) string
}

func (speaker commandSpeaker) Speak(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if speaker.format != nil {
		text = speaker.format(text)
	}
	return speaker.command.start(text)
}

type commandChime struct {
	command command
}

func (chime commandChime) Play() error {
	return chime.command.start()
}

type unsupportedSpeaker struct{}

func (unsupportedSpeaker) Speak(string) error {
	return ErrSpeechUnsupported
}

type unsupportedChime struct{}

func (unsupportedChime) Play() error {
	return ErrSoundUnsupported
}

// lookFirst returns the path of the first program found in PATH.
func lookFirst(names ...string) (string, string) {
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return name, path
		}
	}
	return "", ""
}

// powerShellString quotes text as a single-quoted PowerShell literal.
func powerShellString(text string) string {
	return "'" + strings.ReplaceAll(text, "'", "''") + "'"
}

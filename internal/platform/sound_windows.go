//go:build windows

package platform

func newSpeaker() Speaker {
	_, path := lookFirst("powershell.exe", "pwsh.exe")
	if path == "" {
		return unsupportedSpeaker{}
	}
	return commandSpeaker{
		command: command{path: path, args: []string{"-NoProfile", "-NonInteractive", "-Command"}},
		format: func(text string) string {
			return "Add-Type -AssemblyName System.Speech; " +
				"(New-Object System.Speech.Synthesis.SpeechSynthesizer).Speak(" + powerShellString(text) + ")"
		},
	}
}

func newChime() Chime {
	_, path := lookFirst("powershell.exe", "pwsh.exe")
	if path == "" {
		return unsupportedChime{}
	}
	return commandChime{command: command{
		path: path,
		args: []string{"-NoProfile", "-NonInteractive", "-Command", "[console]::beep(880,400); [console]::beep(1175,600)"},
	}}
}

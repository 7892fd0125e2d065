package tui

// Mode is the page shown on the left of the screen.
type Mode int

const (
	ModeProgram Mode = iota
	ModeSession
	ModeHistory
)

// ModeInfo describes a mode for key bindings and titles.
type ModeInfo struct {
	Mode        Mode
	Key         rune
	DisplayName string
}

var AllModes = []ModeInfo{
	{Mode: ModeProgram, Key: '1', DisplayName: "Program"},
	{Mode: ModeSession, Key: '2', DisplayName: "Workout"},
	{Mode: ModeHistory, Key: '3', DisplayName: "History"},
}

func GetModeInfo(mode Mode) (ModeInfo, bool) {
	for _, info := range AllModes {
		if info.Mode == mode {
			return info, true
		}
	}
	return ModeInfo{}, false
}

func GetModeByKey(key rune) (Mode, bool) {
	for _, info := range AllModes {
		if info.Key == key {
			return info.Mode, true
		}
	}
	return 0, false
}

const (
	maxLogLines = 1000

	// restAdjustSeconds is added or removed by the +/- keys.
	restAdjustSeconds = 15

	logSinkBuffer = 256
)

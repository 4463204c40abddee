package settings

// Defaults applied on first run and whenever a stored value is invalid.
const (
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
)

// Settings holds the user-tunable timer durations and the focus-mode gate.
// It is persisted as a whole record; absent or invalid fields are replaced
// with defaults at the store boundary so consumers never see zero durations.
type Settings struct {
	WorkMinutes  int  `json:"workMinutes"`
	BreakMinutes int  `json:"breakMinutes"`
	FocusMode    bool `json:"focusModeEnabled"`
}

// Default returns the documented first-run settings.
func Default() Settings {
	return Settings{
		WorkMinutes:  DefaultWorkMinutes,
		BreakMinutes: DefaultBreakMinutes,
		FocusMode:    false,
	}
}

// Normalized returns a copy with non-positive durations replaced by defaults.
func (s Settings) Normalized() Settings {
	if s.WorkMinutes <= 0 {
		s.WorkMinutes = DefaultWorkMinutes
	}
	if s.BreakMinutes <= 0 {
		s.BreakMinutes = DefaultBreakMinutes
	}
	return s
}

// WorkSeconds returns the configured work-phase duration in seconds.
func (s Settings) WorkSeconds() int {
	return s.Normalized().WorkMinutes * 60
}

// BreakSeconds returns the configured break-phase duration in seconds.
func (s Settings) BreakSeconds() int {
	return s.Normalized().BreakMinutes * 60
}

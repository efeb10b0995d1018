package domain

const AlarmName = "focusModeReminder"

// ShouldArm reports whether the distraction reminder runs: only while focus
// mode is off and a positive interval is configured.
func ShouldArm(focusActive bool, minutes int) bool {
	return !focusActive && minutes > 0
}

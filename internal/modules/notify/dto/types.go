package dto

// Notification kinds accepted by Usecase.Notify.
const (
	KindDistraction     = "distraction"
	KindEyeBreak        = "eye_break"
	KindWater           = "water"
	KindMovement        = "movement"
	KindSessionComplete = "session_complete"
	KindIndicator       = "indicator"
)

type Notification struct {
	Kind     string
	Title    string
	Message  string
	OpenView string
}

type NotifierInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
	Kinds   []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

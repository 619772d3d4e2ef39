package domain

// Status is the lifecycle status of a conversation as stored.
type Status string

const (
	StatusActive           Status = "active"
	StatusWaitingAttendant Status = "waiting_attendant"
	StatusEnding           Status = "ending"
	StatusCompleted        Status = "completed"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusWaitingAttendant, StatusEnding, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool { return s == StatusCompleted }

// OpenStatuses lists every non-terminal status. At most one conversation per
// identity may be in one of these at a time.
var OpenStatuses = []Status{StatusActive, StatusWaitingAttendant, StatusEnding}

// ServiceType is the tracking service the customer last selected.
type ServiceType string

const (
	ServiceNone  ServiceType = ""
	ServiceDanfe ServiceType = "danfe"
	ServiceCPF   ServiceType = "cpf"
)

func (s ServiceType) String() string { return string(s) }

func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceNone, ServiceDanfe, ServiceCPF:
		return true
	}
	return false
}

// AwaitingInput is the kind of data the next customer message is expected to carry.
type AwaitingInput string

const (
	AwaitingNone     AwaitingInput = ""
	AwaitingDanfeKey AwaitingInput = "danfe_key"
	AwaitingCPF      AwaitingInput = "cpf"
	AwaitingRating   AwaitingInput = "rating"
)

func (a AwaitingInput) String() string { return string(a) }

func (a AwaitingInput) IsValid() bool {
	switch a {
	case AwaitingNone, AwaitingDanfeKey, AwaitingCPF, AwaitingRating:
		return true
	}
	return false
}

// Mode is the collapsed view of Status x AwaitingInput the state machine reasons about.
type Mode string

const (
	ModeNew              Mode = "NEW"
	ModeWelcomeSent      Mode = "WELCOME_SENT"
	ModeMenu             Mode = "MENU"
	ModeAwaitDanfe       Mode = "AWAIT_DANFE"
	ModeAwaitCPF         Mode = "AWAIT_CPF"
	ModeWaitingAttendant Mode = "WAITING_ATTENDANT"
	ModeAwaitRating      Mode = "AWAIT_RATING"
	ModeCompleted        Mode = "COMPLETED"
)

func (m Mode) String() string { return string(m) }

// TrackingKind identifies which lookup endpoint served a tracking request.
type TrackingKind string

const (
	TrackingByDanfe TrackingKind = "danfe"
	TrackingByCPF   TrackingKind = "cpf"
)

func (k TrackingKind) String() string { return string(k) }

func (k TrackingKind) IsValid() bool {
	return k == TrackingByDanfe || k == TrackingByCPF
}

// LogLevel is the severity of a persisted system log entry.
type LogLevel string

const (
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

func (l LogLevel) String() string { return string(l) }

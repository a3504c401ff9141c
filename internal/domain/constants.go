package domain

// Default configuration values
const (
	DefaultVisitDurationMinutes = 30
	DefaultLookaheadDays        = 60 // горизонт разворачивания еженедельных окон
)

// Business validation constants
const (
	MinVisitDurationMinutes     = 5
	MaxVisitDurationMinutes     = 480 // 8 hours
	MinLookaheadDays            = 1
	MaxLookaheadDays            = 365
	MaxNotesLength              = 500
	MaxOccupationLength         = 500
	MaxCancellationReasonLength = 500
	MaxNameLength               = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список терминальных статусов визита
// Визит в терминальном статусе больше не меняется и не занимает слот
var TerminalStatuses = []VisitStatus{
	StatusCancelled,
	StatusCompleted,
}

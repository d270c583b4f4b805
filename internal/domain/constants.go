package domain

// Weekday bounds (1=Monday .. 7=Sunday)
const (
	MinWeekday = 1
	MaxWeekday = 7
)

// Feedback rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Business validation constants
const (
	MinClassroomCapacity = 1
	MaxClassroomCapacity = 1000
	MaxCommentLength     = 1000
	MaxAdminNoteLength   = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Pagination defaults
const (
	DefaultPageSize  = 10
	FeedbackPageSize = 20
	AuditPageSize    = 20
)

// LiveStatuses список статусов, занимающих слот с точки зрения
// проверки конфликтов на этапе подачи заявки (всё, кроме rejected)
var LiveStatuses = []ReservationStatus{
	StatusPending,
	StatusApproved,
}

// WeekdayNames человекочитаемые названия дней недели для писем и сообщений
var WeekdayNames = map[int]string{
	1: "Monday",
	2: "Tuesday",
	3: "Wednesday",
	4: "Thursday",
	5: "Friday",
	6: "Saturday",
	7: "Sunday",
}

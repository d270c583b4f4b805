package domain

import "time"

// Feedback represents instructor feedback on a classroom within a term.
// At most one feedback per (user, classroom, term) is allowed, and only if
// the user holds an approved reservation for that pair
type Feedback struct {
	ID          int64
	UserID      int64
	ClassroomID int64
	TermID      *int64
	Rating      int // 1-5
	Comment     string
	CreatedAt   time.Time
	IsRead      bool
}

// FeedbackFilter фильтр для админского списка отзывов
type FeedbackFilter struct {
	Rating    *int
	StartDate *time.Time
	EndDate   *time.Time
	Search    *string // подстрока в комментарии
	Page      int
	PageSize  int
}

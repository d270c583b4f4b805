package models

import (
	"time"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
)

// Request модели

// ListUserReservationsRequest запрос на постраничный список резерваций пользователя
type ListUserReservationsRequest struct {
	UserID    int64      `json:"userId"`
	Status    *string    `json:"status,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Page      int        `json:"page"`
	PageSize  int        `json:"pageSize"`
}

// RejectReservationRequest запрос на отклонение одной резервации
type RejectReservationRequest struct {
	AdminID   int64   `json:"adminId"`
	AdminNote *string `json:"adminNote,omitempty"`
}

// Response модели

// ReservationResponse одна резервация в ответе API
type ReservationResponse struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"userId"`
	ClassroomID    int64   `json:"classroomId"`
	TermID         *int64  `json:"termId,omitempty"`
	Weekday        int     `json:"weekday"`
	WeekdayName    string  `json:"weekdayName"`
	RangeStart     string  `json:"rangeStart"` // YYYY-MM-DD
	RangeEnd       string  `json:"rangeEnd"`   // YYYY-MM-DD
	Date           string  `json:"date"`       // YYYY-MM-DD
	StartTime      string  `json:"startTime"`  // HH:MM
	EndTime        string  `json:"endTime"`    // HH:MM
	Status         string  `json:"status"`
	AdminNote      *string `json:"adminNote,omitempty"`
	IsHoliday      bool    `json:"isHoliday"`
	ConflictReason *string `json:"conflictReason,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}

// ReservationListResponse постраничный список резерваций
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"pageSize"`
}

// GroupResponse повторяющаяся заявка как единое целое
type GroupResponse struct {
	AnchorID    int64  `json:"anchorId"`
	UserID      int64  `json:"userId"`
	ClassroomID int64  `json:"classroomId"`
	TermID      *int64 `json:"termId,omitempty"`
	Weekday     int    `json:"weekday"`
	WeekdayName string `json:"weekdayName"`
	RangeStart  string `json:"rangeStart"`
	RangeEnd    string `json:"rangeEnd"`
	Count       int    `json:"count"`
	Status      string `json:"status"`
}

// GroupListResponse список групп
type GroupListResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// GroupDetailResponse группа вместе с её участниками
type GroupDetailResponse struct {
	Group   GroupResponse         `json:"group"`
	Members []ReservationResponse `json:"members"`
}

// ConflictPairResponse пара пересекающихся резерваций для отчета администратора
type ConflictPairResponse struct {
	Reservation  ReservationResponse `json:"reservation"`
	Conflicting  ReservationResponse `json:"conflicting"`
	OverlapStart string              `json:"overlapStart"` // HH:MM
	OverlapEnd   string              `json:"overlapEnd"`   // HH:MM
}

// ConflictReportResponse отчет о пересечениях живых резерваций
type ConflictReportResponse struct {
	Pairs []ConflictPairResponse `json:"pairs"`
}

// FromDomainReservation конвертирует domain модель в response
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		ClassroomID:    r.ClassroomID,
		TermID:         r.TermID,
		Weekday:        r.Weekday,
		WeekdayName:    domain.WeekdayNames[r.Weekday],
		RangeStart:     r.RangeStart.Format(domain.DateFormat),
		RangeEnd:       r.RangeEnd.Format(domain.DateFormat),
		Date:           r.StartTime.Format(domain.DateFormat),
		StartTime:      r.StartTime.Format(domain.TimeFormat),
		EndTime:        r.EndTime.Format(domain.TimeFormat),
		Status:         string(r.Status),
		AdminNote:      r.AdminNote,
		IsHoliday:      r.IsHoliday,
		ConflictReason: r.ConflictReason,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservationList конвертирует список domain моделей в response
func FromDomainReservationList(reservations []*domain.Reservation, total, page, pageSize int) *ReservationListResponse {
	result := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, *FromDomainReservation(r))
	}
	return &ReservationListResponse{
		Reservations: result,
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
	}
}

// FromDomainGroup конвертирует производную группу в response
func FromDomainGroup(g domain.ReservationGroup) GroupResponse {
	return GroupResponse{
		AnchorID:    g.AnchorID,
		UserID:      g.UserID,
		ClassroomID: g.ClassroomID,
		TermID:      g.TermID,
		Weekday:     g.Weekday,
		WeekdayName: domain.WeekdayNames[g.Weekday],
		RangeStart:  g.RangeStart.Format(domain.DateFormat),
		RangeEnd:    g.RangeEnd.Format(domain.DateFormat),
		Count:       g.Count,
		Status:      string(g.Status),
	}
}

// FromDomainGroupList конвертирует список групп в response
func FromDomainGroupList(groups []domain.ReservationGroup) *GroupListResponse {
	result := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		result = append(result, FromDomainGroup(g))
	}
	return &GroupListResponse{Groups: result}
}

// FromDomainConflictPairs конвертирует отчет о пересечениях в response
func FromDomainConflictPairs(pairs []domain.ConflictPair) *ConflictReportResponse {
	result := make([]ConflictPairResponse, 0, len(pairs))
	for _, p := range pairs {
		result = append(result, ConflictPairResponse{
			Reservation:  *FromDomainReservation(p.Reservation),
			Conflicting:  *FromDomainReservation(p.Conflicting),
			OverlapStart: p.OverlapStart.Format(domain.TimeFormat),
			OverlapEnd:   p.OverlapEnd.Format(domain.TimeFormat),
		})
	}
	return &ConflictReportResponse{Pairs: result}
}

// ToDomainStatus конвертирует строку статуса в domain
func ToDomainStatus(status string) (domain.ReservationStatus, bool) {
	switch domain.ReservationStatus(status) {
	case domain.StatusPending, domain.StatusApproved, domain.StatusRejected:
		return domain.ReservationStatus(status), true
	default:
		return "", false
	}
}

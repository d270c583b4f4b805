package models

import (
	"errors"
	"time"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
)

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")
)

// Request модели

// CreateTermRequest запрос на создание семестра
type CreateTermRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"` // YYYY-MM-DD
	EndDate   string `json:"endDate"`   // YYYY-MM-DD
}

// UpdateTermRequest запрос на обновление семестра
type UpdateTermRequest struct {
	Name      *string `json:"name,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
}

// Response модели

// TermResponse семестр в ответе API
type TermResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// TermListResponse список семестров
type TermListResponse struct {
	Terms []TermResponse `json:"terms"`
}

// ParseDate разбирает дату запроса
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FromDomainTerm конвертирует domain модель в response
func FromDomainTerm(t *domain.Term) *TermResponse {
	return &TermResponse{
		ID:        t.ID,
		Name:      t.Name,
		StartDate: t.StartDate.Format(domain.DateFormat),
		EndDate:   t.EndDate.Format(domain.DateFormat),
	}
}

// FromDomainTermList конвертирует список domain моделей в response
func FromDomainTermList(terms []*domain.Term) *TermListResponse {
	result := make([]TermResponse, 0, len(terms))
	for _, t := range terms {
		result = append(result, *FromDomainTerm(t))
	}
	return &TermListResponse{Terms: result}
}

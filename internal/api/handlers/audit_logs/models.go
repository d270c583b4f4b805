package audit_logs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
)

// AuditEntryResponse запись журнала в ответе API
type AuditEntryResponse struct {
	ID        int64   `json:"id"`
	UserID    string  `json:"userId"`
	Operation string  `json:"operation"`
	Timestamp string  `json:"timestamp"`
	IsError   bool    `json:"isError"`
	Details   *string `json:"details,omitempty"`
	Level     string  `json:"level"`
}

// AuditListResponse постраничный список записей журнала
type AuditListResponse struct {
	Entries  []AuditEntryResponse `json:"entries"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"pageSize"`
}

// FromDomainEntries конвертирует записи журнала в response
func FromDomainEntries(entries []*domain.AuditEntry, total, page, pageSize int) *AuditListResponse {
	result := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, AuditEntryResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Operation: e.Operation,
			Timestamp: e.Timestamp.Format(time.RFC3339),
			IsError:   e.IsError,
			Details:   e.Details,
			Level:     string(e.Level),
		})
	}
	return &AuditListResponse{
		Entries:  result,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}

// parseListQuery собирает фильтр журнала из query-параметров
func parseListQuery(r *http.Request) (domain.AuditFilter, error) {
	q := r.URL.Query()

	filter := domain.AuditFilter{
		Page:     1,
		PageSize: domain.AuditPageSize,
	}

	if v := q.Get("level"); v != "" {
		level := domain.AuditLevel(v)
		filter.Level = &level
	}
	if v := q.Get("userId"); v != "" {
		filter.UserID = &v
	}
	if v := q.Get("startDate"); v != "" {
		d, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &d
	}
	if v := q.Get("endDate"); v != "" {
		d, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &d
	}
	if v := q.Get("search"); v != "" {
		filter.Search = &v
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		filter.Page = page
	}
	if v := q.Get("pageSize"); v != "" {
		pageSize, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		filter.PageSize = pageSize
	}

	return filter, nil
}

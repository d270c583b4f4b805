package models

import "github.com/m04kA/UCR-ReservationService/internal/domain"

// Request модели

// CreateClassroomRequest запрос на создание аудитории
type CreateClassroomRequest struct {
	Name        string  `json:"name"`
	Capacity    int     `json:"capacity"`
	Description *string `json:"description,omitempty"`
}

// UpdateClassroomRequest запрос на обновление аудитории
type UpdateClassroomRequest struct {
	Name        *string `json:"name,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// Response модели

// ClassroomResponse аудитория в ответе API
type ClassroomResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Capacity    int     `json:"capacity"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`
}

// ClassroomListResponse список аудиторий
type ClassroomListResponse struct {
	Classrooms []ClassroomResponse `json:"classrooms"`
}

// FromDomainClassroom конвертирует domain модель в response
func FromDomainClassroom(c *domain.Classroom) *ClassroomResponse {
	return &ClassroomResponse{
		ID:          c.ID,
		Name:        c.Name,
		Capacity:    c.Capacity,
		Description: c.Description,
		IsActive:    c.IsActive,
	}
}

// FromDomainClassroomList конвертирует список domain моделей в response
func FromDomainClassroomList(classrooms []*domain.Classroom) *ClassroomListResponse {
	result := make([]ClassroomResponse, 0, len(classrooms))
	for _, c := range classrooms {
		result = append(result, *FromDomainClassroom(c))
	}
	return &ClassroomListResponse{Classrooms: result}
}

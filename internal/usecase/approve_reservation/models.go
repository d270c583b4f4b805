package approve_reservation

import "github.com/m04kA/UCR-ReservationService/internal/domain"

// Request модель запроса на одобрение одной резервации
type Request struct {
	ReservationID int64   // ID резервации
	AdminID       int64   // ID администратора, принимающего решение
	AdminNote     *string // Комментарий администратора (опционально)
}

// Response модель ответа об одобрении
type Response struct {
	Reservation   *domain.Reservation // Резервация после решения
	RefusalReason string              // Причина отказа при ErrCannotApprove
}

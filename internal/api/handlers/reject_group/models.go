package reject_group

import (
	rejectGroup "github.com/m04kA/UCR-ReservationService/internal/usecase/reject_group"
)

// RejectGroupResponse HTTP response model
type RejectGroupResponse struct {
	Rejected int `json:"rejected"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rejectGroup.Response) *RejectGroupResponse {
	return &RejectGroupResponse{
		Rejected: resp.Rejected,
	}
}

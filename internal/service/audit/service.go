package audit

import (
	"context"
	"fmt"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
)

// SystemActor идентификатор актора для операций, инициированных самим сервисом
const SystemActor = "SYSTEM"

// Service сервис журнала бизнес-операций.
// Каждая значимая операция (подача заявки, решение администратора, отзыв)
// оставляет запись; ошибки уровня Error дублируются в основной лог
type Service struct {
	auditRepo AuditRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса аудита
func NewService(auditRepo AuditRepository, logger Logger) *Service {
	return &Service{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Record сохраняет запись аудита. Ошибка записи логируется, но не
// пробрасывается: журнал не должен ломать бизнес-операцию
func (s *Service) Record(ctx context.Context, actorID string, operation string, level domain.AuditLevel, details *string) {
	entry := &domain.AuditEntry{
		UserID:    actorID,
		Operation: operation,
		Level:     level,
		IsError:   level == domain.AuditError,
		Details:   details,
	}

	if level == domain.AuditError {
		if details != nil {
			s.logger.Error("Audit: actor=%s operation=%q details=%q", actorID, operation, *details)
		} else {
			s.logger.Error("Audit: actor=%s operation=%q", actorID, operation)
		}
	}

	if _, err := s.auditRepo.Create(ctx, entry); err != nil {
		s.logger.Error("Record: failed to persist audit entry operation=%q: %v", operation, err)
	}
}

// List получает страницу журнала аудита по фильтру
func (s *Service) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, int, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = domain.AuditPageSize
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	entries, total, err := s.auditRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, 0, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return entries, total, nil
}

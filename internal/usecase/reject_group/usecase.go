package reject_group

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/UCR-ReservationService/internal/integrations/mailer"
	"github.com/m04kA/UCR-ReservationService/pkg/ptr"
)

// UseCase use case отклонения всей повторяющейся заявки.
// В отличие от одобрения, отклонение безусловно: повторная валидация слота
// не нужна, затрагиваются только участники в статусе pending
type UseCase struct {
	reservationRepo ReservationRepository
	userRepo        UserRepository
	classroomRepo   ClassroomRepository
	mailerClient    MailerClient
	audit           AuditRecorder
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	userRepo UserRepository,
	classroomRepo ClassroomRepository,
	mailerClient MailerClient,
	audit AuditRecorder,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		classroomRepo:   classroomRepo,
		mailerClient:    mailerClient,
		audit:           audit,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case отклонения группы
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RejectGroup: anchor=%d by admin=%d", req.AnchorID, req.AdminID)

	actor := strconv.FormatInt(req.AdminID, 10)

	// 1. Валидация входных данных
	if req.AnchorID <= 0 {
		return nil, fmt.Errorf("%w: anchorID must be positive", ErrInvalidInput)
	}

	// 2. Получаем якорную резервацию - она задает ключ группы
	anchor, err := uc.reservationRepo.GetByID(ctx, req.AnchorID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("RejectGroup: anchor id=%d not found", req.AnchorID)
			return nil, ErrGroupNotFound
		}
		uc.logger.Error("RejectGroup: failed to get anchor id=%d: %v", req.AnchorID, err)
		return nil, fmt.Errorf("%w: failed to get anchor: %v", ErrInternal, err)
	}

	// 3. Отклоняем всех ожидающих участников в транзакции
	var rejected int
	pending := ptr.Ptr(domain.StatusPending)
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		members, err := uc.reservationRepo.GetGroupMembers(txCtx, anchor, pending)
		if err != nil {
			uc.logger.Error("RejectGroup: failed to get group members: %v", err)
			return fmt.Errorf("%w: failed to get group members: %v", ErrInternal, err)
		}
		if len(members) == 0 {
			return ErrNoPendingMembers
		}

		ids := make([]int64, 0, len(members))
		for _, m := range members {
			ids = append(ids, m.ID)
		}
		if err := uc.reservationRepo.UpdateStatusBatch(txCtx, ids, domain.StatusRejected); err != nil {
			uc.logger.Error("RejectGroup: failed to update statuses: %v", err)
			return fmt.Errorf("%w: failed to update statuses: %v", ErrInternal, err)
		}

		rejected = len(ids)
		return nil
	})
	if errors.Is(err, ErrNoPendingMembers) {
		uc.logger.Warn("RejectGroup: no pending members in group anchor=%d", req.AnchorID)
		return nil, ErrNoPendingMembers
	}
	if err != nil {
		return nil, err
	}

	details := fmt.Sprintf("anchor=%d rejected=%d", req.AnchorID, rejected)
	uc.audit.Record(ctx, actor, "Reservation group rejected", domain.AuditInfo, &details)

	uc.notifyOwner(ctx, anchor, rejected)

	uc.logger.Info("RejectGroup: rejected %d reservation(s) in group anchor=%d", rejected, req.AnchorID)
	return &Response{Rejected: rejected}, nil
}

// notifyOwner отправляет владельцу письмо об отклонении всей заявки.
// Ошибка доставки логируется и не влияет на результат операции
func (uc *UseCase) notifyOwner(ctx context.Context, anchor *domain.Reservation, count int) {
	user, err := uc.userRepo.GetByID(ctx, anchor.UserID)
	if err != nil {
		uc.logger.Error("RejectGroup: failed to get user=%d for notification: %v", anchor.UserID, err)
		return
	}

	classroomName := fmt.Sprintf("#%d", anchor.ClassroomID)
	if classroom, err := uc.classroomRepo.GetByID(ctx, anchor.ClassroomID); err == nil {
		classroomName = classroom.Name
	}

	body := mailer.GroupDecisionBody(classroomName, domain.WeekdayNames[anchor.Weekday], count, false, "")
	if err := uc.mailerClient.Send(user.Email, "Recurring reservation rejected", body); err != nil {
		uc.logger.Error("RejectGroup: failed to send email to user=%d: %v", anchor.UserID, err)
	}
}

package approve_reservation

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/UCR-ReservationService/internal/integrations/mailer"
)

// UseCase use case одобрения одной резервации.
// Одобрение - финальная точка контроля слота: между подачей заявки и
// решением календарь и занятость могли измениться, поэтому обе проверки
// выполняются заново. Проверка занятости здесь строже, чем при подаче:
// учитываются только одобренные конкуренты
type UseCase struct {
	reservationRepo ReservationRepository
	userRepo        UserRepository
	classroomRepo   ClassroomRepository
	holidayClient   HolidayClient
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
	holidayClient HolidayClient,
	mailerClient MailerClient,
	audit AuditRecorder,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		classroomRepo:   classroomRepo,
		holidayClient:   holidayClient,
		mailerClient:    mailerClient,
		audit:           audit,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case одобрения резервации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApproveReservation: reservation=%d by admin=%d", req.ReservationID, req.AdminID)

	actor := strconv.FormatInt(req.AdminID, 10)

	// 1. Валидация входных данных
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.AdminNote != nil && len(*req.AdminNote) > domain.MaxAdminNoteLength {
		return nil, fmt.Errorf("%w: admin note too long", ErrInvalidInput)
	}

	// 2. Получаем резервацию
	reservation, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			details := fmt.Sprintf("reservation=%d", req.ReservationID)
			uc.audit.Record(ctx, actor, "Reservation approval failed: not found", domain.AuditError, &details)

			uc.logger.Warn("ApproveReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("ApproveReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 3. Терминальные статусы - неизменяемая история
	if reservation.IsFinal() {
		uc.logger.Warn("ApproveReservation: reservation id=%d already decided, status=%s",
			req.ReservationID, reservation.Status)
		return nil, ErrAlreadyDecided
	}

	// 4. Повторная проверка праздника - календарь мог обновиться
	isHoliday := uc.holidayClient.IsHoliday(ctx, reservation.StartTime)

	// 5. Проверка занятости и смена статуса в сериализуемой транзакции
	var refusalReason string
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Одобренные конкуренты слота с блокировкой (FOR UPDATE)
		siblings, err := uc.reservationRepo.GetSiblings(txCtx, domain.SiblingsFilter{
			ClassroomID: reservation.ClassroomID,
			TermID:      reservation.TermID,
			Weekday:     reservation.Weekday,
			Statuses:    []domain.ReservationStatus{domain.StatusApproved},
		})
		if err != nil {
			uc.logger.Error("ApproveReservation: failed to get siblings: %v", err)
			return fmt.Errorf("%w: failed to get siblings: %v", ErrInternal, err)
		}

		isConflict := domain.HasApprovedConflict(reservation, siblings)

		// 5.2. Отказ: причины склеиваются, обе проверки всегда выполняются
		if isHoliday || isConflict {
			if isHoliday {
				refusalReason = "The requested date is a public holiday. "
			}
			if isConflict {
				refusalReason += "There is a time conflict with another approved reservation."
			}
			return ErrCannotApprove
		}

		// 5.3. Одобряем
		if err := uc.reservationRepo.UpdateStatus(txCtx, req.ReservationID, domain.StatusApproved, req.AdminNote); err != nil {
			uc.logger.Error("ApproveReservation: failed to update status for id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}
		return nil
	})

	if errors.Is(err, ErrCannotApprove) {
		details := fmt.Sprintf("reservation=%d reason=%q", req.ReservationID, refusalReason)
		uc.audit.Record(ctx, actor, "Reservation approval failed: conflict/holiday", domain.AuditWarning, &details)

		uc.notifyRefusal(ctx, reservation, refusalReason)

		uc.logger.Warn("ApproveReservation: cannot approve reservation id=%d: %s", req.ReservationID, refusalReason)
		return &Response{Reservation: reservation, RefusalReason: refusalReason}, ErrCannotApprove
	}
	if err != nil {
		return nil, err
	}

	reservation.Status = domain.StatusApproved
	reservation.AdminNote = req.AdminNote

	details := fmt.Sprintf("reservation=%d date=%s", req.ReservationID, reservation.StartTime.Format(domain.DateFormat))
	uc.audit.Record(ctx, actor, "Reservation approved", domain.AuditInfo, &details)

	uc.notifyDecision(ctx, reservation)

	uc.logger.Info("ApproveReservation: successfully approved reservation id=%d", req.ReservationID)
	return &Response{Reservation: reservation}, nil
}

// notifyDecision отправляет владельцу письмо об одобрении.
// Ошибка доставки логируется и не влияет на результат операции
func (uc *UseCase) notifyDecision(ctx context.Context, reservation *domain.Reservation) {
	user, err := uc.userRepo.GetByID(ctx, reservation.UserID)
	if err != nil {
		uc.logger.Error("ApproveReservation: failed to get user=%d for notification: %v", reservation.UserID, err)
		return
	}

	note := ""
	if reservation.AdminNote != nil {
		note = *reservation.AdminNote
	}

	body := mailer.DecisionBody(uc.classroomName(ctx, reservation.ClassroomID), reservation.StartTime, true, note)
	if err := uc.mailerClient.Send(user.Email, "Reservation approved", body); err != nil {
		uc.logger.Error("ApproveReservation: failed to send email to user=%d: %v", reservation.UserID, err)
	}
}

// notifyRefusal отправляет владельцу письмо о том, что заявку не удалось
// одобрить, с причиной
func (uc *UseCase) notifyRefusal(ctx context.Context, reservation *domain.Reservation, reason string) {
	user, err := uc.userRepo.GetByID(ctx, reservation.UserID)
	if err != nil {
		uc.logger.Error("ApproveReservation: failed to get user=%d for notification: %v", reservation.UserID, err)
		return
	}

	body := mailer.DecisionBody(uc.classroomName(ctx, reservation.ClassroomID), reservation.StartTime, false, reason)
	if err := uc.mailerClient.Send(user.Email, "Reservation could not be approved", body); err != nil {
		uc.logger.Error("ApproveReservation: failed to send email to user=%d: %v", reservation.UserID, err)
	}
}

func (uc *UseCase) classroomName(ctx context.Context, classroomID int64) string {
	if classroom, err := uc.classroomRepo.GetByID(ctx, classroomID); err == nil {
		return classroom.Name
	}
	return fmt.Sprintf("#%d", classroomID)
}

package approve_group

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/UCR-ReservationService/internal/integrations/mailer"
	"github.com/m04kA/UCR-ReservationService/pkg/ptr"
)

// UseCase use case одобрения всей повторяющейся заявки.
// Решение атомарно: либо все ожидающие даты группы проходят повторную
// валидацию и одобряются, либо ни одна не меняет статус, а ответ
// перечисляет даты, из-за которых одобрение невозможно
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

// Execute выполняет use case одобрения группы
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApproveGroup: anchor=%d by admin=%d", req.AnchorID, req.AdminID)

	actor := strconv.FormatInt(req.AdminID, 10)

	// 1. Валидация входных данных
	if req.AnchorID <= 0 {
		return nil, fmt.Errorf("%w: anchorID must be positive", ErrInvalidInput)
	}

	// 2. Получаем якорную резервацию - она задает ключ группы
	anchor, err := uc.reservationRepo.GetByID(ctx, req.AnchorID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("ApproveGroup: anchor id=%d not found", req.AnchorID)
			return nil, ErrGroupNotFound
		}
		uc.logger.Error("ApproveGroup: failed to get anchor id=%d: %v", req.AnchorID, err)
		return nil, fmt.Errorf("%w: failed to get anchor: %v", ErrInternal, err)
	}

	// 3. Праздничные даты группы - до транзакции, внешний вызов внутри
	// нее держал бы блокировку на время HTTP запроса
	pending := ptr.Ptr(domain.StatusPending)
	members, err := uc.reservationRepo.GetGroupMembers(ctx, anchor, pending)
	if err != nil {
		uc.logger.Error("ApproveGroup: failed to get group members for anchor=%d: %v", req.AnchorID, err)
		return nil, fmt.Errorf("%w: failed to get group members: %v", ErrInternal, err)
	}
	if len(members) == 0 {
		uc.logger.Warn("ApproveGroup: no pending members in group anchor=%d", req.AnchorID)
		return nil, ErrNoPendingMembers
	}

	holidayByDate := make(map[string]bool, len(members))
	for _, m := range members {
		key := m.StartTime.Format(domain.DateFormat)
		if _, ok := holidayByDate[key]; !ok {
			holidayByDate[key] = uc.holidayClient.IsHoliday(ctx, m.StartTime)
		}
	}

	response := &Response{
		HolidayDates:  make([]time.Time, 0),
		ConflictDates: make([]time.Time, 0),
	}

	// 4. Валидация всех участников и смена статусов в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Перечитываем ожидающих участников с блокировкой (FOR UPDATE)
		members, err := uc.reservationRepo.GetGroupMembers(txCtx, anchor, pending)
		if err != nil {
			uc.logger.Error("ApproveGroup: failed to get group members: %v", err)
			return fmt.Errorf("%w: failed to get group members: %v", ErrInternal, err)
		}
		if len(members) == 0 {
			return ErrNoPendingMembers
		}

		// 4.2. Одобренные конкуренты слота с блокировкой
		siblings, err := uc.reservationRepo.GetSiblings(txCtx, domain.SiblingsFilter{
			ClassroomID: anchor.ClassroomID,
			TermID:      anchor.TermID,
			Weekday:     anchor.Weekday,
			Statuses:    []domain.ReservationStatus{domain.StatusApproved},
		})
		if err != nil {
			uc.logger.Error("ApproveGroup: failed to get siblings: %v", err)
			return fmt.Errorf("%w: failed to get siblings: %v", ErrInternal, err)
		}

		// 4.3. Каждый участник проходит обе проверки; сбор причин не
		// прерывается на первой неудаче - ответ должен назвать все даты.
		// Участник, появившийся между предварительным чтением и перечитыванием,
		// отсутствует в карте: его дату проверяем на месте, годовой кеш клиента
		// делает это обращением к памяти в типичном случае
		for _, m := range members {
			key := m.StartTime.Format(domain.DateFormat)
			holiday, known := holidayByDate[key]
			if !known {
				holiday = uc.holidayClient.IsHoliday(txCtx, m.StartTime)
				holidayByDate[key] = holiday
			}
			if holiday {
				response.HolidayDates = append(response.HolidayDates, m.StartTime)
			}
			if domain.HasApprovedConflict(m, siblings) {
				response.ConflictDates = append(response.ConflictDates, m.StartTime)
			}
		}

		if len(response.HolidayDates) > 0 || len(response.ConflictDates) > 0 {
			return ErrCannotApprove
		}

		// 4.4. Все даты чистые - одобряем группу целиком
		ids := make([]int64, 0, len(members))
		for _, m := range members {
			ids = append(ids, m.ID)
		}
		if err := uc.reservationRepo.UpdateStatusBatch(txCtx, ids, domain.StatusApproved); err != nil {
			uc.logger.Error("ApproveGroup: failed to update statuses: %v", err)
			return fmt.Errorf("%w: failed to update statuses: %v", ErrInternal, err)
		}

		response.Approved = len(ids)
		return nil
	})

	if errors.Is(err, ErrNoPendingMembers) {
		return nil, ErrNoPendingMembers
	}
	if errors.Is(err, ErrCannotApprove) {
		details := fmt.Sprintf("anchor=%d holidays=%d conflicts=%d",
			req.AnchorID, len(response.HolidayDates), len(response.ConflictDates))
		uc.audit.Record(ctx, actor, "Group approval failed: conflict/holiday", domain.AuditWarning, &details)

		uc.logger.Warn("ApproveGroup: cannot approve group anchor=%d: %d holiday(s), %d conflict(s)",
			req.AnchorID, len(response.HolidayDates), len(response.ConflictDates))
		return response, ErrCannotApprove
	}
	if err != nil {
		return nil, err
	}

	details := fmt.Sprintf("anchor=%d approved=%d", req.AnchorID, response.Approved)
	uc.audit.Record(ctx, actor, "Reservation group approved", domain.AuditInfo, &details)

	uc.notifyOwner(ctx, anchor, response.Approved)

	uc.logger.Info("ApproveGroup: approved %d reservation(s) in group anchor=%d", response.Approved, req.AnchorID)
	return response, nil
}

// notifyOwner отправляет владельцу письмо об одобрении всей заявки.
// Ошибка доставки логируется и не влияет на результат операции
func (uc *UseCase) notifyOwner(ctx context.Context, anchor *domain.Reservation, count int) {
	user, err := uc.userRepo.GetByID(ctx, anchor.UserID)
	if err != nil {
		uc.logger.Error("ApproveGroup: failed to get user=%d for notification: %v", anchor.UserID, err)
		return
	}

	classroomName := fmt.Sprintf("#%d", anchor.ClassroomID)
	if classroom, err := uc.classroomRepo.GetByID(ctx, anchor.ClassroomID); err == nil {
		classroomName = classroom.Name
	}

	body := mailer.GroupDecisionBody(classroomName, domain.WeekdayNames[anchor.Weekday], count, true, "")
	if err := uc.mailerClient.Send(user.Email, "Recurring reservation approved", body); err != nil {
		uc.logger.Error("ApproveGroup: failed to send email to user=%d: %v", anchor.UserID, err)
	}
}

package submit_reservation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	classroomRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/classroom"
	termRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/term"
	"github.com/m04kA/UCR-ReservationService/internal/integrations/mailer"
)

// UseCase use case подачи повторяющейся заявки на аудиторию.
// Заявка раскрывается в конкретные даты; каждая дата проходит две проверки
// в фиксированном порядке: сначала праздничный календарь, затем занятость
// слота. Прошедшие даты создаются в статусе pending, остальные попадают в
// списки пропущенных
type UseCase struct {
	reservationRepo ReservationRepository
	classroomRepo   ClassroomRepository
	termRepo        TermRepository
	userRepo        UserRepository
	holidayClient   HolidayClient
	mailerClient    MailerClient
	audit           AuditRecorder
	txManager       TransactionManager
	adminEmail      string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	classroomRepo ClassroomRepository,
	termRepo TermRepository,
	userRepo UserRepository,
	holidayClient HolidayClient,
	mailerClient MailerClient,
	audit AuditRecorder,
	txManager TransactionManager,
	adminEmail string,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		classroomRepo:   classroomRepo,
		termRepo:        termRepo,
		userRepo:        userRepo,
		holidayClient:   holidayClient,
		mailerClient:    mailerClient,
		audit:           audit,
		txManager:       txManager,
		adminEmail:      adminEmail,
		logger:          logger,
	}
}

// Execute выполняет use case подачи заявки
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitReservation: user=%d, classroom=%d, weekday=%d, range=%s..%s, window=%s-%s",
		req.UserID, req.ClassroomID, req.Weekday,
		req.RangeStart.Format(domain.DateFormat), req.RangeEnd.Format(domain.DateFormat),
		req.DailyStart, req.DailyEnd)

	actor := strconv.FormatInt(req.UserID, 10)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем аудиторию: существует и активна
	classroom, err := uc.classroomRepo.GetByID(ctx, req.ClassroomID)
	if err != nil {
		if errors.Is(err, classroomRepo.ErrClassroomNotFound) {
			uc.logger.Warn("SubmitReservation: classroom id=%d not found", req.ClassroomID)
			return nil, ErrClassroomNotFound
		}
		uc.logger.Error("SubmitReservation: failed to get classroom id=%d: %v", req.ClassroomID, err)
		return nil, fmt.Errorf("%w: failed to get classroom: %v", ErrInternal, err)
	}
	if !classroom.IsActive {
		uc.logger.Warn("SubmitReservation: classroom id=%d is inactive", req.ClassroomID)
		return nil, ErrClassroomInactive
	}

	// 3. Проверяем семестр: диапазон дат должен целиком лежать внутри него
	if req.TermID != nil {
		term, err := uc.termRepo.GetByID(ctx, *req.TermID)
		if err != nil {
			if errors.Is(err, termRepo.ErrTermNotFound) {
				uc.logger.Warn("SubmitReservation: term id=%d not found", *req.TermID)
				return nil, ErrTermNotFound
			}
			uc.logger.Error("SubmitReservation: failed to get term id=%d: %v", *req.TermID, err)
			return nil, fmt.Errorf("%w: failed to get term: %v", ErrInternal, err)
		}
		if !term.Contains(req.RangeStart, req.RangeEnd) {
			uc.logger.Warn("SubmitReservation: range %s..%s outside term id=%d",
				req.RangeStart.Format(domain.DateFormat), req.RangeEnd.Format(domain.DateFormat), *req.TermID)
			return nil, ErrOutsideTerm
		}
	}

	// 4. Раскрываем заявку в конкретные даты
	occurrences, err := domain.ExpandWeekly(req.Weekday, req.RangeStart, req.RangeEnd, req.DailyStart, req.DailyEnd)
	if err != nil {
		uc.logger.Error("SubmitReservation: expansion failed: %v", err)
		return nil, fmt.Errorf("%w: failed to expand recurrence: %v", ErrInternal, err)
	}

	response := &Response{
		Created:          make([]*domain.Reservation, 0, len(occurrences)),
		SkippedHolidays:  make([]time.Time, 0),
		SkippedConflicts: make([]time.Time, 0),
	}

	// 5. Праздничный фильтр - до транзакции, внешний вызов внутри нее
	// держал бы блокировку на время HTTP запроса
	candidates := make([]domain.Occurrence, 0, len(occurrences))
	for _, occ := range occurrences {
		if uc.holidayClient.IsHoliday(ctx, occ.Date) {
			response.SkippedHolidays = append(response.SkippedHolidays, occ.Date)
			continue
		}
		candidates = append(candidates, occ)
	}

	// 6. Проверка занятости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Снимок конкурентов слота с блокировкой (FOR UPDATE):
		// все не отклоненные резервации того же класса, семестра и дня недели
		siblings, err := uc.reservationRepo.GetSiblings(txCtx, domain.SiblingsFilter{
			ClassroomID: req.ClassroomID,
			TermID:      req.TermID,
			Weekday:     req.Weekday,
			Statuses:    domain.LiveStatuses,
		})
		if err != nil {
			uc.logger.Error("SubmitReservation: failed to get siblings: %v", err)
			return fmt.Errorf("%w: failed to get siblings: %v", ErrInternal, err)
		}

		// 6.2. Отбираем даты со свободным слотом
		toCreate := make([]*domain.Reservation, 0, len(candidates))
		for _, occ := range candidates {
			instance := &domain.Reservation{
				UserID:      req.UserID,
				ClassroomID: req.ClassroomID,
				TermID:      req.TermID,
				Weekday:     req.Weekday,
				RangeStart:  req.RangeStart,
				RangeEnd:    req.RangeEnd,
				StartTime:   occ.StartTime,
				EndTime:     occ.EndTime,
				Status:      domain.StatusPending,
			}
			if domain.HasLiveConflict(instance, siblings) {
				response.SkippedConflicts = append(response.SkippedConflicts, occ.Date)
				continue
			}
			toCreate = append(toCreate, instance)
		}

		if len(toCreate) == 0 {
			return nil
		}

		// 6.3. Сохраняем прошедшие даты одной пачкой
		created, err := uc.reservationRepo.CreateBatch(txCtx, toCreate)
		if err != nil {
			uc.logger.Error("SubmitReservation: failed to create reservations: %v", err)
			return fmt.Errorf("%w: failed to create reservations: %v", ErrInternal, err)
		}

		response.Created = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 7. Ни одной валидной даты - заявка целиком отклонена на входе.
	// Пользователь и администратор все равно получают письма с причинами
	if len(response.Created) == 0 {
		details := fmt.Sprintf("classroom=%d weekday=%d holidays=%d conflicts=%d",
			req.ClassroomID, req.Weekday, len(response.SkippedHolidays), len(response.SkippedConflicts))
		uc.audit.Record(ctx, actor, "Reservation request failed: no valid days", domain.AuditError, &details)

		uc.notifyOutcome(ctx, req, classroom.Name, response)

		uc.logger.Warn("SubmitReservation: no valid days for user=%d, classroom=%d: %d holidays, %d conflicts",
			req.UserID, req.ClassroomID, len(response.SkippedHolidays), len(response.SkippedConflicts))
		return response, ErrNoValidDays
	}

	details := fmt.Sprintf("classroom=%d weekday=%d created=%d holidays=%d conflicts=%d",
		req.ClassroomID, req.Weekday, len(response.Created), len(response.SkippedHolidays), len(response.SkippedConflicts))
	uc.audit.Record(ctx, actor, "Reservation request submitted", domain.AuditInfo, &details)

	uc.notifyOutcome(ctx, req, classroom.Name, response)

	uc.logger.Info("SubmitReservation: created %d reservation(s) for user=%d, skipped %d holiday(s), %d conflict(s)",
		len(response.Created), req.UserID, len(response.SkippedHolidays), len(response.SkippedConflicts))
	return response, nil
}

// notifyOutcome отправляет письма с итогами подачи заявки: пользователю
// и администратору при полном отказе, пользователю итоги и администратору
// извещение о новой заявке при успехе. Ошибка доставки логируется и не
// влияет на результат операции
func (uc *UseCase) notifyOutcome(ctx context.Context, req *Request, classroomName string, resp *Response) {
	user, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("SubmitReservation: failed to get user=%d for notification: %v", req.UserID, err)
		return
	}

	weekdayName := domain.WeekdayNames[req.Weekday]

	if len(resp.Created) == 0 {
		body := mailer.SubmissionFailedBody(classroomName, weekdayName,
			resp.SkippedHolidays, resp.SkippedConflicts)
		uc.send(user.Email, "Reservation request failed", body)
		uc.send(uc.adminEmail, "Reservation request failed", body)
		return
	}

	createdDates := make([]time.Time, 0, len(resp.Created))
	for _, r := range resp.Created {
		createdDates = append(createdDates, r.StartTime)
	}

	userBody := mailer.SubmissionBody(classroomName, weekdayName,
		createdDates, resp.SkippedHolidays, resp.SkippedConflicts)
	uc.send(user.Email, "Reservation request received", userBody)

	adminBody := mailer.NewRequestNoticeBody(user.Email, classroomName, weekdayName, createdDates)
	uc.send(uc.adminEmail, "New reservation request", adminBody)
}

func (uc *UseCase) send(to, subject, body string) {
	if to == "" {
		return
	}
	if err := uc.mailerClient.Send(to, subject, body); err != nil {
		uc.logger.Error("SubmitReservation: failed to send email to %s: %v", to, err)
	}
}

package reservations

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/UCR-ReservationService/internal/integrations/mailer"
	"github.com/m04kA/UCR-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/UCR-ReservationService/pkg/ptr"
)

// Service сервис для работы с резервациями: списки, группы, отмена,
// отклонение и отчет о пересечениях. Одобрение живет в отдельных юзкейсах,
// так как требует повторной валидации слота
type Service struct {
	reservationRepo ReservationRepository
	userRepo        UserRepository
	classroomRepo   ClassroomRepository
	mailerClient    MailerClient
	audit           AuditRecorder
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса резерваций
func NewService(
	reservationRepo ReservationRepository,
	userRepo UserRepository,
	classroomRepo ClassroomRepository,
	mailerClient MailerClient,
	audit AuditRecorder,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		classroomRepo:   classroomRepo,
		mailerClient:    mailerClient,
		audit:           audit,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает резервацию. Пользователь видит только свои резервации,
// администратор - любые
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.ReservationResponse, error) {
	reservation, err := s.getReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && reservation.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// ListByUser получает постраничную историю резерваций пользователя
func (s *Service) ListByUser(ctx context.Context, req *models.ListUserReservationsRequest) (*models.ReservationListResponse, error) {
	filter := domain.UserReservationsFilter{
		UserID:    req.UserID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = domain.DefaultPageSize
	}

	if req.Status != nil {
		status, ok := models.ToDomainStatus(*req.Status)
		if !ok {
			s.logger.Warn("ListByUser: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	reservations, total, err := s.reservationRepo.GetByUserWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(reservations, total, filter.Page, filter.PageSize), nil
}

// ListGroups получает повторяющиеся заявки пользователя как группы.
// Группы - производное представление: они пересобираются из инстансов при
// каждом чтении, агрегатный статус нигде не хранится
func (s *Service) ListGroups(ctx context.Context, userID int64) (*models.GroupListResponse, error) {
	reservations, err := s.reservationRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error("ListGroups: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListGroups - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainGroupList(domain.BuildGroups(reservations)), nil
}

// ListAllGroups получает группы всех пользователей - админское представление
// очереди заявок
func (s *Service) ListAllGroups(ctx context.Context) (*models.GroupListResponse, error) {
	reservations, err := s.reservationRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("ListAllGroups: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAllGroups - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainGroupList(domain.BuildGroups(reservations)), nil
}

// GetGroup получает группу по якорю вместе со всеми участниками
func (s *Service) GetGroup(ctx context.Context, anchorID int64, userID int64, isAdmin bool) (*models.GroupDetailResponse, error) {
	anchor, err := s.getReservation(ctx, "GetGroup", anchorID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && anchor.UserID != userID {
		s.logger.Warn("GetGroup: access denied for user=%d to group anchor=%d", userID, anchorID)
		return nil, ErrAccessDenied
	}

	members, err := s.reservationRepo.GetGroupMembers(ctx, anchor, nil)
	if err != nil {
		s.logger.Error("GetGroup: repository error for anchor=%d: %v", anchorID, err)
		return nil, fmt.Errorf("%w: GetGroup - repository error: %v", ErrInternal, err)
	}

	groups := domain.BuildGroups(members)
	if len(groups) == 0 {
		return nil, ErrReservationNotFound
	}

	memberResponses := make([]models.ReservationResponse, 0, len(members))
	for _, m := range members {
		memberResponses = append(memberResponses, *models.FromDomainReservation(m))
	}

	return &models.GroupDetailResponse{
		Group:   models.FromDomainGroup(groups[0]),
		Members: memberResponses,
	}, nil
}

// CancelInstance отменяет одну резервацию владельца.
// Отменить можно только ожидающую решения: одобренные и отклоненные
// резервации - неизменяемая история
func (s *Service) CancelInstance(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("CancelInstance: cancelling reservation id=%d by user=%d", id, userID)

	reservation, err := s.getReservation(ctx, "CancelInstance", id)
	if err != nil {
		return err
	}

	if reservation.UserID != userID {
		s.logger.Warn("CancelInstance: access denied for user=%d to reservation id=%d", userID, id)
		return ErrAccessDenied
	}
	if !reservation.CanBeCancelled() {
		s.logger.Warn("CancelInstance: reservation id=%d cannot be cancelled, status=%s", id, reservation.Status)
		return ErrCannotCancel
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("CancelInstance: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: CancelInstance - repository error: %v", ErrInternal, err)
	}

	details := fmt.Sprintf("reservation=%d date=%s", id, reservation.StartTime.Format(domain.DateFormat))
	s.audit.Record(ctx, strconv.FormatInt(userID, 10), "CancelReservation", domain.AuditInfo, &details)

	s.logger.Info("CancelInstance: successfully cancelled reservation id=%d", id)
	return nil
}

// CancelGroup отменяет все ожидающие решения резервации группы владельца.
// Участники в терминальных статусах не затрагиваются
func (s *Service) CancelGroup(ctx context.Context, anchorID int64, userID int64) (int, error) {
	s.logger.Info("CancelGroup: cancelling group anchor=%d by user=%d", anchorID, userID)

	anchor, err := s.getReservation(ctx, "CancelGroup", anchorID)
	if err != nil {
		return 0, err
	}

	if anchor.UserID != userID {
		s.logger.Warn("CancelGroup: access denied for user=%d to group anchor=%d", userID, anchorID)
		return 0, ErrAccessDenied
	}

	var cancelled int
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		members, err := s.reservationRepo.GetGroupMembers(ctx, anchor, ptr.Ptr(domain.StatusPending))
		if err != nil {
			return fmt.Errorf("get group members: %w", err)
		}
		if len(members) == 0 {
			return nil
		}

		ids := make([]int64, 0, len(members))
		for _, m := range members {
			ids = append(ids, m.ID)
		}
		if err := s.reservationRepo.DeleteBatch(ctx, ids); err != nil {
			return fmt.Errorf("delete batch: %w", err)
		}

		cancelled = len(ids)
		return nil
	})
	if err != nil {
		s.logger.Error("CancelGroup: transaction error for anchor=%d: %v", anchorID, err)
		return 0, fmt.Errorf("%w: CancelGroup - transaction error: %v", ErrInternal, err)
	}

	details := fmt.Sprintf("anchor=%d cancelled=%d", anchorID, cancelled)
	s.audit.Record(ctx, strconv.FormatInt(userID, 10), "CancelReservationGroup", domain.AuditInfo, &details)

	s.logger.Info("CancelGroup: successfully cancelled %d reservations in group anchor=%d", cancelled, anchorID)
	return cancelled, nil
}

// Reject отклоняет одну резервацию. В отличие от одобрения, отклонение не
// требует повторной валидации слота и допустимо всегда, пока резервация
// ожидает решения
func (s *Service) Reject(ctx context.Context, id int64, req *models.RejectReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Reject: rejecting reservation id=%d by admin=%d", id, req.AdminID)

	reservation, err := s.getReservation(ctx, "Reject", id)
	if err != nil {
		return nil, err
	}

	if reservation.IsFinal() {
		s.logger.Warn("Reject: reservation id=%d already decided, status=%s", id, reservation.Status)
		return nil, ErrAlreadyDecided
	}

	if req.AdminNote != nil && len(*req.AdminNote) > domain.MaxAdminNoteLength {
		return nil, fmt.Errorf("%w: admin note too long", ErrInvalidInput)
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, domain.StatusRejected, req.AdminNote); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Reject: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	reservation.Status = domain.StatusRejected
	reservation.AdminNote = req.AdminNote

	details := fmt.Sprintf("reservation=%d date=%s", id, reservation.StartTime.Format(domain.DateFormat))
	s.audit.Record(ctx, strconv.FormatInt(req.AdminID, 10), "RejectReservation", domain.AuditInfo, &details)

	s.notifyDecision(ctx, reservation, false)

	s.logger.Info("Reject: successfully rejected reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// ConflictReport строит отчет о пересечениях живых резерваций для
// администратора. Отклоненные резервации слот не занимают и в отчет
// не попадают
func (s *Service) ConflictReport(ctx context.Context) (*models.ConflictReportResponse, error) {
	reservations, err := s.reservationRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("ConflictReport: repository error: %v", err)
		return nil, fmt.Errorf("%w: ConflictReport - repository error: %v", ErrInternal, err)
	}

	pairs := domain.FindConflictPairs(reservations)
	s.logger.Info("ConflictReport: found %d overlapping pairs among %d reservations", len(pairs), len(reservations))

	return models.FromDomainConflictPairs(pairs), nil
}

// getReservation достает резервацию, маппя ошибку репозитория на сервисную
func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

// notifyDecision отправляет владельцу письмо о решении.
// Ошибка доставки логируется и не влияет на результат операции
func (s *Service) notifyDecision(ctx context.Context, reservation *domain.Reservation, approved bool) {
	user, err := s.userRepo.GetByID(ctx, reservation.UserID)
	if err != nil {
		s.logger.Error("notifyDecision: failed to get user=%d: %v", reservation.UserID, err)
		return
	}

	classroomName := fmt.Sprintf("#%d", reservation.ClassroomID)
	if classroom, err := s.classroomRepo.GetByID(ctx, reservation.ClassroomID); err == nil {
		classroomName = classroom.Name
	}

	subject := "Reservation rejected"
	if approved {
		subject = "Reservation approved"
	}
	note := ""
	if reservation.AdminNote != nil {
		note = *reservation.AdminNote
	}

	body := mailer.DecisionBody(classroomName, reservation.StartTime, approved, note)
	if err := s.mailerClient.Send(user.Email, subject, body); err != nil {
		s.logger.Error("notifyDecision: failed to send email to user=%d: %v", reservation.UserID, err)
	}
}

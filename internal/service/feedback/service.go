package feedback

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	feedbackRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/feedback"
	"github.com/m04kA/UCR-ReservationService/internal/integrations/mailer"
	"github.com/m04kA/UCR-ReservationService/internal/service/feedback/models"
)

// Service сервис отзывов об аудиториях
type Service struct {
	feedbackRepo    FeedbackRepository
	reservationRepo ReservationRepository
	classroomRepo   ClassroomRepository
	mailerClient    MailerClient
	audit           AuditRecorder
	adminEmail      string
	logger          Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	feedbackRepo FeedbackRepository,
	reservationRepo ReservationRepository,
	classroomRepo ClassroomRepository,
	mailerClient MailerClient,
	audit AuditRecorder,
	adminEmail string,
	logger Logger,
) *Service {
	return &Service{
		feedbackRepo:    feedbackRepo,
		reservationRepo: reservationRepo,
		classroomRepo:   classroomRepo,
		mailerClient:    mailerClient,
		audit:           audit,
		adminEmail:      adminEmail,
		logger:          logger,
	}
}

// Submit создает отзыв. Два инварианта проверяются независимо:
// не больше одного отзыва на пару (аудитория, семестр) от пользователя,
// и отзыв допустим только при наличии одобренной резервации этой пары
func (s *Service) Submit(ctx context.Context, req *models.SubmitFeedbackRequest) (*models.FeedbackResponse, error) {
	s.logger.Info("Submit: user=%d submitting feedback for classroom=%d", req.UserID, req.ClassroomID)

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if len(req.Comment) > domain.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment too long", ErrInvalidInput)
	}

	alreadyLeft, err := s.feedbackRepo.Exists(ctx, req.UserID, req.ClassroomID, req.TermID)
	if err != nil {
		s.logger.Error("Submit: repository error checking existing feedback for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}
	if alreadyLeft {
		s.logger.Warn("Submit: user=%d already left feedback for classroom=%d", req.UserID, req.ClassroomID)
		return nil, ErrAlreadyLeft
	}

	hasApproved, err := s.reservationRepo.HasApprovedForClassroomTerm(ctx, req.UserID, req.ClassroomID, req.TermID)
	if err != nil {
		s.logger.Error("Submit: repository error checking approved reservation for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}
	if !hasApproved {
		s.logger.Warn("Submit: user=%d has no approved reservation for classroom=%d", req.UserID, req.ClassroomID)
		return nil, ErrNoApprovedReservation
	}

	created, err := s.feedbackRepo.Create(ctx, &domain.Feedback{
		UserID:      req.UserID,
		ClassroomID: req.ClassroomID,
		TermID:      req.TermID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	})
	if err != nil {
		s.logger.Error("Submit: repository error creating feedback for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	details := fmt.Sprintf("feedback=%d classroom=%d rating=%d", created.ID, req.ClassroomID, req.Rating)
	s.audit.Record(ctx, strconv.FormatInt(req.UserID, 10), "SubmitFeedback", domain.AuditInfo, &details)

	s.notifyAdmin(ctx, created)

	s.logger.Info("Submit: successfully created feedback id=%d", created.ID)
	return models.FromDomainFeedback(created), nil
}

// Edit редактирует собственный отзыв: рейтинг и комментарий
func (s *Service) Edit(ctx context.Context, id int64, req *models.EditFeedbackRequest) (*models.FeedbackResponse, error) {
	s.logger.Info("Edit: user=%d editing feedback id=%d", req.UserID, id)

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if len(req.Comment) > domain.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment too long", ErrInvalidInput)
	}

	existing, err := s.getFeedback(ctx, "Edit", id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != req.UserID {
		s.logger.Warn("Edit: access denied for user=%d to feedback id=%d", req.UserID, id)
		return nil, ErrAccessDenied
	}

	if err := s.feedbackRepo.Update(ctx, id, req.Rating, req.Comment); err != nil {
		if errors.Is(err, feedbackRepo.ErrFeedbackNotFound) {
			return nil, ErrFeedbackNotFound
		}
		s.logger.Error("Edit: repository error for feedback id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Edit - repository error: %v", ErrInternal, err)
	}

	existing.Rating = req.Rating
	existing.Comment = req.Comment

	s.logger.Info("Edit: successfully updated feedback id=%d", id)
	return models.FromDomainFeedback(existing), nil
}

// ListByUser получает отзывы пользователя
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*models.FeedbackResponse, error) {
	feedbacks, err := s.feedbackRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	result := make([]*models.FeedbackResponse, 0, len(feedbacks))
	for _, f := range feedbacks {
		result = append(result, models.FromDomainFeedback(f))
	}
	return result, nil
}

// List получает админский постраничный список отзывов с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListFeedbackRequest) (*models.FeedbackListResponse, error) {
	filter := req.ToDomainFilter()
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = domain.FeedbackPageSize
	}
	if filter.Rating != nil && (*filter.Rating < domain.MinRating || *filter.Rating > domain.MaxRating) {
		return nil, fmt.Errorf("%w: rating filter out of range", ErrInvalidInput)
	}

	feedbacks, total, err := s.feedbackRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainFeedbackList(feedbacks, total, filter.Page, filter.PageSize), nil
}

// MarkRead помечает отзыв прочитанным - админская операция разбора входящих
func (s *Service) MarkRead(ctx context.Context, id int64, isRead bool) error {
	if err := s.feedbackRepo.MarkRead(ctx, id, isRead); err != nil {
		if errors.Is(err, feedbackRepo.ErrFeedbackNotFound) {
			s.logger.Warn("MarkRead: feedback id=%d not found", id)
			return ErrFeedbackNotFound
		}
		s.logger.Error("MarkRead: repository error for feedback id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}
	return nil
}

// Delete удаляет отзыв. Владелец удаляет свой отзыв, администратор - любой
func (s *Service) Delete(ctx context.Context, id int64, userID int64, isAdmin bool) error {
	s.logger.Info("Delete: deleting feedback id=%d by user=%d", id, userID)

	existing, err := s.getFeedback(ctx, "Delete", id)
	if err != nil {
		return err
	}
	if !isAdmin && existing.UserID != userID {
		s.logger.Warn("Delete: access denied for user=%d to feedback id=%d", userID, id)
		return ErrAccessDenied
	}

	if err := s.feedbackRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, feedbackRepo.ErrFeedbackNotFound) {
			return ErrFeedbackNotFound
		}
		s.logger.Error("Delete: repository error for feedback id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted feedback id=%d", id)
	return nil
}

// getFeedback достает отзыв, маппя ошибку репозитория на сервисную
func (s *Service) getFeedback(ctx context.Context, op string, id int64) (*domain.Feedback, error) {
	feedback, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, feedbackRepo.ErrFeedbackNotFound) {
			s.logger.Warn("%s: feedback id=%d not found", op, id)
			return nil, ErrFeedbackNotFound
		}
		s.logger.Error("%s: repository error for feedback id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return feedback, nil
}

// notifyAdmin отправляет администратору письмо о новом отзыве.
// Ошибка доставки логируется и не влияет на результат операции
func (s *Service) notifyAdmin(ctx context.Context, f *domain.Feedback) {
	if s.adminEmail == "" {
		return
	}

	classroomName := fmt.Sprintf("#%d", f.ClassroomID)
	if classroom, err := s.classroomRepo.GetByID(ctx, f.ClassroomID); err == nil {
		classroomName = classroom.Name
	}

	body := mailer.FeedbackNotificationBody(classroomName, f.Rating, f.Comment)
	if err := s.mailerClient.Send(s.adminEmail, "New classroom feedback", body); err != nil {
		s.logger.Error("notifyAdmin: failed to send email for feedback id=%d: %v", f.ID, err)
	}
}

package terms

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	termRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/term"
	"github.com/m04kA/UCR-ReservationService/internal/service/terms/models"
)

// Service сервис для работы с семестрами
type Service struct {
	termRepo TermRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса семестров
func NewService(termRepo TermRepository, logger Logger) *Service {
	return &Service{
		termRepo: termRepo,
		logger:   logger,
	}
}

// Create создает семестр
func (s *Service) Create(ctx context.Context, req *models.CreateTermRequest) (*models.TermResponse, error) {
	s.logger.Info("Create: creating term name=%q period=%s..%s", req.Name, req.StartDate, req.EndDate)

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	startDate, err := models.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: startDate: %v", ErrInvalidInput, err)
	}
	endDate, err := models.ParseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: endDate: %v", ErrInvalidInput, err)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: endDate must not precede startDate", ErrInvalidInput)
	}

	term := &domain.Term{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
	}

	created, err := s.termRepo.Create(ctx, term)
	if err != nil {
		s.logger.Error("Create: repository error for term name=%q: %v", req.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created term id=%d", created.ID)
	return models.FromDomainTerm(created), nil
}

// GetByID получает семестр по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TermResponse, error) {
	term, err := s.termRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, termRepo.ErrTermNotFound) {
			s.logger.Warn("GetByID: term id=%d not found", id)
			return nil, ErrTermNotFound
		}
		s.logger.Error("GetByID: repository error for term id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTerm(term), nil
}

// List получает все семестры, свежие первыми
func (s *Service) List(ctx context.Context) (*models.TermListResponse, error) {
	terms, err := s.termRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTermList(terms), nil
}

// Update обновляет семестр. Не переданные поля не меняются
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTermRequest) (*models.TermResponse, error) {
	s.logger.Info("Update: updating term id=%d", id)

	term, err := s.termRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, termRepo.ErrTermNotFound) {
			s.logger.Warn("Update: term id=%d not found", id)
			return nil, ErrTermNotFound
		}
		s.logger.Error("Update: repository error for term id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		term.Name = *req.Name
	}
	if req.StartDate != nil {
		startDate, err := models.ParseDate(*req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: startDate: %v", ErrInvalidInput, err)
		}
		term.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := models.ParseDate(*req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: endDate: %v", ErrInvalidInput, err)
		}
		term.EndDate = endDate
	}
	if term.EndDate.Before(term.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not precede startDate", ErrInvalidInput)
	}

	if err := s.termRepo.Update(ctx, term); err != nil {
		if errors.Is(err, termRepo.ErrTermNotFound) {
			return nil, ErrTermNotFound
		}
		s.logger.Error("Update: repository error for term id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated term id=%d", id)
	return models.FromDomainTerm(term), nil
}

// Delete удаляет семестр
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting term id=%d", id)

	if err := s.termRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, termRepo.ErrTermNotFound) {
			s.logger.Warn("Delete: term id=%d not found", id)
			return ErrTermNotFound
		}
		s.logger.Error("Delete: repository error for term id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted term id=%d", id)
	return nil
}

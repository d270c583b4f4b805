package classrooms

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	classroomRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/classroom"
	"github.com/m04kA/UCR-ReservationService/internal/service/classrooms/models"
)

// Service сервис для работы с аудиториями
type Service struct {
	classroomRepo ClassroomRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса аудиторий
func NewService(classroomRepo ClassroomRepository, logger Logger) *Service {
	return &Service{
		classroomRepo: classroomRepo,
		logger:        logger,
	}
}

// Create создает аудиторию
func (s *Service) Create(ctx context.Context, req *models.CreateClassroomRequest) (*models.ClassroomResponse, error) {
	s.logger.Info("Create: creating classroom name=%q capacity=%d", req.Name, req.Capacity)

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Capacity < domain.MinClassroomCapacity || req.Capacity > domain.MaxClassroomCapacity {
		return nil, fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinClassroomCapacity, domain.MaxClassroomCapacity)
	}

	classroom := &domain.Classroom{
		Name:        req.Name,
		Capacity:    req.Capacity,
		Description: req.Description,
		IsActive:    true,
	}

	created, err := s.classroomRepo.Create(ctx, classroom)
	if err != nil {
		s.logger.Error("Create: repository error for classroom name=%q: %v", req.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created classroom id=%d", created.ID)
	return models.FromDomainClassroom(created), nil
}

// GetByID получает аудиторию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ClassroomResponse, error) {
	classroom, err := s.classroomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, classroomRepo.ErrClassroomNotFound) {
			s.logger.Warn("GetByID: classroom id=%d not found", id)
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("GetByID: repository error for classroom id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainClassroom(classroom), nil
}

// List получает список аудиторий.
// activeOnly скрывает выведенные из эксплуатации аудитории -
// режим для форм подачи новых заявок
func (s *Service) List(ctx context.Context, activeOnly bool) (*models.ClassroomListResponse, error) {
	classrooms, err := s.classroomRepo.GetAll(ctx, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainClassroomList(classrooms), nil
}

// Update обновляет атрибуты аудитории. Не переданные поля не меняются
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateClassroomRequest) (*models.ClassroomResponse, error) {
	s.logger.Info("Update: updating classroom id=%d", id)

	classroom, err := s.classroomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, classroomRepo.ErrClassroomNotFound) {
			s.logger.Warn("Update: classroom id=%d not found", id)
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("Update: repository error for classroom id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		classroom.Name = *req.Name
	}
	if req.Capacity != nil {
		if *req.Capacity < domain.MinClassroomCapacity || *req.Capacity > domain.MaxClassroomCapacity {
			return nil, fmt.Errorf("%w: capacity must be between %d and %d",
				ErrInvalidInput, domain.MinClassroomCapacity, domain.MaxClassroomCapacity)
		}
		classroom.Capacity = *req.Capacity
	}
	if req.Description != nil {
		classroom.Description = req.Description
	}
	if req.IsActive != nil {
		classroom.IsActive = *req.IsActive
	}

	if err := s.classroomRepo.Update(ctx, classroom); err != nil {
		if errors.Is(err, classroomRepo.ErrClassroomNotFound) {
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("Update: repository error for classroom id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated classroom id=%d", id)
	return models.FromDomainClassroom(classroom), nil
}

// Delete удаляет аудиторию
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting classroom id=%d", id)

	if err := s.classroomRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, classroomRepo.ErrClassroomNotFound) {
			s.logger.Warn("Delete: classroom id=%d not found", id)
			return ErrClassroomNotFound
		}
		s.logger.Error("Delete: repository error for classroom id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted classroom id=%d", id)
	return nil
}

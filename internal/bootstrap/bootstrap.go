package bootstrap

import (
	"context"
	"fmt"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetAll(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id int64, role domain.UserRole) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Assignment одно назначение роли: пользователю с ID присваивается Role
type Assignment struct {
	UserID int64
	Email  string
	Role   domain.UserRole
}

// ComputeAssignments вычисляет назначения ролей при старте сервиса:
// пользователь с adminEmail становится администратором, остальные без роли -
// преподавателями. Уже расставленные роли не трогаются, поэтому повторный
// запуск не порождает изменений
func ComputeAssignments(users []*domain.User, adminEmail string) []Assignment {
	assignments := make([]Assignment, 0)

	for _, u := range users {
		if u.IsDeleted {
			continue
		}

		var want domain.UserRole
		if adminEmail != "" && u.Email == adminEmail {
			want = domain.RoleAdmin
		} else if u.Role == "" {
			want = domain.RoleInstructor
		} else {
			continue
		}

		if u.Role == want {
			continue
		}

		assignments = append(assignments, Assignment{
			UserID: u.ID,
			Email:  u.Email,
			Role:   want,
		})
	}

	return assignments
}

// Run применяет вычисленные назначения ролей
func Run(ctx context.Context, userRepo UserRepository, adminEmail string, log Logger) error {
	users, err := userRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: get users: %w", err)
	}

	assignments := ComputeAssignments(users, adminEmail)
	if len(assignments) == 0 {
		log.Info("Bootstrap: no role assignments needed, %d users checked", len(users))
		return nil
	}

	for _, a := range assignments {
		if err := userRepo.UpdateRole(ctx, a.UserID, a.Role); err != nil {
			return fmt.Errorf("bootstrap: assign role %s to user %d: %w", a.Role, a.UserID, err)
		}
		log.Info("Bootstrap: assigned role=%s to user=%d email=%s", a.Role, a.UserID, a.Email)
	}

	log.Info("Bootstrap: applied %d role assignment(s)", len(assignments))
	return nil
}

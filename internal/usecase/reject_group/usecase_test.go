package reject_group

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/reservation"
)

type fakeReservationRepo struct {
	byID    map[int64]*domain.Reservation
	members []*domain.Reservation
	batched []int64
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) GetGroupMembers(ctx context.Context, anchor *domain.Reservation, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0, len(f.members))
	for _, m := range f.members {
		if status != nil && m.Status != *status {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

func (f *fakeReservationRepo) UpdateStatusBatch(ctx context.Context, ids []int64, status domain.ReservationStatus) error {
	f.batched = append(f.batched, ids...)
	return nil
}

type fakeUserRepo struct{}

func (fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return &domain.User{ID: id, Email: "prof@example.edu"}, nil
}

type fakeClassroomRepo struct{}

func (fakeClassroomRepo) GetByID(ctx context.Context, id int64) (*domain.Classroom, error) {
	return &domain.Classroom{ID: id, Name: "B-201"}, nil
}

type fakeMailer struct {
	subjects []string
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

type fakeAudit struct {
	levels []domain.AuditLevel
}

func (f *fakeAudit) Record(ctx context.Context, actorID string, operation string, level domain.AuditLevel, details *string) {
	f.levels = append(f.levels, level)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func groupInstance(id int64, day int, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:          id,
		UserID:      1,
		ClassroomID: 10,
		Weekday:     2,
		StartTime:   time.Date(2025, time.September, day, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, time.September, day, 12, 0, 0, 0, time.UTC),
		Status:      status,
	}
}

func newUseCase(repo *fakeReservationRepo, mail *fakeMailer, audit *fakeAudit) *UseCase {
	return NewUseCase(repo, fakeUserRepo{}, fakeClassroomRepo{}, mail, audit, fakeTxManager{}, nopLogger{})
}

func TestExecute_RejectsPendingMembers(t *testing.T) {
	repo := &fakeReservationRepo{
		byID: map[int64]*domain.Reservation{1: groupInstance(1, 2, domain.StatusPending)},
		members: []*domain.Reservation{
			groupInstance(1, 2, domain.StatusPending),
			groupInstance(2, 9, domain.StatusPending),
			groupInstance(3, 16, domain.StatusApproved),
		},
	}
	mail := &fakeMailer{}
	audit := &fakeAudit{}

	resp, err := newUseCase(repo, mail, audit).Execute(context.Background(), &Request{AnchorID: 1, AdminID: 2})
	require.NoError(t, err)

	// Отклонение безусловно, но затрагивает только ожидающих участников
	assert.Equal(t, 2, resp.Rejected)
	assert.ElementsMatch(t, []int64{1, 2}, repo.batched)
	require.Equal(t, []domain.AuditLevel{domain.AuditInfo}, audit.levels)
	require.Equal(t, []string{"Recurring reservation rejected"}, mail.subjects)
}

func TestExecute_NoPendingMembers(t *testing.T) {
	repo := &fakeReservationRepo{
		byID: map[int64]*domain.Reservation{1: groupInstance(1, 2, domain.StatusApproved)},
		members: []*domain.Reservation{
			groupInstance(1, 2, domain.StatusApproved),
		},
	}

	_, err := newUseCase(repo, &fakeMailer{}, &fakeAudit{}).Execute(context.Background(), &Request{AnchorID: 1, AdminID: 2})
	require.ErrorIs(t, err, ErrNoPendingMembers)
	assert.Empty(t, repo.batched)
}

func TestExecute_AnchorNotFound(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{}}

	_, err := newUseCase(repo, &fakeMailer{}, &fakeAudit{}).Execute(context.Background(), &Request{AnchorID: 404, AdminID: 2})
	require.ErrorIs(t, err, ErrGroupNotFound)
}

func TestExecute_InvalidAnchor(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{}}

	_, err := newUseCase(repo, &fakeMailer{}, &fakeAudit{}).Execute(context.Background(), &Request{AnchorID: 0, AdminID: 2})
	require.ErrorIs(t, err, ErrInvalidInput)
}

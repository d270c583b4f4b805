package approve_reservation

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
	byID     map[int64]*domain.Reservation
	siblings []*domain.Reservation
	updated  map[int64]domain.ReservationStatus
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) GetSiblings(ctx context.Context, filter domain.SiblingsFilter) ([]*domain.Reservation, error) {
	return f.siblings, nil
}

func (f *fakeReservationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, note *string) error {
	if f.updated == nil {
		f.updated = make(map[int64]domain.ReservationStatus)
	}
	f.updated[id] = status
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

type fakeHolidayClient struct {
	holidays map[string]struct{}
}

func (f *fakeHolidayClient) IsHoliday(ctx context.Context, date time.Time) bool {
	_, ok := f.holidays[date.Format(domain.DateFormat)]
	return ok
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

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func pendingReservation(id int64) *domain.Reservation {
	return &domain.Reservation{
		ID:          id,
		UserID:      1,
		ClassroomID: 10,
		Weekday:     2,
		StartTime:   time.Date(2025, time.September, 2, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, time.September, 2, 12, 0, 0, 0, time.UTC),
		Status:      domain.StatusPending,
	}
}

type fixture struct {
	uc            *UseCase
	reservations  *fakeReservationRepo
	holidayClient *fakeHolidayClient
	mailer        *fakeMailer
	audit         *fakeAudit
}

func newFixture(target *domain.Reservation) *fixture {
	reservations := &fakeReservationRepo{byID: map[int64]*domain.Reservation{target.ID: target}}
	holidays := &fakeHolidayClient{holidays: map[string]struct{}{}}
	mail := &fakeMailer{}
	audit := &fakeAudit{}

	uc := NewUseCase(reservations, fakeUserRepo{}, fakeClassroomRepo{}, holidays, mail, audit, fakeTxManager{}, nopLogger{})

	return &fixture{uc: uc, reservations: reservations, holidayClient: holidays, mailer: mail, audit: audit}
}

func TestExecute_Approves(t *testing.T) {
	f := newFixture(pendingReservation(5))

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 5, AdminID: 2})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusApproved, resp.Reservation.Status)
	assert.Empty(t, resp.RefusalReason)
	assert.Equal(t, domain.StatusApproved, f.reservations.updated[5])
	require.Equal(t, []domain.AuditLevel{domain.AuditInfo}, f.audit.levels)
	require.Equal(t, []string{"Reservation approved"}, f.mailer.subjects)
}

func TestExecute_RefusesOnHoliday(t *testing.T) {
	f := newFixture(pendingReservation(5))
	f.holidayClient.holidays["2025-09-02"] = struct{}{}

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 5, AdminID: 2})
	require.ErrorIs(t, err, ErrCannotApprove)

	require.NotNil(t, resp)
	assert.Equal(t, "The requested date is a public holiday. ", resp.RefusalReason)
	assert.Empty(t, f.reservations.updated)
	require.Equal(t, []domain.AuditLevel{domain.AuditWarning}, f.audit.levels)
}

func TestExecute_RefusesOnApprovedConflict(t *testing.T) {
	f := newFixture(pendingReservation(5))
	f.reservations.siblings = []*domain.Reservation{{
		ID:          99,
		ClassroomID: 10,
		Weekday:     2,
		StartTime:   time.Date(2025, time.September, 2, 11, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, time.September, 2, 13, 0, 0, 0, time.UTC),
		Status:      domain.StatusApproved,
	}}

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 5, AdminID: 2})
	require.ErrorIs(t, err, ErrCannotApprove)
	assert.Equal(t, "There is a time conflict with another approved reservation.", resp.RefusalReason)
}

func TestExecute_RefusalReasonsConcatenate(t *testing.T) {
	f := newFixture(pendingReservation(5))
	f.holidayClient.holidays["2025-09-02"] = struct{}{}
	f.reservations.siblings = []*domain.Reservation{{
		ID:          99,
		ClassroomID: 10,
		Weekday:     2,
		StartTime:   time.Date(2025, time.September, 2, 11, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, time.September, 2, 13, 0, 0, 0, time.UTC),
		Status:      domain.StatusApproved,
	}}

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 5, AdminID: 2})
	require.ErrorIs(t, err, ErrCannotApprove)
	assert.Equal(t,
		"The requested date is a public holiday. There is a time conflict with another approved reservation.",
		resp.RefusalReason)
}

func TestExecute_PendingSiblingDoesNotBlock(t *testing.T) {
	f := newFixture(pendingReservation(5))
	// Конкурент со статусом pending занятость при одобрении не создает
	f.reservations.siblings = []*domain.Reservation{{
		ID:          99,
		ClassroomID: 10,
		Weekday:     2,
		StartTime:   time.Date(2025, time.September, 2, 11, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, time.September, 2, 13, 0, 0, 0, time.UTC),
		Status:      domain.StatusPending,
	}}

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 5, AdminID: 2})
	require.NoError(t, err)
}

func TestExecute_AlreadyDecided(t *testing.T) {
	decided := pendingReservation(5)
	decided.Status = domain.StatusRejected
	f := newFixture(decided)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 5, AdminID: 2})
	require.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(pendingReservation(5))

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 404, AdminID: 2})
	require.ErrorIs(t, err, ErrReservationNotFound)
	require.Equal(t, []domain.AuditLevel{domain.AuditError}, f.audit.levels)
}

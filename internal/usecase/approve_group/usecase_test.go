package approve_group

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
	members  []*domain.Reservation
	siblings []*domain.Reservation
	batched  []int64
	// lateMembers видны только начиная со второго чтения группы:
	// имитация вставки между предварительным чтением и перечитыванием
	lateMembers []*domain.Reservation
	groupReads  int
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) GetGroupMembers(ctx context.Context, anchor *domain.Reservation, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	f.groupReads++
	source := f.members
	if f.groupReads > 1 {
		source = append(source, f.lateMembers...)
	}
	result := make([]*domain.Reservation, 0, len(source))
	for _, m := range source {
		if status != nil && m.Status != *status {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

func (f *fakeReservationRepo) GetSiblings(ctx context.Context, filter domain.SiblingsFilter) ([]*domain.Reservation, error) {
	return f.siblings, nil
}

func (f *fakeReservationRepo) UpdateStatusBatch(ctx context.Context, ids []int64, status domain.ReservationStatus) error {
	f.batched = append(f.batched, ids...)
	for _, m := range f.members {
		for _, id := range ids {
			if m.ID == id {
				m.Status = status
			}
		}
	}
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

func groupInstance(id int64, day int, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:          id,
		UserID:      1,
		ClassroomID: 10,
		Weekday:     2,
		RangeStart:  time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:    time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC),
		StartTime:   time.Date(2025, time.September, day, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, time.September, day, 12, 0, 0, 0, time.UTC),
		Status:      status,
	}
}

type fixture struct {
	uc            *UseCase
	reservations  *fakeReservationRepo
	holidayClient *fakeHolidayClient
	mailer        *fakeMailer
	audit         *fakeAudit
}

func newFixture(members ...*domain.Reservation) *fixture {
	byID := make(map[int64]*domain.Reservation, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	reservations := &fakeReservationRepo{byID: byID, members: members}
	holidays := &fakeHolidayClient{holidays: map[string]struct{}{}}
	mail := &fakeMailer{}
	audit := &fakeAudit{}

	uc := NewUseCase(reservations, fakeUserRepo{}, fakeClassroomRepo{}, holidays, mail, audit, fakeTxManager{}, nopLogger{})

	return &fixture{uc: uc, reservations: reservations, holidayClient: holidays, mailer: mail, audit: audit}
}

func TestExecute_ApprovesWholeGroup(t *testing.T) {
	f := newFixture(
		groupInstance(1, 2, domain.StatusPending),
		groupInstance(2, 9, domain.StatusPending),
		groupInstance(3, 16, domain.StatusPending),
	)

	resp, err := f.uc.Execute(context.Background(), &Request{AnchorID: 1, AdminID: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Approved)
	assert.ElementsMatch(t, []int64{1, 2, 3}, f.reservations.batched)
	require.Equal(t, []domain.AuditLevel{domain.AuditInfo}, f.audit.levels)
	require.Equal(t, []string{"Recurring reservation approved"}, f.mailer.subjects)
}

func TestExecute_AllOrNothing(t *testing.T) {
	f := newFixture(
		groupInstance(1, 2, domain.StatusPending),
		groupInstance(2, 9, domain.StatusPending),
	)
	// Одна дата - праздник: группа остается нетронутой целиком
	f.holidayClient.holidays["2025-09-09"] = struct{}{}

	resp, err := f.uc.Execute(context.Background(), &Request{AnchorID: 1, AdminID: 2})
	require.ErrorIs(t, err, ErrCannotApprove)

	require.NotNil(t, resp)
	assert.Zero(t, resp.Approved)
	require.Len(t, resp.HolidayDates, 1)
	assert.Equal(t, "2025-09-09", resp.HolidayDates[0].Format(domain.DateFormat))

	assert.Empty(t, f.reservations.batched, "no statuses may change on refusal")
	require.Equal(t, []domain.AuditLevel{domain.AuditWarning}, f.audit.levels)
}

func TestExecute_CollectsAllFailingDates(t *testing.T) {
	f := newFixture(
		groupInstance(1, 2, domain.StatusPending),
		groupInstance(2, 9, domain.StatusPending),
		groupInstance(3, 16, domain.StatusPending),
	)
	f.holidayClient.holidays["2025-09-02"] = struct{}{}
	f.reservations.siblings = []*domain.Reservation{
		{
			ID:          90,
			ClassroomID: 10,
			Weekday:     2,
			StartTime:   time.Date(2025, time.September, 9, 11, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2025, time.September, 9, 13, 0, 0, 0, time.UTC),
			Status:      domain.StatusApproved,
		},
		{
			ID:          91,
			ClassroomID: 10,
			Weekday:     2,
			StartTime:   time.Date(2025, time.September, 16, 11, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2025, time.September, 16, 13, 0, 0, 0, time.UTC),
			Status:      domain.StatusApproved,
		},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{AnchorID: 1, AdminID: 2})
	require.ErrorIs(t, err, ErrCannotApprove)

	// Сбор причин не останавливается на первой неудаче
	require.Len(t, resp.HolidayDates, 1)
	require.Len(t, resp.ConflictDates, 2)
}

func TestExecute_LateMemberHolidayChecked(t *testing.T) {
	f := newFixture(
		groupInstance(1, 2, domain.StatusPending),
		groupInstance(2, 9, domain.StatusPending),
	)
	// Участник на праздничную дату вставлен между предварительным чтением
	// и перечитыванием в транзакции: карты праздников для него нет
	f.reservations.lateMembers = []*domain.Reservation{groupInstance(3, 16, domain.StatusPending)}
	f.holidayClient.holidays["2025-09-16"] = struct{}{}

	resp, err := f.uc.Execute(context.Background(), &Request{AnchorID: 1, AdminID: 2})
	require.ErrorIs(t, err, ErrCannotApprove)

	require.Len(t, resp.HolidayDates, 1)
	assert.Equal(t, "2025-09-16", resp.HolidayDates[0].Format(domain.DateFormat))
	assert.Empty(t, f.reservations.batched)
}

func TestExecute_OnlyPendingMembersApproved(t *testing.T) {
	f := newFixture(
		groupInstance(1, 2, domain.StatusPending),
		groupInstance(2, 9, domain.StatusRejected),
	)

	resp, err := f.uc.Execute(context.Background(), &Request{AnchorID: 1, AdminID: 2})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Approved)
	assert.Equal(t, []int64{1}, f.reservations.batched)
}

func TestExecute_NoPendingMembers(t *testing.T) {
	f := newFixture(
		groupInstance(1, 2, domain.StatusApproved),
		groupInstance(2, 9, domain.StatusRejected),
	)

	_, err := f.uc.Execute(context.Background(), &Request{AnchorID: 1, AdminID: 2})
	require.ErrorIs(t, err, ErrNoPendingMembers)
}

func TestExecute_AnchorNotFound(t *testing.T) {
	f := newFixture(groupInstance(1, 2, domain.StatusPending))

	_, err := f.uc.Execute(context.Background(), &Request{AnchorID: 404, AdminID: 2})
	require.ErrorIs(t, err, ErrGroupNotFound)
}

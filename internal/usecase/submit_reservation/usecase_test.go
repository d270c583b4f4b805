package submit_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	classroomRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/classroom"
	"github.com/m04kA/UCR-ReservationService/pkg/types"
)

type fakeReservationRepo struct {
	siblings []*domain.Reservation
	created  []*domain.Reservation
	nextID   int64
}

func (f *fakeReservationRepo) CreateBatch(ctx context.Context, instances []*domain.Reservation) ([]*domain.Reservation, error) {
	for _, r := range instances {
		f.nextID++
		r.ID = f.nextID
	}
	f.created = append(f.created, instances...)
	return instances, nil
}

func (f *fakeReservationRepo) GetSiblings(ctx context.Context, filter domain.SiblingsFilter) ([]*domain.Reservation, error) {
	return f.siblings, nil
}

type fakeClassroomRepo struct {
	classroom *domain.Classroom
}

func (f *fakeClassroomRepo) GetByID(ctx context.Context, id int64) (*domain.Classroom, error) {
	if f.classroom == nil {
		return nil, classroomRepo.ErrClassroomNotFound
	}
	return f.classroom, nil
}

type fakeTermRepo struct {
	term *domain.Term
}

func (f *fakeTermRepo) GetByID(ctx context.Context, id int64) (*domain.Term, error) {
	return f.term, nil
}

type fakeUserRepo struct{}

func (fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return &domain.User{ID: id, Email: "prof@example.edu", Role: domain.RoleInstructor}, nil
}

type fakeHolidayClient struct {
	holidays map[string]struct{}
}

func (f *fakeHolidayClient) IsHoliday(ctx context.Context, date time.Time) bool {
	_, ok := f.holidays[date.Format(domain.DateFormat)]
	return ok
}

type fakeMailer struct {
	sent       []string
	recipients []string
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	f.sent = append(f.sent, subject)
	f.recipients = append(f.recipients, to)
	return nil
}

type fakeAudit struct {
	operations []string
	levels     []domain.AuditLevel
}

func (f *fakeAudit) Record(ctx context.Context, actorID string, operation string, level domain.AuditLevel, details *string) {
	f.operations = append(f.operations, operation)
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

type fixture struct {
	uc            *UseCase
	reservations  *fakeReservationRepo
	holidayClient *fakeHolidayClient
	mailer        *fakeMailer
	audit         *fakeAudit
}

func newFixture() *fixture {
	reservations := &fakeReservationRepo{}
	holidays := &fakeHolidayClient{holidays: map[string]struct{}{}}
	mail := &fakeMailer{}
	audit := &fakeAudit{}

	uc := NewUseCase(
		reservations,
		&fakeClassroomRepo{classroom: &domain.Classroom{ID: 10, Name: "B-201", Capacity: 40, IsActive: true}},
		&fakeTermRepo{},
		fakeUserRepo{},
		holidays,
		mail,
		audit,
		fakeTxManager{},
		"facilities@example.edu",
		nopLogger{},
	)

	return &fixture{
		uc:            uc,
		reservations:  reservations,
		holidayClient: holidays,
		mailer:        mail,
		audit:         audit,
	}
}

func validRequest() *Request {
	return &Request{
		UserID:      1,
		ClassroomID: 10,
		Weekday:     2, // вторник
		RangeStart:  time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:    time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC),
		DailyStart:  types.TimeString("10:00"),
		DailyEnd:    types.TimeString("12:00"),
	}
}

func TestExecute_CreatesAllOccurrences(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Вторники сентября 2025: 2, 9, 16, 23, 30
	require.Len(t, resp.Created, 5)
	assert.Empty(t, resp.SkippedHolidays)
	assert.Empty(t, resp.SkippedConflicts)

	for _, r := range resp.Created {
		assert.Equal(t, domain.StatusPending, r.Status)
		assert.False(t, r.IsHoliday)
		assert.Nil(t, r.ConflictReason)
	}

	// Пользователю итоги, администратору извещение о новой заявке
	require.Equal(t, []string{"Reservation request received", "New reservation request"}, f.mailer.sent)
	require.Equal(t, []string{"prof@example.edu", "facilities@example.edu"}, f.mailer.recipients)
	require.Equal(t, []domain.AuditLevel{domain.AuditInfo}, f.audit.levels)
}

func TestExecute_SkipsHolidaysBeforeConflicts(t *testing.T) {
	f := newFixture()
	// 2 сентября - праздник и одновременно конфликт: выигрывает праздник
	f.holidayClient.holidays["2025-09-02"] = struct{}{}
	f.reservations.siblings = []*domain.Reservation{{
		ID:          99,
		ClassroomID: 10,
		Weekday:     2,
		StartTime:   time.Date(2025, time.September, 2, 11, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, time.September, 2, 13, 0, 0, 0, time.UTC),
		Status:      domain.StatusApproved,
	}}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, resp.Created, 4)
	require.Len(t, resp.SkippedHolidays, 1)
	assert.Equal(t, "2025-09-02", resp.SkippedHolidays[0].Format(domain.DateFormat))
	assert.Empty(t, resp.SkippedConflicts)
}

func TestExecute_SkipsConflictDates(t *testing.T) {
	f := newFixture()
	// Pending сосед 9 сентября тоже занимает слот
	f.reservations.siblings = []*domain.Reservation{{
		ID:          99,
		ClassroomID: 10,
		Weekday:     2,
		StartTime:   time.Date(2025, time.September, 9, 10, 30, 0, 0, time.UTC),
		EndTime:     time.Date(2025, time.September, 9, 11, 30, 0, 0, time.UTC),
		Status:      domain.StatusPending,
	}}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, resp.Created, 4)
	require.Len(t, resp.SkippedConflicts, 1)
	assert.Equal(t, "2025-09-09", resp.SkippedConflicts[0].Format(domain.DateFormat))
}

func TestExecute_NoValidDays(t *testing.T) {
	f := newFixture()
	req := validRequest()
	// Единственный вторник диапазона - праздник
	req.RangeEnd = time.Date(2025, time.September, 7, 0, 0, 0, 0, time.UTC)
	f.holidayClient.holidays["2025-09-02"] = struct{}{}

	resp, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrNoValidDays)

	// Ответ не пустой: он несет списки пропущенных дат
	require.NotNil(t, resp)
	assert.Empty(t, resp.Created)
	require.Len(t, resp.SkippedHolidays, 1)

	assert.Empty(t, f.reservations.created)
	require.Equal(t, []domain.AuditLevel{domain.AuditError}, f.audit.levels)

	// Полный отказ тоже сопровождается письмами: пользователю и администратору
	require.Equal(t, []string{"Reservation request failed", "Reservation request failed"}, f.mailer.sent)
	require.Equal(t, []string{"prof@example.edu", "facilities@example.edu"}, f.mailer.recipients)
}

func TestExecute_AllDatesHolidays_NotifiesUserAndAdmin(t *testing.T) {
	f := newFixture()
	// Все пять вторников сентября объявлены праздниками
	for _, d := range []string{"2025-09-02", "2025-09-09", "2025-09-16", "2025-09-23", "2025-09-30"} {
		f.holidayClient.holidays[d] = struct{}{}
	}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrNoValidDays)

	require.NotNil(t, resp)
	require.Len(t, resp.SkippedHolidays, 5)
	assert.Empty(t, resp.Created)
	assert.Empty(t, f.reservations.created)

	require.Equal(t, []string{"Reservation request failed", "Reservation request failed"}, f.mailer.sent)
	require.Equal(t, []string{"prof@example.edu", "facilities@example.edu"}, f.mailer.recipients)
}

func TestExecute_InvertedDailyWindow(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.DailyStart = types.TimeString("12:00")
	req.DailyEnd = types.TimeString("10:00")

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.reservations.created)
}

func TestExecute_InactiveClassroom(t *testing.T) {
	f := newFixture()
	f.uc.classroomRepo = &fakeClassroomRepo{classroom: &domain.Classroom{ID: 10, Name: "B-201", IsActive: false}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrClassroomInactive)
}

func TestExecute_ClassroomNotFound(t *testing.T) {
	f := newFixture()
	f.uc.classroomRepo = &fakeClassroomRepo{}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrClassroomNotFound)
}

func TestExecute_RangeOutsideTerm(t *testing.T) {
	f := newFixture()
	termID := int64(1)
	f.uc.termRepo = &fakeTermRepo{term: &domain.Term{
		ID:        1,
		Name:      "Fall 2025",
		StartDate: time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.December, 19, 0, 0, 0, 0, time.UTC),
	}}

	req := validRequest()
	req.TermID = &termID

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrOutsideTerm)
}

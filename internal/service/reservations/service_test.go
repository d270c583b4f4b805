package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/UCR-ReservationService/internal/service/reservations/models"
)

type fakeReservationRepo struct {
	byID    map[int64]*domain.Reservation
	all     []*domain.Reservation
	deleted []int64
	updated map[int64]domain.ReservationStatus
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) GetByUser(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, r := range f.all {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) GetByUserWithFilter(ctx context.Context, filter domain.UserReservationsFilter) ([]*domain.Reservation, int, error) {
	list, _ := f.GetByUser(ctx, filter.UserID)
	return list, len(list), nil
}

func (f *fakeReservationRepo) GetAll(ctx context.Context) ([]*domain.Reservation, error) {
	return f.all, nil
}

func (f *fakeReservationRepo) GetGroupMembers(ctx context.Context, anchor *domain.Reservation, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	members := domain.GroupMembers(anchor, f.all)
	if status == nil {
		return members, nil
	}
	filtered := make([]*domain.Reservation, 0, len(members))
	for _, m := range members {
		if m.Status == *status {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

func (f *fakeReservationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, note *string) error {
	if f.updated == nil {
		f.updated = make(map[int64]domain.ReservationStatus)
	}
	f.updated[id] = status
	return nil
}

func (f *fakeReservationRepo) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeReservationRepo) DeleteBatch(ctx context.Context, ids []int64) error {
	f.deleted = append(f.deleted, ids...)
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

type fakeMailer struct{}

func (fakeMailer) Send(to, subject, htmlBody string) error { return nil }

type fakeAudit struct{}

func (fakeAudit) Record(ctx context.Context, actorID string, operation string, level domain.AuditLevel, details *string) {
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func instance(id, userID int64, day int, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:          id,
		UserID:      userID,
		ClassroomID: 10,
		Weekday:     2,
		RangeStart:  time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:    time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC),
		StartTime:   time.Date(2025, time.September, day, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, time.September, day, 12, 0, 0, 0, time.UTC),
		Status:      status,
		CreatedAt:   time.Now(),
	}
}

func newService(repo *fakeReservationRepo) *Service {
	return NewService(repo, fakeUserRepo{}, fakeClassroomRepo{}, fakeMailer{}, fakeAudit{}, fakeTxManager{}, nopLogger{})
}

func repoWith(instances ...*domain.Reservation) *fakeReservationRepo {
	byID := make(map[int64]*domain.Reservation, len(instances))
	for _, r := range instances {
		byID[r.ID] = r
	}
	return &fakeReservationRepo{byID: byID, all: instances}
}

func TestGetByID_OwnershipCheck(t *testing.T) {
	repo := repoWith(instance(1, 7, 2, domain.StatusPending))
	svc := newService(repo)

	_, err := svc.GetByID(context.Background(), 1, 7, false)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, 42, false)
	require.ErrorIs(t, err, ErrAccessDenied)

	// Администратор видит любые резервации
	_, err = svc.GetByID(context.Background(), 1, 42, true)
	require.NoError(t, err)
}

func TestCancelInstance(t *testing.T) {
	t.Run("pending own reservation", func(t *testing.T) {
		repo := repoWith(instance(1, 7, 2, domain.StatusPending))
		svc := newService(repo)

		require.NoError(t, svc.CancelInstance(context.Background(), 1, 7))
		assert.Equal(t, []int64{1}, repo.deleted)
	})

	t.Run("approved is immutable history", func(t *testing.T) {
		repo := repoWith(instance(1, 7, 2, domain.StatusApproved))
		svc := newService(repo)

		err := svc.CancelInstance(context.Background(), 1, 7)
		require.ErrorIs(t, err, ErrCannotCancel)
		assert.Empty(t, repo.deleted)
	})

	t.Run("stranger denied", func(t *testing.T) {
		repo := repoWith(instance(1, 7, 2, domain.StatusPending))
		svc := newService(repo)

		err := svc.CancelInstance(context.Background(), 1, 42)
		require.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestCancelGroup_DeletesOnlyPending(t *testing.T) {
	repo := repoWith(
		instance(1, 7, 2, domain.StatusPending),
		instance(2, 7, 9, domain.StatusApproved),
		instance(3, 7, 16, domain.StatusPending),
	)
	svc := newService(repo)

	cancelled, err := svc.CancelGroup(context.Background(), 1, 7)
	require.NoError(t, err)

	assert.Equal(t, 2, cancelled)
	assert.ElementsMatch(t, []int64{1, 3}, repo.deleted)
}

func TestReject(t *testing.T) {
	t.Run("pending rejected with note", func(t *testing.T) {
		repo := repoWith(instance(1, 7, 2, domain.StatusPending))
		svc := newService(repo)
		note := "Room under renovation"

		resp, err := svc.Reject(context.Background(), 1, &models.RejectReservationRequest{AdminID: 2, AdminNote: &note})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusRejected), resp.Status)
		require.NotNil(t, resp.AdminNote)
		assert.Equal(t, note, *resp.AdminNote)
		assert.Equal(t, domain.StatusRejected, repo.updated[1])
	})

	t.Run("terminal status guarded", func(t *testing.T) {
		repo := repoWith(instance(1, 7, 2, domain.StatusApproved))
		svc := newService(repo)

		_, err := svc.Reject(context.Background(), 1, &models.RejectReservationRequest{AdminID: 2})
		require.ErrorIs(t, err, ErrAlreadyDecided)
	})
}

func TestListGroups_DerivedView(t *testing.T) {
	repo := repoWith(
		instance(1, 7, 2, domain.StatusPending),
		instance(2, 7, 9, domain.StatusPending),
		instance(3, 42, 2, domain.StatusApproved),
	)
	svc := newService(repo)

	resp, err := svc.ListGroups(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, resp.Groups, 1)
	assert.Equal(t, int64(1), resp.Groups[0].AnchorID)
	assert.Equal(t, 2, resp.Groups[0].Count)
	assert.Equal(t, string(domain.GroupPending), resp.Groups[0].Status)
}

func TestConflictReport(t *testing.T) {
	overlapping := instance(2, 42, 2, domain.StatusPending)
	overlapping.StartTime = time.Date(2025, time.September, 2, 11, 0, 0, 0, time.UTC)
	overlapping.EndTime = time.Date(2025, time.September, 2, 13, 0, 0, 0, time.UTC)

	repo := repoWith(
		instance(1, 7, 2, domain.StatusApproved),
		overlapping,
	)
	svc := newService(repo)

	resp, err := svc.ConflictReport(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Pairs, 1)
	assert.Equal(t, "11:00", resp.Pairs[0].OverlapStart)
	assert.Equal(t, "12:00", resp.Pairs[0].OverlapEnd)
}

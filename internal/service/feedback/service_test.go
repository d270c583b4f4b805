package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	feedbackRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/feedback"
	"github.com/m04kA/UCR-ReservationService/internal/service/feedback/models"
)

type fakeFeedbackRepo struct {
	existing map[int64]*domain.Feedback
	exists   bool
	nextID   int64
	deleted  []int64
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, fb *domain.Feedback) (*domain.Feedback, error) {
	f.nextID++
	fb.ID = f.nextID
	fb.CreatedAt = time.Now()
	if f.existing == nil {
		f.existing = make(map[int64]*domain.Feedback)
	}
	f.existing[fb.ID] = fb
	return fb, nil
}

func (f *fakeFeedbackRepo) GetByID(ctx context.Context, id int64) (*domain.Feedback, error) {
	fb, ok := f.existing[id]
	if !ok {
		return nil, feedbackRepo.ErrFeedbackNotFound
	}
	return fb, nil
}

func (f *fakeFeedbackRepo) Exists(ctx context.Context, userID, classroomID int64, termID *int64) (bool, error) {
	return f.exists, nil
}

func (f *fakeFeedbackRepo) GetByUser(ctx context.Context, userID int64) ([]*domain.Feedback, error) {
	result := make([]*domain.Feedback, 0)
	for _, fb := range f.existing {
		if fb.UserID == userID {
			result = append(result, fb)
		}
	}
	return result, nil
}

func (f *fakeFeedbackRepo) GetWithFilter(ctx context.Context, filter domain.FeedbackFilter) ([]*domain.Feedback, int, error) {
	return nil, 0, nil
}

func (f *fakeFeedbackRepo) Update(ctx context.Context, id int64, rating int, comment string) error {
	fb, ok := f.existing[id]
	if !ok {
		return feedbackRepo.ErrFeedbackNotFound
	}
	fb.Rating = rating
	fb.Comment = comment
	return nil
}

func (f *fakeFeedbackRepo) MarkRead(ctx context.Context, id int64, isRead bool) error {
	fb, ok := f.existing[id]
	if !ok {
		return feedbackRepo.ErrFeedbackNotFound
	}
	fb.IsRead = isRead
	return nil
}

func (f *fakeFeedbackRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.existing[id]; !ok {
		return feedbackRepo.ErrFeedbackNotFound
	}
	delete(f.existing, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeReservationRepo struct {
	hasApproved bool
}

func (f *fakeReservationRepo) HasApprovedForClassroomTerm(ctx context.Context, userID, classroomID int64, termID *int64) (bool, error) {
	return f.hasApproved, nil
}

type fakeClassroomRepo struct{}

func (fakeClassroomRepo) GetByID(ctx context.Context, id int64) (*domain.Classroom, error) {
	return &domain.Classroom{ID: id, Name: "B-201"}, nil
}

type fakeMailer struct {
	recipients []string
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	f.recipients = append(f.recipients, to)
	return nil
}

type fakeAudit struct {
	operations []string
}

func (f *fakeAudit) Record(ctx context.Context, actorID string, operation string, level domain.AuditLevel, details *string) {
	f.operations = append(f.operations, operation)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	svc          *Service
	feedbacks    *fakeFeedbackRepo
	reservations *fakeReservationRepo
	mailer       *fakeMailer
	audit        *fakeAudit
}

func newFixture() *fixture {
	feedbacks := &fakeFeedbackRepo{}
	reservations := &fakeReservationRepo{hasApproved: true}
	mail := &fakeMailer{}
	audit := &fakeAudit{}

	svc := NewService(feedbacks, reservations, fakeClassroomRepo{}, mail, audit, "facilities@example.edu", nopLogger{})

	return &fixture{svc: svc, feedbacks: feedbacks, reservations: reservations, mailer: mail, audit: audit}
}

func submitRequest() *models.SubmitFeedbackRequest {
	return &models.SubmitFeedbackRequest{
		UserID:      1,
		ClassroomID: 10,
		Rating:      5,
		Comment:     "Отличная акустика",
	}
}

func TestSubmit(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Submit(context.Background(), submitRequest())
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Rating)
	assert.False(t, resp.IsRead)
	require.Equal(t, []string{"SubmitFeedback"}, f.audit.operations)
	require.Equal(t, []string{"facilities@example.edu"}, f.mailer.recipients)
}

func TestSubmit_AlreadyLeft(t *testing.T) {
	f := newFixture()
	f.feedbacks.exists = true

	_, err := f.svc.Submit(context.Background(), submitRequest())
	require.ErrorIs(t, err, ErrAlreadyLeft)
}

func TestSubmit_NoApprovedReservation(t *testing.T) {
	f := newFixture()
	f.reservations.hasApproved = false

	_, err := f.svc.Submit(context.Background(), submitRequest())
	require.ErrorIs(t, err, ErrNoApprovedReservation)
}

func TestSubmit_InvariantsAreIndependent(t *testing.T) {
	// Уже оставленный отзыв сообщается раньше проверки одобренной резервации
	f := newFixture()
	f.feedbacks.exists = true
	f.reservations.hasApproved = false

	_, err := f.svc.Submit(context.Background(), submitRequest())
	require.ErrorIs(t, err, ErrAlreadyLeft)
}

func TestSubmit_RatingBounds(t *testing.T) {
	f := newFixture()

	for _, rating := range []int{0, 6, -1} {
		req := submitRequest()
		req.Rating = rating
		_, err := f.svc.Submit(context.Background(), req)
		require.ErrorIs(t, err, ErrInvalidInput, "rating %d must be rejected", rating)
	}
}

func TestEdit_OwnerOnly(t *testing.T) {
	f := newFixture()
	created, err := f.svc.Submit(context.Background(), submitRequest())
	require.NoError(t, err)

	resp, err := f.svc.Edit(context.Background(), created.ID, &models.EditFeedbackRequest{
		UserID:  1,
		Rating:  3,
		Comment: "После ремонта стало хуже",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Rating)

	_, err = f.svc.Edit(context.Background(), created.ID, &models.EditFeedbackRequest{
		UserID:  42,
		Rating:  1,
		Comment: "чужой отзыв",
	})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestMarkRead(t *testing.T) {
	f := newFixture()
	created, err := f.svc.Submit(context.Background(), submitRequest())
	require.NoError(t, err)

	require.NoError(t, f.svc.MarkRead(context.Background(), created.ID, true))
	assert.True(t, f.feedbacks.existing[created.ID].IsRead)

	require.ErrorIs(t, f.svc.MarkRead(context.Background(), 404, true), ErrFeedbackNotFound)
}

func TestDelete(t *testing.T) {
	f := newFixture()
	created, err := f.svc.Submit(context.Background(), submitRequest())
	require.NoError(t, err)

	t.Run("stranger denied", func(t *testing.T) {
		err := f.svc.Delete(context.Background(), created.ID, 42, false)
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin allowed", func(t *testing.T) {
		err := f.svc.Delete(context.Background(), created.ID, 42, true)
		require.NoError(t, err)
		assert.Equal(t, []int64{created.ID}, f.feedbacks.deleted)
	})
}

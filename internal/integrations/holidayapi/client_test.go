package holidayapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestServer(t *testing.T, holidays []PublicHoliday, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/api/v3/PublicHolidays/2025/TR", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(holidays))
	}))
}

func TestIsHoliday(t *testing.T) {
	var calls int32
	srv := newTestServer(t, []PublicHoliday{
		{Date: "2025-10-29", LocalName: "Cumhuriyet Bayramı", Name: "Republic Day", CountryCode: "TR"},
	}, &calls)
	defer srv.Close()

	client := NewClient(srv.URL, "TR", time.Second, nopLogger{})
	ctx := context.Background()

	republicDay := time.Date(2025, time.October, 29, 0, 0, 0, 0, time.UTC)
	ordinaryDay := time.Date(2025, time.October, 30, 0, 0, 0, 0, time.UTC)

	assert.True(t, client.IsHoliday(ctx, republicDay))
	assert.False(t, client.IsHoliday(ctx, ordinaryDay))

	// Второй запрос того же года идет из кеша
	assert.True(t, client.IsHoliday(ctx, republicDay))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestIsHoliday_FallbackOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "TR", time.Second, nopLogger{})
	ctx := context.Background()

	// Статический список: 29 октября - праздник, 30 октября - нет
	assert.True(t, client.IsHoliday(ctx, time.Date(2025, time.October, 29, 0, 0, 0, 0, time.UTC)))
	assert.False(t, client.IsHoliday(ctx, time.Date(2025, time.October, 30, 0, 0, 0, 0, time.UTC)))
}

func TestIsHoliday_FallbackUnknownCountry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "XX", time.Second, nopLogger{})

	// Для страны без статического списка деградация означает "не праздник"
	assert.False(t, client.IsHoliday(context.Background(), time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestGetPublicHolidays_InvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "TR", time.Second, nopLogger{})

	_, err := client.GetPublicHolidays(context.Background(), 2025)
	require.ErrorIs(t, err, ErrInvalidResponse)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authProbe(t *testing.T) (http.Handler, *int64, *bool) {
	t.Helper()
	var gotUserID int64
	var gotAdmin bool
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserID(r.Context())
		gotAdmin = IsAdmin(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return h, &gotUserID, &gotAdmin
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		role       string
		wantStatus int
		wantUserID int64
		wantAdmin  bool
	}{
		{
			name:       "instructor by default",
			userID:     "7",
			wantStatus: http.StatusOK,
			wantUserID: 7,
			wantAdmin:  false,
		},
		{
			name:       "admin role honoured",
			userID:     "7",
			role:       "admin",
			wantStatus: http.StatusOK,
			wantUserID: 7,
			wantAdmin:  true,
		},
		{
			name:       "unknown role degrades to instructor",
			userID:     "7",
			role:       "superuser",
			wantStatus: http.StatusOK,
			wantUserID: 7,
			wantAdmin:  false,
		},
		{
			name:       "missing user id",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed user id",
			userID:     "abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non-positive user id",
			userID:     "0",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, gotUserID, gotAdmin := authProbe(t)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil)
			if tt.userID != "" {
				req.Header.Set(HeaderUserID, tt.userID)
			}
			if tt.role != "" {
				req.Header.Set(HeaderUserRole, tt.role)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantUserID, *gotUserID)
				assert.Equal(t, tt.wantAdmin, *gotAdmin)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	chain := Auth(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/audit-logs", nil)
		req.Header.Set(HeaderUserID, "7")
		req.Header.Set(HeaderUserRole, "admin")

		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("instructor forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/audit-logs", nil)
		req.Header.Set(HeaderUserID, "7")

		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

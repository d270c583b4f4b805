package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"10:00", false},
		{"00:00", false},
		{"23:59", false},
		{"24:00", true},
		{"10:60", true},
		{"1000", true},
		{"10:00:00", true},
		{"", true},
		{"abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:30"))
	assert.False(t, TimeString("10:30").IsBefore("10:30"))
	assert.True(t, TimeString("18:00").IsAfter("08:00"))
	assert.False(t, TimeString("08:00").IsAfter("08:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), got)
}

func TestTimeString_Minutes(t *testing.T) {
	got, err := TimeString("01:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 90, got)
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("14:45").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.September, 2, 14, 45, 0, 0, time.UTC), got)

	_, err = TimeString("bad").OnDate(date)
	require.ErrorIs(t, err, ErrInvalidTimeString)
}

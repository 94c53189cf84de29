package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeString
		wantErr bool
	}{
		{in: "09:00", want: "09:00"},
		{in: "9:05", want: "09:05"},
		{in: "23:59", want: "23:59"},
		{in: "10:30:00", want: "10:30"},
		{in: "24:00", wantErr: true},
		{in: "10:60", wantErr: true},
		{in: "10:5", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:01").IsAfter("10:00"))
	assert.False(t, TimeString("bad").IsBefore("10:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	_, err = TimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("salon", 3*60*60)
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("14:30").On(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 20, 14, 30, 0, 0, loc), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 17, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("17:05"), ts)

	assert.Error(t, ts.Scan(42))
}

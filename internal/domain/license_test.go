package domain

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLicenseKey(t *testing.T) {
	now := time.Date(2024, 11, 3, 10, 0, 0, 0, time.UTC)
	random := bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x2a})

	key, err := NewLicenseKey("STOVE", now, random)
	require.NoError(t, err)
	assert.Equal(t, "STOVE-202411-DEADBEEF012A", key)
	assert.Regexp(t, `^STOVE-\d{6}-[0-9A-F]{12}$`, key)
}

func TestNewLicenseKey_ShortRandom(t *testing.T) {
	_, err := NewLicenseKey("STOVE", time.Now(), bytes.NewReader([]byte{0x01}))
	require.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "full_timestamp",
			value: "2024-05-01 13:14:15",
			want:  time.Date(2024, 5, 1, 13, 14, 15, 0, time.UTC),
		},
		{
			name:  "date_only",
			value: "2024-05-01",
			want:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "rfc3339_rejected",
			value:   "2024-05-01T13:14:15Z",
			wantErr: true,
		},
		{
			name:    "empty",
			value:   "",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTimestamp(tc.value, time.UTC)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestLicense_ValidAt(t *testing.T) {
	license := License{
		LicenseKey: "STOVE-202405-000000000000",
		ExpiryDate: "2024-05-31 12:00:00",
		IsActive:   false,
	}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "before_expiry", now: time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC), want: true},
		{name: "at_expiry", now: time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC), want: true},
		{name: "after_expiry", now: time.Date(2024, 5, 31, 12, 0, 1, 0, time.UTC), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := license.ValidAt(tc.now, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := License{ExpiryDate: "soon"}.ValidAt(time.Now(), time.UTC)
	require.Error(t, err)
}

func TestLicense_TimeRemaining(t *testing.T) {
	license := License{ExpiryDate: "2024-05-31 12:00:00"}

	remaining, err := license.TimeRemaining(time.Date(2024, 5, 29, 10, 30, 0, 0, time.UTC), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 49*time.Hour+30*time.Minute, remaining)
	assert.Equal(t, "2d 1h 30m", FormatRemaining(remaining))

	remaining, err = license.TimeRemaining(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.UTC)
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestHasKeyPrefix(t *testing.T) {
	assert.True(t, HasKeyPrefix("STOVE-202405-ABCDEF012345", "STOVE"))
	assert.False(t, HasKeyPrefix("STOVEX-202405-ABCDEF012345", "STOVE"))
	assert.False(t, HasKeyPrefix("", "STOVE"))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestNewLicenseKey_RandomError(t *testing.T) {
	_, err := NewLicenseKey("STOVE", time.Now(), failingReader{})
	require.ErrorContains(t, err, "entropy exhausted")
}

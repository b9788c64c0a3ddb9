package domain

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	// DefaultLicenseKeyPrefix is the product prefix used for generated keys.
	DefaultLicenseKeyPrefix = "STOVE"

	// DefaultUserID is recorded when a license is generated without a user.
	DefaultUserID = "default_user"

	// DefaultDurationDays is the license lifetime used when none is requested.
	DefaultDurationDays = 30

	// TimestampLayout is the persisted format of created_at and expiry_date.
	TimestampLayout = "2006-01-02 15:04:05"

	// DateLayout is accepted for expiry_date values written by hand.
	DateLayout = "2006-01-02"

	licenseKeyRandomBytes = 6
)

// License is a single issued license, keyed by LicenseKey in the store.
type License struct {
	LicenseKey     string `json:"license_key"`
	UserID         string `json:"user_id"`
	CreatedAt      string `json:"created_at"`
	ExpiryDate     string `json:"expiry_date"`
	DiscordContact string `json:"discord_contact"`
	IsActive       bool   `json:"is_active"`
}

// Licenses maps license keys to their records.
type Licenses map[string]License

// Expiry parses ExpiryDate in loc.
func (l License) Expiry(loc *time.Location) (time.Time, error) {
	return ParseTimestamp(l.ExpiryDate, loc)
}

// ValidAt reports whether the license is unexpired at now.
// The active flag is not consulted; callers that want deactivated licenses
// rejected must check IsActive themselves.
func (l License) ValidAt(now time.Time, loc *time.Location) (bool, error) {
	expiry, err := l.Expiry(loc)
	if err != nil {
		return false, err
	}
	return !now.After(expiry), nil
}

// TimeRemaining returns how long until the license expires, never negative.
func (l License) TimeRemaining(now time.Time, loc *time.Location) (time.Duration, error) {
	expiry, err := l.Expiry(loc)
	if err != nil {
		return 0, err
	}
	remaining := expiry.Sub(now)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// FormatTimestamp renders t in loc at second precision.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(TimestampLayout)
}

// ParseTimestamp accepts both TimestampLayout and DateLayout.
// A bare date is interpreted as midnight at the start of that day.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, loc)
	if err == nil {
		return t, nil
	}
	t, dateErr := time.ParseInLocation(DateLayout, s, loc)
	if dateErr == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("parsing timestamp [%s]: %w", s, err)
}

// NewLicenseKey builds a key of the form PREFIX-YYYYMM-XXXXXXXXXXXX where the
// suffix is 12 uppercase hex characters read from random.
func NewLicenseKey(prefix string, now time.Time, random io.Reader) (string, error) {
	b := make([]byte, licenseKeyRandomBytes)
	if _, err := io.ReadFull(random, b); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}

	return fmt.Sprintf("%s-%s-%s",
		prefix,
		now.Format("200601"),
		strings.ToUpper(hex.EncodeToString(b)),
	), nil
}

// HasKeyPrefix reports whether key carries the product prefix followed by a dash.
func HasKeyPrefix(key, prefix string) bool {
	return strings.HasPrefix(key, prefix+"-")
}

// FormatRemaining renders a duration as "Nd Nh Nm".
func FormatRemaining(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}

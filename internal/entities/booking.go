package entities

import (
	"fmt"
	"time"
)

// Booking is one reserved date range on a product, stored as the half-open
// interval [Start, End). OrderID is the platform order that created it and
// lets the webhook recognize redelivered events.
type Booking struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	OrderID int64     `json:"order_id,omitempty"`
}

// ParseDate accepts a plain date (2006-01-02) or an RFC 3339 timestamp and
// normalizes it to a UTC instant so stored ranges compare timezone-free.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD or RFC 3339)", s)
	}
	return t.UTC(), nil
}

// Package pricing computes rental quotes. The computation is pure: no
// rounding happens here, only at formatting time.
package pricing

import "time"

// TaxRate is the flat tax applied to every rental subtotal.
const TaxRate = 0.08

// Breakdown is the price quote for a prospective booking.
type Breakdown struct {
	Days     int     `json:"days"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Quote computes the rental price for a date range. It returns nil when the
// range spans zero or negative whole days: same-day rentals and inverted
// ranges both mean "no valid quote yet", not an error, and callers must not
// substitute a zero total.
func Quote(pricePerDay float64, start, end time.Time) *Breakdown {
	days := DaysBetween(start, end)
	if days <= 0 {
		return nil
	}

	subtotal := float64(days) * pricePerDay
	tax := subtotal * TaxRate

	return &Breakdown{
		Days:     days,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// DaysBetween returns the number of whole calendar days from start to end,
// ignoring time of day. Negative when end precedes start.
func DaysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}

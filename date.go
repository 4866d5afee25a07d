package dailylog

import (
	"fmt"
	"sync"
	"time"
)

// Date is a calendar day without a time-of-day component.
// Dates are comparable with ==.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in loc. A nil loc means time.Local.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate returns a normalized Date, so NewDate(2021, 2, 29) is March 1st.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC), time.UTC)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether d is an earlier day than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// DateProvider supplies the current calendar date used as the rotation key.
// Implementations must be safe for concurrent use.
type DateProvider interface {
	Today() Date
}

// SystemDate reads the wall clock. A nil Location means time.Local.
type SystemDate struct {
	Location *time.Location
}

// Ensure SystemDate implements DateProvider.
var _ DateProvider = SystemDate{}

// Today returns the current date in the provider's location.
func (s SystemDate) Today() Date {
	return DateOf(time.Now(), s.Location)
}

// ManualDate is a DateProvider whose date only changes when told to.
// It is meant for tests that need to cross a day boundary on demand.
type ManualDate struct {
	mu   sync.Mutex
	date Date
}

// Ensure ManualDate implements DateProvider.
var _ DateProvider = (*ManualDate)(nil)

// NewManualDate returns a ManualDate fixed at d.
func NewManualDate(d Date) *ManualDate {
	return &ManualDate{date: d}
}

// Today returns the current fixed date.
func (m *ManualDate) Today() Date {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.date
}

// Set replaces the fixed date.
func (m *ManualDate) Set(d Date) {
	m.mu.Lock()
	m.date = d
	m.mu.Unlock()
}

// Advance moves the fixed date by n days and returns the new date.
func (m *ManualDate) Advance(n int) Date {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.date = m.date.AddDays(n)
	return m.date
}

package schedule

import (
	"os"
	"time"
)

// DefaultFreshness is how long a scraped instrument's output file is
// considered current. Fund valuations update at most daily, so fetching
// more often than this is wasted work against a third-party site.
const DefaultFreshness = 24 * time.Hour

// Policy decides, per cycle and per instrument, whether a fetch should
// be skipped. The zero value is not usable; use NewPolicy.
type Policy struct {
	now       func() time.Time
	freshness time.Duration
}

// NewPolicy creates a policy with the standard clock and freshness window.
func NewPolicy() *Policy {
	return &Policy{
		now:       time.Now,
		freshness: DefaultFreshness,
	}
}

// WithClock replaces the policy's clock, for tests.
func (p *Policy) WithClock(now func() time.Time) *Policy {
	p.now = now
	return p
}

// WithFreshness replaces the freshness window.
func (p *Policy) WithFreshness(d time.Duration) *Policy {
	p.freshness = d
	return p
}

// WeekendDelay returns how long the tracker should sleep before the next
// cycle: zero on weekdays, and the exact duration until next Monday 00:00
// local time on Saturday or Sunday.
func (p *Policy) WeekendDelay() time.Duration {
	now := p.now()

	var days int
	switch now.Weekday() {
	case time.Saturday:
		days = 2
	case time.Sunday:
		days = 1
	default:
		return 0
	}

	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, days)
	return monday.Sub(now)
}

// FreshEnough reports whether the file at path was modified within the
// freshness window, along with its age. A file that cannot be stat'ed is
// not fresh; the caller treats that as "fetch anyway", never as an error.
func (p *Policy) FreshEnough(path string) (bool, time.Duration) {
	info, err := os.Stat(path)
	if err != nil {
		return false, 0
	}

	age := p.now().Sub(info.ModTime())
	return age >= 0 && age < p.freshness, age
}

package clock

import (
	"fmt"
	"sync"
	"time"

	"seatbooking/internal/models"
)

// System reads the wall clock in a fixed location.
type System struct {
	loc *time.Location
}

func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.Local
	}
	return &System{loc: loc}
}

func (c *System) Now() time.Time { return time.Now().In(c.loc) }

func (c *System) Location() *time.Location { return c.loc }

// Fixed is a settable clock for tests and replays.
type Fixed struct {
	mu  sync.RWMutex
	now time.Time
}

func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

func (c *Fixed) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *Fixed) Location() *time.Location {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now.Location()
}

func (c *Fixed) Set(now time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

func (c *Fixed) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Combine joins a YYYY-MM-DD date and an HH:MM time in loc.
func Combine(date, hm string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(models.DateLayout+" "+models.TimeLayout, date+" "+hm, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q %q: %w", date, hm, err)
	}
	return t, nil
}

// DateOptions lists days starting at today's date in now's location.
func DateOptions(now time.Time, days int) []string {
	if days <= 0 {
		days = models.DefaultDateOptions
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	out := make([]string, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, start.AddDate(0, 0, i).Format(models.DateLayout))
	}
	return out
}

// TimeSlots lists hourly HH:00 slots in [openHour, closeHour).
func TimeSlots(openHour, closeHour int) []string {
	if closeHour <= openHour {
		return nil
	}
	out := make([]string, 0, closeHour-openHour)
	for h := openHour; h < closeHour; h++ {
		out = append(out, fmt.Sprintf("%02d:00", h))
	}
	return out
}

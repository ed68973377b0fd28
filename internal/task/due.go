package task

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidTime = errors.New("invalid time")

type Period string

const (
	AM Period = "AM"
	PM Period = "PM"
)

// TimeOfDay is a 12-hour wall-clock time as picked in the task form.
type TimeOfDay struct {
	Hour   int // 1..12
	Minute int // 0..59
	Period Period
}

// DefaultTimeOfDay is the time a new task form starts with.
func DefaultTimeOfDay() TimeOfDay {
	return TimeOfDay{Hour: 9, Minute: 0, Period: AM}
}

func (t TimeOfDay) Validate() error {
	if t.Hour < 1 || t.Hour > 12 {
		return fmt.Errorf("%w: hour %d out of range 1-12", ErrInvalidTime, t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: minute %d out of range 0-59", ErrInvalidTime, t.Minute)
	}
	if t.Period != AM && t.Period != PM {
		return fmt.Errorf("%w: period must be AM or PM", ErrInvalidTime)
	}
	return nil
}

// Hour24 converts to a 0..23 hour: 12 AM is midnight, 12 PM is noon.
func (t TimeOfDay) Hour24() int {
	switch {
	case t.Period == PM && t.Hour != 12:
		return t.Hour + 12
	case t.Period == AM && t.Hour == 12:
		return 0
	default:
		return t.Hour
	}
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d %s", t.Hour, t.Minute, t.Period)
}

// StepHour moves the hour by delta, wrapping within 1..12.
func (t TimeOfDay) StepHour(delta int) TimeOfDay {
	h := (t.Hour - 1 + delta) % 12
	if h < 0 {
		h += 12
	}
	t.Hour = h + 1
	return t
}

// StepMinute moves the minute by delta*step, wrapping modulo 60.
func (t TimeOfDay) StepMinute(delta, step int) TimeOfDay {
	if step <= 0 {
		step = 5
	}
	m := (t.Minute + delta*step) % 60
	if m < 0 {
		m += 60
	}
	t.Minute = m
	return t
}

func (t TimeOfDay) TogglePeriod() TimeOfDay {
	if t.Period == AM {
		t.Period = PM
	} else {
		t.Period = AM
	}
	return t
}

// TimeOfDayFrom extracts the 12-hour wall clock of t.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	h := t.Hour()
	p := AM
	if h >= 12 {
		p = PM
	}
	h = h % 12
	if h == 0 {
		h = 12
	}
	return TimeOfDay{Hour: h, Minute: t.Minute(), Period: p}
}

// ParseTimeOfDay accepts "9pm", "9:30 pm", "09:30 PM" and 24-hour "21:30".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	raw := s
	s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if s == "" {
		return TimeOfDay{}, fmt.Errorf("%w: empty", ErrInvalidTime)
	}

	var period Period
	switch {
	case strings.HasSuffix(s, "AM"):
		period, s = AM, strings.TrimSuffix(s, "AM")
	case strings.HasSuffix(s, "PM"):
		period, s = PM, strings.TrimSuffix(s, "PM")
	}

	hourPart, minutePart, hasMinute := strings.Cut(s, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w '%s'", ErrInvalidTime, raw)
	}
	minute := 0
	if hasMinute {
		minute, err = strconv.Atoi(minutePart)
		if err != nil || len(minutePart) != 2 {
			return TimeOfDay{}, fmt.Errorf("%w '%s'", ErrInvalidTime, raw)
		}
	}

	if period == "" {
		if hour < 0 || hour > 23 {
			return TimeOfDay{}, fmt.Errorf("%w '%s': hour out of range", ErrInvalidTime, raw)
		}
		period = AM
		if hour >= 12 {
			period = PM
		}
		hour = hour % 12
		if hour == 0 {
			hour = 12
		}
	}

	tod := TimeOfDay{Hour: hour, Minute: minute, Period: period}
	if err := tod.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return tod, nil
}

// ComposeDue combines the calendar date of day (in loc) with a wall-clock
// time. Seconds are always zero.
func ComposeDue(day time.Time, tod TimeOfDay, loc *time.Location) (time.Time, error) {
	if err := tod.Validate(); err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.Local
	}
	d := day.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), tod.Hour24(), tod.Minute, 0, 0, loc), nil
}

// ParseDay resolves "today", "tomorrow", "+N" (days from now) or a
// YYYY-MM-DD date, relative to now's location.
func ParseDay(s string, now time.Time) (time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	loc := now.Location()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch {
	case s == "" || s == "today":
		return midnight, nil
	case s == "tomorrow":
		return midnight.AddDate(0, 0, 1), nil
	case strings.HasPrefix(s, "+"):
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("invalid day offset '%s'", s)
		}
		return midnight.AddDate(0, 0, n), nil
	}

	d, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s': use today, tomorrow, +N or YYYY-MM-DD", s)
	}
	return d, nil
}

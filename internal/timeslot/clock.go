package timeslot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const ClockLayout = "15:04"

type meridiem int

const (
	noMeridiem meridiem = iota
	ante
	post
	daytime
	night
)

var meridiemPrefixes = []struct {
	word string
	m    meridiem
}{
	{"오전", ante},
	{"아침", ante},
	{"새벽", ante},
	{"오후", post},
	{"저녁", post},
	{"밤", night},
	{"낮", daytime},
}

var meridiemSuffixes = []struct {
	word string
	m    meridiem
}{
	{"a.m.", ante},
	{"p.m.", post},
	{"am", ante},
	{"pm", post},
}

var (
	colonClockPattern  = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})(?::(\d{2}))?$`)
	koreanClockPattern = regexp.MustCompile(`^(\d{1,2})\s*시\s*(?:(\d{1,2})\s*분|(반))?\s*(?:쯤|경)?$`)
	bareHourPattern    = regexp.MustCompile(`^(\d{1,2})$`)
)

// Clock is a wall-clock time of day with minute precision, or the undecided
// marker.
type Clock struct {
	hour      int
	minute    int
	undecided bool
}

func UndecidedClock() Clock {
	return Clock{undecided: true}
}

func ClockOf(t time.Time) Clock {
	return Clock{hour: t.Hour(), minute: t.Minute()}
}

func (c Clock) IsUndecided() bool { return c.undecided }

func (c Clock) Hour() int { return c.hour }

func (c Clock) Minute() int { return c.minute }

func (c Clock) String() string {
	if c.undecided {
		return UndecidedText
	}
	return fmt.Sprintf("%02d:%02d", c.hour, c.minute)
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	v, err := NormalizeTime(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// NormalizeTime turns a human-entered time of day into its canonical "15:04"
// form.
//
// Accepted shapes include "14:00", "9:30", "오후 2시", "오전 10시 30분",
// "오후 2시반", "밤 12시", "2pm", "2:30 PM" and RFC 3339 timestamps. Empty
// input and words such as "미정" yield the undecided clock with a nil error.
// Anything else returns a *ParseError wrapping ErrInvalidTime.
func NormalizeTime(input string) (Clock, error) {
	return NormalizeTimeIn(input, nil)
}

// NormalizeTimeIn is NormalizeTime for a studio in loc. See NormalizeDateIn.
func NormalizeTimeIn(input string, loc *time.Location) (Clock, error) {
	s := strings.TrimSpace(input)
	if isUndecided(s) {
		return UndecidedClock(), nil
	}

	if t, ok := parseTimestamp(s, loc); ok {
		return ClockOf(t), nil
	}

	mer, rest := splitMeridiem(strings.ToLower(s))

	hour, minute, ok := parseHourMinute(rest, mer != noMeridiem)
	if ok {
		hour, ok = applyMeridiem(mer, hour)
	}
	if !ok || minute > 59 {
		return Clock{}, &ParseError{Input: input, Err: ErrInvalidTime}
	}

	return Clock{hour: hour, minute: minute}, nil
}

func splitMeridiem(s string) (meridiem, string) {
	for _, p := range meridiemPrefixes {
		if rest, ok := strings.CutPrefix(s, p.word); ok {
			return p.m, strings.TrimSpace(rest)
		}
	}
	for _, p := range meridiemSuffixes {
		if rest, ok := strings.CutSuffix(s, p.word); ok {
			return p.m, strings.TrimSpace(rest)
		}
	}
	return noMeridiem, s
}

func parseHourMinute(s string, hasMeridiem bool) (int, int, bool) {
	if m := colonClockPattern.FindStringSubmatch(s); m != nil {
		return atoi2(m[1], m[2])
	}

	if m := koreanClockPattern.FindStringSubmatch(s); m != nil {
		switch {
		case m[3] != "":
			return atoi2(m[1], "30")
		case m[2] != "":
			return atoi2(m[1], m[2])
		default:
			return atoi2(m[1], "0")
		}
	}

	// "2" alone is ambiguous; "2pm" is not.
	if m := bareHourPattern.FindStringSubmatch(s); m != nil && hasMeridiem {
		return atoi2(m[1], "0")
	}

	return 0, 0, false
}

func atoi2(hs, ms string) (int, int, bool) {
	h, err1 := strconv.Atoi(hs)
	m, err2 := strconv.Atoi(ms)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return h, m, true
}

func applyMeridiem(mer meridiem, hour int) (int, bool) {
	switch mer {
	case ante:
		switch {
		case hour == 12:
			return 0, true
		case hour >= 0 && hour < 12:
			return hour, true
		}
	case post:
		switch {
		case hour >= 1 && hour < 12:
			return hour + 12, true
		case hour >= 12 && hour <= 23:
			return hour, true
		}
	case night:
		// 밤 12시 is midnight
		switch {
		case hour == 12:
			return 0, true
		case hour >= 1 && hour < 12:
			return hour + 12, true
		case hour >= 13 && hour <= 23:
			return hour, true
		}
	case daytime:
		switch {
		case hour >= 1 && hour <= 6:
			return hour + 12, true
		case hour >= 7 && hour <= 23:
			return hour, true
		}
	default:
		if hour >= 0 && hour <= 23 {
			return hour, true
		}
	}
	return 0, false
}

// At joins a date and a clock into an instant in loc. It returns ErrUndecided
// when either part is undecided.
func At(d Date, c Clock, loc *time.Location) (time.Time, error) {
	if d.undecided || c.undecided {
		return time.Time{}, ErrUndecided
	}
	return time.Date(d.year, d.month, d.day, c.hour, c.minute, 0, 0, loc), nil
}

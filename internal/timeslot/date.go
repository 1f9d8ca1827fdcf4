package timeslot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout    = "2006-01-02"
	UndecidedText = "undecided"
)

// weekday annotations customers append to dates, e.g. "(일)" or "(토요일)".
const weekdaySuffix = `(?:\s*\(?[월화수목금토일](?:요일)?\)?)?`

var (
	numericDatePattern = regexp.MustCompile(`^(\d{4})\s*[.\-/]\s*(\d{1,2})\s*[.\-/]\s*(\d{1,2})\.?` + weekdaySuffix + `$`)
	compactDatePattern = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)
	koreanDatePattern  = regexp.MustCompile(`^(\d{4})\s*년\s*(\d{1,2})\s*월\s*(\d{1,2})\s*일?` + weekdaySuffix + `$`)
)

var undecidedWords = map[string]struct{}{
	"":          {},
	"undecided": {},
	"tbd":       {},
	"tba":       {},
	"미정":        {},
	"협의":        {},
	"추후협의":      {},
	"날짜미정":      {},
	"시간미정":      {},
	"아직미정":      {},
}

func isUndecided(s string) bool {
	key := strings.ToLower(strings.Join(strings.Fields(s), ""))
	_, ok := undecidedWords[key]
	return ok
}

// Date is a calendar date without a time zone, or the undecided marker.
type Date struct {
	year      int
	month     time.Month
	day       int
	undecided bool
}

func UndecidedDate() Date {
	return Date{undecided: true}
}

// DateOf returns the calendar date of t as read on t's own clock.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func (d Date) IsUndecided() bool { return d.undecided }

func (d Date) Year() int { return d.year }

func (d Date) Month() time.Month { return d.month }

func (d Date) Day() int { return d.day }

func (d Date) String() string {
	if d.undecided {
		return UndecidedText
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// In returns local midnight of d in loc.
func (d Date) In(loc *time.Location) (time.Time, error) {
	if d.undecided {
		return time.Time{}, ErrUndecided
	}
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc), nil
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	v, err := NormalizeDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// NormalizeDate turns a human-entered date into its canonical form.
//
// Accepted shapes include "2025-06-15", "2025.06.15", "2025/6/15", "20250615",
// "2025년 6월 15일 (일)" and RFC 3339 timestamps. Empty input and words such as
// "미정" or "TBD" yield the undecided date with a nil error. Anything else
// returns a *ParseError wrapping ErrInvalidDate.
//
// A timestamp is read on the clock of its own offset. Use NormalizeDateIn to
// read it on the studio's clock.
func NormalizeDate(input string) (Date, error) {
	return NormalizeDateIn(input, nil)
}

// NormalizeDateIn is NormalizeDate for a studio in loc: a timestamp that
// carries an offset is converted to loc before its date is taken. Inputs
// without an offset are already studio-local and are left alone.
func NormalizeDateIn(input string, loc *time.Location) (Date, error) {
	s := strings.TrimSpace(input)
	if isUndecided(s) {
		return UndecidedDate(), nil
	}

	if t, ok := parseTimestamp(s, loc); ok {
		return DateOf(t), nil
	}

	for _, p := range []*regexp.Regexp{numericDatePattern, koreanDatePattern, compactDatePattern} {
		m := p.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if d, ok := civilDate(m[1], m[2], m[3]); ok {
			return d, nil
		}
		break
	}

	return Date{}, &ParseError{Input: input, Err: ErrInvalidDate}
}

func civilDate(ys, ms, ds string) (Date, bool) {
	y, err1 := strconv.Atoi(ys)
	m, err2 := strconv.Atoi(ms)
	d, err3 := strconv.Atoi(ds)
	if err1 != nil || err2 != nil || err3 != nil {
		return Date{}, false
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return Date{}, false
	}

	return Date{year: y, month: time.Month(m), day: d}, true
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseTimestamp parses s as a timestamp. Only the first layout carries an
// offset; such instants are moved to loc when loc is set.
func parseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	for i, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if i == 0 && loc != nil {
			t = t.In(loc)
		}
		return t, true
	}
	return time.Time{}, false
}

package profile

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	errUnrecognizedDate = errors.New("unrecognized date format")
	errOngoingNotEnd    = errors.New("ongoing marker is only allowed on end dates")

	dateYearRe       = regexp.MustCompile(`^(\d{4})$`)
	dateISORe        = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})(?:[-/.](\d{1,2}))?(?:[t ].*)?$`)
	dateMonthYearRe  = regexp.MustCompile(`^(\d{1,2})[-/.](\d{4})$`)
	dateUSFullRe     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dateEUFullRe     = regexp.MustCompile(`^(\d{1,2})[.-](\d{1,2})[.-](\d{4})$`)
	dateNamedRe      = regexp.MustCompile(`^([a-z]+)\.?,?\s+(?:\d{1,2},?\s+)?(\d{4})$`)
	dateYearNamedRe  = regexp.MustCompile(`^(\d{4}),?\s+([a-z]+)\.?$`)
	dateDayNamedRe   = regexp.MustCompile(`^\d{1,2}\s+([a-z]+)\.?,?\s+(\d{4})$`)
	ongoingDateWords = map[string]bool{"present": true, "current": true, "now": true}
)

var monthNumbers = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// NormalizeDate coerces a loosely typed date into YYYY-MM, or YYYY when only the year
// is known. present is false when the value denotes "no date"; on end dates this
// includes the ongoing markers present, current and now.
func NormalizeDate(field string, value any, endDate bool) (date string, present bool, err error) {
	switch v := value.(type) {
	case nil:
		return "", false, nil
	case time.Time:
		return fmt.Sprintf("%04d-%02d", v.Year(), int(v.Month())), true, nil
	case int:
		return yearOnly(field, value, v)
	case int64:
		return yearOnly(field, value, int(v))
	case float64:
		if v != math.Trunc(v) {
			return "", false, &NormalizationError{Field: field, Value: value, Cause: errUnrecognizedDate}
		}
		return yearOnly(field, value, int(v))
	case string:
		return parseDateText(field, v, endDate)
	}

	return "", false, &NormalizationError{Field: field, Value: value, Cause: errUnrecognizedDate}
}

func parseDateText(field, raw string, endDate bool) (string, bool, error) {
	text := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	if text == "" {
		return "", false, nil
	}

	if ongoingDateWords[text] {
		if endDate {
			return "", false, nil
		}
		return "", false, &NormalizationError{Field: field, Value: raw, Cause: errOngoingNotEnd}
	}

	fail := func() (string, bool, error) {
		return "", false, &NormalizationError{Field: field, Value: raw, Cause: errUnrecognizedDate}
	}

	var year, month int
	switch {
	case dateYearRe.MatchString(text):
		year = atoi(text)
		return yearOnly(field, raw, year)
	case dateISORe.MatchString(text):
		m := dateISORe.FindStringSubmatch(text)
		year, month = atoi(m[1]), atoi(m[2])
	case dateMonthYearRe.MatchString(text):
		m := dateMonthYearRe.FindStringSubmatch(text)
		year, month = atoi(m[2]), atoi(m[1])
	case dateUSFullRe.MatchString(text):
		m := dateUSFullRe.FindStringSubmatch(text)
		year, month = atoi(m[3]), atoi(m[1])
	case dateEUFullRe.MatchString(text):
		m := dateEUFullRe.FindStringSubmatch(text)
		year, month = atoi(m[3]), atoi(m[2])
	case dateNamedRe.MatchString(text):
		m := dateNamedRe.FindStringSubmatch(text)
		year, month = atoi(m[2]), monthNumbers[m[1]]
	case dateYearNamedRe.MatchString(text):
		m := dateYearNamedRe.FindStringSubmatch(text)
		year, month = atoi(m[1]), monthNumbers[m[2]]
	case dateDayNamedRe.MatchString(text):
		m := dateDayNamedRe.FindStringSubmatch(text)
		year, month = atoi(m[2]), monthNumbers[m[1]]
	default:
		return fail()
	}

	if month < 1 || month > 12 || year < 1000 {
		return fail()
	}
	return fmt.Sprintf("%04d-%02d", year, month), true, nil
}

func yearOnly(field string, raw any, year int) (string, bool, error) {
	if year < 1000 || year > 9999 {
		return "", false, &NormalizationError{Field: field, Value: raw, Cause: errUnrecognizedDate}
	}
	return strconv.Itoa(year), true, nil
}

// datePrecision ranks canonical dates: 0 absent, 1 year only, 2 year and month.
func datePrecision(date string) int {
	switch {
	case date == "":
		return 0
	case len(date) == 4:
		return 1
	default:
		return 2
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

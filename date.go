package feedscrape

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	editedRe    = regexp.MustCompile(`(?:edited|đã chỉnh sửa)\s*`)
	spaceRe     = regexp.MustCompile(`\s+`)
	agoRe       = regexp.MustCompile(`\s*(?:ago|trước)\s*`)
	relativeRe  = regexp.MustCompile(`(\d+)\s*(\p{L}+)`)
	monthLength = 30 * 24 * time.Hour
	weekLength  = 7 * 24 * time.Hour
	dayLength   = 24 * time.Hour
)

// unitDurations maps relative time units to their length.
// A zero duration marks units that are always too old.
var unitDurations = map[string]time.Duration{
	"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": dayLength, "day": dayLength, "days": dayLength,
	"w": weekLength, "wk": weekLength, "week": weekLength, "weeks": weekLength,
	"mo": monthLength, "month": monthLength, "months": monthLength,
	"y": 0, "yr": 0, "year": 0, "years": 0,

	"phút": time.Minute, "giờ": time.Hour, "ngày": dayLength,
	"tuần": weekLength, "tháng": monthLength, "năm": 0,
}

// ParseRelativeDate converts a relative timestamp such as "2d", "3h ago",
// "1w • Edited" or "5 ngày" into an absolute time measured back from now.
// The bool result is false if the text cannot be parsed or names a unit
// of years, which is older than any feed window worth reporting.
func ParseRelativeDate(text string, now time.Time) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}

	cleaned := strings.ToLower(text)
	cleaned = editedRe.ReplaceAllString(cleaned, "")
	cleaned = strings.ReplaceAll(cleaned, "•", "")
	cleaned = strings.TrimSpace(spaceRe.ReplaceAllString(cleaned, " "))
	cleaned = agoRe.ReplaceAllString(cleaned, "")

	match := relativeRe.FindStringSubmatch(cleaned)
	if match == nil {
		return time.Time{}, false
	}

	n, err := strconv.Atoi(match[1])
	if err != nil {
		return time.Time{}, false
	}

	unit, ok := unitDurations[match[2]]
	if !ok || unit == 0 {
		return time.Time{}, false
	}

	return now.Add(-time.Duration(n) * unit), true
}

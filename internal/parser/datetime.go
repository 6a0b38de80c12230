package parser

import (
	"log/slog"
	"regexp"
	"strings"
	"time"
)

// Date pattern families in priority order. The first family that matches
// anywhere in the text wins, regardless of position, so ambiguous numeric
// dates resolve deterministically. The 4-digit-year family goes first:
// a padded ISO date would otherwise surrender its "24-01-15" tail to the
// month-first family, which no layout can parse.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}[/-]\d{1,2}[/-]\d{1,2}`),     // YYYY/MM/DD or YYYY-MM-DD, unambiguous
	regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`),   // MM/DD/YYYY or MM-DD-YYYY
	regexp.MustCompile(`\d{2,4}[/-]\d{1,2}[/-]\d{1,2}`),   // year-first with short year
	regexp.MustCompile(`\d{1,2}\s+[A-Za-z]+\s+\d{2,4}`),   // DD Month YYYY
	regexp.MustCompile(`[A-Za-z]+\s+\d{1,2},?\s+\d{2,4}`), // Month DD, YYYY
}

var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}:\d{2}(?::\d{2})?\s*(?:AM|PM|am|pm)?`), // HH:MM[:SS] [AM/PM]
	regexp.MustCompile(`\d{1,2}:\d{2}(?::\d{2})?`),                    // HH:MM[:SS]
}

var dateLayouts = []string{
	"1/2/2006",
	"1-2-2006",
	"2006/1/2",
	"2006-1-2",
	"2 January 2006",
	"January 2, 2006",
}

var timeLayouts = []string{"15:04:05", "15:04", "3:04 PM"}

// ExtractDateTime scans free text for a transaction timestamp. A date
// substring anchors the result; a time substring refines it when it parses.
// Without a date the result is absent, a time alone cannot anchor a date.
func ExtractDateTime(text string) (time.Time, bool) {
	var dateStr, timeStr string
	for _, re := range datePatterns {
		if m := re.FindString(text); m != "" {
			dateStr = m
			break
		}
	}
	for _, re := range timePatterns {
		if m := re.FindString(text); m != "" {
			timeStr = strings.TrimSpace(m)
			break
		}
	}
	if dateStr == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		d, err := time.Parse(layout, dateStr)
		if err != nil {
			continue
		}
		if timeStr != "" {
			if clock, ok := parseClock(timeStr); ok {
				return time.Date(d.Year(), d.Month(), d.Day(),
					clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC), true
			}
		}
		return d, true
	}

	slog.Debug("datetime.extract.unparseable", "date", dateStr, "time", timeStr)
	return time.Time{}, false
}

func parseClock(s string) (time.Time, bool) {
	// Meridiem markers may arrive lowercase; layouts want them upper.
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

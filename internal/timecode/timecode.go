package timecode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// matches h:mm:ss.fff with 1-2 hour digits; comma accepted as the
// millisecond separator so SRT timestamps parse too
var timecodeRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})[.,](\d{1,3})$`)

// Parse converts an "h:mm:ss.fff" timecode into a duration.
func Parse(s string) (time.Duration, error) {
	matches := timecodeRegex.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return 0, fmt.Errorf("invalid timecode %q: expected h:mm:ss.fff", s)
	}

	h, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, err
	}
	if m > 59 {
		return 0, fmt.Errorf("invalid timecode %q: minutes out of range", s)
	}
	sec, err := strconv.Atoi(matches[3])
	if err != nil {
		return 0, err
	}
	if sec > 59 {
		return 0, fmt.Errorf("invalid timecode %q: seconds out of range", s)
	}

	// pad fractional part to milliseconds ("5" means 500ms)
	frac := matches[4]
	for len(frac) < 3 {
		frac += "0"
	}
	ms, err := strconv.Atoi(frac)
	if err != nil {
		return 0, err
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// Format renders a duration as "h:mm:ss.fff".
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

// FormatSRT renders a duration in SRT style: 00:00:00,000.
func FormatSRT(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// FormatVTT renders a duration in WebVTT style: 00:00:00.000.
func FormatVTT(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

// RoundCenti rounds a duration to the nearest 1/100 second.
func RoundCenti(d time.Duration) time.Duration {
	return d.Round(10 * time.Millisecond)
}

// Elapsed returns end-start, clamped at zero.
func Elapsed(start, end time.Duration) time.Duration {
	if end <= start {
		return 0
	}
	return end - start
}

// Scale allocates num/den of a duration, rounded to 1/100 second.
// Used for the character-ratio time split.
func Scale(d time.Duration, num, den int) time.Duration {
	if den <= 0 || num <= 0 {
		return 0
	}
	return RoundCenti(time.Duration(int64(d) * int64(num) / int64(den)))
}

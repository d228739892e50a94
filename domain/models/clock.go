package models

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatClock renders seconds as "mm:ss" with total minutes, so durations
// past one hour stay parseable by ParseClock.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ParseClock converts a "mm:ss" timestamp to seconds. Malformed input
// parses as 0, matching the lenient handling of model output elsewhere.
func ParseClock(clock string) int {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	total := 0
	for _, p := range parts {
		n, _ := strconv.Atoi(p)
		total = total*60 + n
	}
	return total
}

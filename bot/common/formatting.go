package common

import (
	"fmt"
	"strings"
)

// FormatXP formats an XP amount with thousand separators
func FormatXP(xp int64) string {
	str := fmt.Sprintf("%d", xp)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatProgressBar renders a fixed-width progress bar for XP toward the
// next level, e.g. [████████░░░░░░░░░░░░]
func FormatProgressBar(current, required int64) string {
	const width = 20

	filled := 0
	if required > 0 {
		filled = int(current * width / required)
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// FormatLevelProgress renders the "xp / required" fragment shown in rank output
func FormatLevelProgress(current, required int64) string {
	return fmt.Sprintf("%s / %s XP", FormatXP(current), FormatXP(required))
}

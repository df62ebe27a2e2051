package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const bioLimit = 60

// FirstName returns the first word of a display name
func FirstName(displayName string) string {
	fields := strings.Fields(displayName)
	if len(fields) == 0 {
		return displayName
	}
	return fields[0]
}

// TruncateBio cuts bio to at most 60 bytes on a rune boundary and marks the cut with "..."
func TruncateBio(bio string) string {
	if len(bio) <= bioLimit {
		return bio
	}
	cut := bioLimit
	for cut > 0 && !utf8.RuneStart(bio[cut]) {
		cut--
	}
	return bio[:cut] + "..."
}

// FormatFollowers renders counts of 1000 and above as 1.2K
func FormatFollowers(n int) string {
	if n >= 1000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return strconv.Itoa(n)
}

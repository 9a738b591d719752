package classify

import "strings"

// Kind is how a line of GHunt output is echoed to the terminal.
type Kind int

const (
	KindPlain Kind = iota
	KindSuccess
	KindError
	KindWarning
	KindLabel
	KindHeader
)

// headerGlyphs prefix GHunt's section headers.
var headerGlyphs = []string{"🙋", "📞", "🌐", "🎮", "🗺", "🗓", "🎵", "📱", "🔍"}

var labelMarkers = []string{"Name:", "Email:", "Google ID:"}

var gapAfterMarkers = []string{"Profile page :", "Last profile edit :", "User types :"}

// IsHeader reports whether line is a GHunt section header.
func IsHeader(line string) bool {
	for _, g := range headerGlyphs {
		if strings.Contains(line, g) {
			return true
		}
	}
	return false
}

// KindOf picks the echo style for line. Prefix checks run on the untrimmed
// line, so indented markers are not colored.
func KindOf(line string) Kind {
	switch {
	case strings.HasPrefix(line, "[+]"):
		return KindSuccess
	case strings.HasPrefix(line, "[-]"):
		return KindError
	case strings.HasPrefix(line, "[!]"):
		return KindWarning
	}
	for _, m := range labelMarkers {
		if strings.Contains(line, m) {
			return KindLabel
		}
	}
	if IsHeader(line) {
		return KindHeader
	}
	return KindPlain
}

// GapAfter reports whether a blank line should follow line.
func GapAfter(line string) bool {
	if strings.HasPrefix(line, "=>") {
		return true
	}
	for _, m := range gapAfterMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

package classify

import "strings"

// contentMarkers identify the first line of real GHunt output; everything
// before it is GHunt's own banner.
var contentMarkers = []string{
	"Target", "Name", "Email", "Google ID", "[+]", "[-]", "Profile", "YouTube", "Photos",
}

// SplitLines splits captured stdout on newlines, keeping empty lines.
func SplitLines(stdout string) []string {
	if stdout == "" {
		return nil
	}
	return strings.Split(stdout, "\n")
}

// IsContent reports whether line looks like investigation output.
func IsContent(line string) bool {
	for _, m := range contentMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// SkipBanner drops lines until the first content-bearing one and keeps
// every line after it, blank or not.
func SkipBanner(lines []string) []string {
	for i, line := range lines {
		if IsContent(line) {
			return lines[i:]
		}
	}
	return nil
}

package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme defines colors and icons for terminal rendering.
type Theme struct {
	Name      string
	Blue      lipgloss.Style
	LightBlue lipgloss.Style
	Red       lipgloss.Style
	Yellow    lipgloss.Style
	Green     lipgloss.Style
	White     lipgloss.Style
	Bold      lipgloss.Style
	Icons     ThemeIcons
}

// ThemeIcons defines the icon set for a theme.
type ThemeIcons struct {
	Pass   string
	Fail   string
	Search string
	List   string
	Save   string
	Setup  string
}

var defaultIcons = ThemeIcons{
	Pass:   "✓",
	Fail:   "✗",
	Search: "🔍",
	List:   "📋",
	Save:   "📄",
	Setup:  "⚙️ ",
}

// GoogleTheme uses the Google brand palette.
func GoogleTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Name:      "google",
		Blue:      r.NewStyle().Foreground(lipgloss.Color("#4285F4")),
		LightBlue: r.NewStyle().Foreground(lipgloss.Color("#8AB4F8")),
		Red:       r.NewStyle().Foreground(lipgloss.Color("#EA4335")),
		Yellow:    r.NewStyle().Foreground(lipgloss.Color("#FBBC04")),
		Green:     r.NewStyle().Foreground(lipgloss.Color("#34A853")),
		White:     r.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		Bold:      r.NewStyle().Bold(true),
		Icons:     defaultIcons,
	}
}

// MonoTheme returns a theme without colors or emoji.
func MonoTheme(r *lipgloss.Renderer) Theme {
	plain := r.NewStyle()
	return Theme{
		Name:      "mono",
		Blue:      plain,
		LightBlue: plain,
		Red:       plain,
		Yellow:    plain,
		Green:     plain,
		White:     plain,
		Bold:      r.NewStyle().Bold(true),
		Icons: ThemeIcons{
			Pass:   "+",
			Fail:   "x",
			Search: ">",
			List:   ">",
			Save:   ">",
			Setup:  ">",
		},
	}
}

// ThemeByName returns a theme by name, defaulting to GoogleTheme.
func ThemeByName(r *lipgloss.Renderer, name string) Theme {
	switch name {
	case "mono":
		return MonoTheme(r)
	default:
		return GoogleTheme(r)
	}
}

// NewRenderer returns a lipgloss renderer for w. With noColor set the
// renderer is pinned to the ASCII profile regardless of the terminal.
func NewRenderer(w io.Writer, noColor bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

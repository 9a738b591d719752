package console

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const bannerArt = ` ██████╗  ██████╗  ██████╗ ███████╗██╗███╗   ██╗████████╗
██╔════╝ ██╔═══██╗██╔═══██╗██╔════╝██║████╗  ██║╚══██╔══╝
██║  ███╗██║   ██║██║   ██║███████╗██║██╔██╗ ██║   ██║
██║   ██║██║   ██║██║   ██║╚════██║██║██║╚██╗██║   ██║
╚██████╔╝╚██████╔╝╚██████╔╝███████║██║██║ ╚████║   ██║
 ╚═════╝  ╚═════╝  ╚═════╝ ╚══════╝╚═╝╚═╝  ╚═══╝   ╚═╝`

// Tagline is printed under the banner art.
const Tagline = "Gmail OSINT Tool powered by GHunt"

// Notice is the usage notice printed under the version.
const Notice = "For Educational and Legal OSINT purposes only"

// artWidth is the display width of the widest banner row.
func artWidth() int {
	width := 0
	for _, line := range strings.Split(bannerArt, "\n") {
		width = max(width, runewidth.StringWidth(line))
	}
	return width
}

// center pads s on the left so it sits in the middle of width cells.
func center(s string, width int) string {
	pad := (width - runewidth.StringWidth(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// Banner prints the block-letter logo, the tagline and the version.
func (c *Console) Banner(version string) {
	width := artWidth()
	fmt.Fprintln(c.out)
	for _, line := range strings.Split(bannerArt, "\n") {
		fmt.Fprintln(c.out, "    "+c.theme.Blue.Render(line))
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "    "+c.theme.Blue.Render(center(Tagline, width)))
	fmt.Fprintln(c.out, "    "+c.theme.LightBlue.Render(center("Version "+version, width)))
	fmt.Fprintln(c.out, "    "+c.theme.Yellow.Render(center(Notice, width)))
	fmt.Fprintln(c.out)
}

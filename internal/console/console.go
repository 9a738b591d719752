// Package console renders goosint's terminal output: the banner, status
// messages and the colored echo of GHunt's report.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/goosint/internal/classify"
	"github.com/dkoosis/goosint/internal/record"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// ruleWidth caps separator lines.
const ruleWidth = 60

// Console writes styled messages to an output stream.
type Console struct {
	out   io.Writer
	theme Theme
	width int
}

// New creates a Console. A width of zero or less means DefaultWidth.
func New(out io.Writer, theme Theme, width int) *Console {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Console{out: out, theme: theme, width: width}
}

// Writer returns the underlying output stream.
func (c *Console) Writer() io.Writer { return c.out }

// Theme returns the active theme.
func (c *Console) Theme() Theme { return c.theme }

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the column count of w, or DefaultWidth when w is
// not a terminal.
func TerminalWidth(w any) int {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// rule repeats glyph to fill n display cells, bounded by the console width.
func (c *Console) rule(glyph string, n int) string {
	n = min(n, c.width)
	w := runewidth.StringWidth(glyph)
	if w <= 0 {
		return ""
	}
	return strings.Repeat(glyph, n/w)
}

func (c *Console) line(s string) {
	fmt.Fprintln(c.out, s)
}

// Blank prints an empty line.
func (c *Console) Blank() { c.line("") }

// Success prints a green check-marked message.
func (c *Console) Success(msg string) {
	c.line(c.theme.Green.Render(c.theme.Icons.Pass + " " + msg))
}

// Failure prints a red cross-marked message.
func (c *Console) Failure(msg string) {
	c.line(c.theme.Red.Render(c.theme.Icons.Fail + " " + msg))
}

// Warn prints msg in yellow.
func (c *Console) Warn(msg string) {
	c.line(c.theme.Yellow.Render(msg))
}

// Info prints msg in light blue.
func (c *Console) Info(msg string) {
	c.line(c.theme.LightBlue.Render(msg))
}

// Note prints msg in green without an icon.
func (c *Console) Note(msg string) {
	c.line(c.theme.Green.Render(msg))
}

// Investigating announces a single-email investigation.
func (c *Console) Investigating(email string) {
	c.Blank()
	c.Info(c.theme.Icons.Search + " Investigating email: " + email)
	c.line(c.theme.Yellow.Render(c.rule("=", ruleWidth)))
}

// Results echoes filtered GHunt output with per-line styling.
func (c *Console) Results(lines []string) {
	c.Note("Investigation Results:")
	c.Blank()
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		c.Echo(l)
	}
	c.Blank()
}

// Echo prints one line of GHunt output styled by its kind.
func (c *Console) Echo(l string) {
	t := c.theme
	if classify.IsHeader(l) {
		c.Blank()
	}
	switch classify.KindOf(l) {
	case classify.KindSuccess:
		c.line(t.Green.Render(l))
	case classify.KindError:
		c.line(t.Red.Render(l))
	case classify.KindWarning:
		c.line(t.Yellow.Render(l))
	case classify.KindLabel:
		c.line(t.LightBlue.Render(l))
	case classify.KindHeader:
		c.line(t.Blue.Render(l))
	default:
		c.line(l)
	}
	if classify.GapAfter(l) {
		c.Blank()
	}
}

// BatchStart announces a batch run over path.
func (c *Console) BatchStart(path string) {
	c.Blank()
	c.Info(c.theme.Icons.List + " Starting batch investigation from: " + path)
}

// BatchFound reports how many identifiers were read.
func (c *Console) BatchFound(n int) {
	c.Note(fmt.Sprintf("Found %d email(s) to investigate", n))
}

// BatchItem announces item i of n.
func (c *Console) BatchItem(i, n int, email string) {
	c.Blank()
	c.line(c.theme.Blue.Render(fmt.Sprintf("[%d/%d] Processing: %s", i, n, email)))
	c.line(c.theme.Blue.Render(c.rule("─", ruleWidth)))
}

// BatchNext separates consecutive batch items.
func (c *Console) BatchNext() {
	sep := c.theme.Yellow.Render(c.rule("═", ruleWidth))
	c.Blank()
	c.line(sep)
	c.Warn("Moving to next email...")
	c.line(sep)
	c.Blank()
}

// Saving announces the end-of-batch save.
func (c *Console) Saving() {
	c.Blank()
	c.Info(c.theme.Icons.Save + " Saving batch investigation results...")
}

// SetupStart announces the interactive GHunt login.
func (c *Console) SetupStart() {
	c.Blank()
	c.Info(c.theme.Icons.Setup + " Setting up GHunt authentication...")
	c.Warn("This will guide you through the GHunt setup process")
}

// Summary prints per-status counts in display order, skipping zeros.
func (c *Console) Summary(counts map[record.Status]int) {
	title := cases.Title(language.English)
	var parts []string
	for _, s := range record.Statuses {
		n := counts[s]
		if n == 0 {
			continue
		}
		label := title.String(strings.ReplaceAll(string(s), "_", " "))
		parts = append(parts, fmt.Sprintf("%s: %d", label, n))
	}
	if len(parts) == 0 {
		return
	}
	c.line(c.theme.Bold.Render(strings.Join(parts, "  ")))
}

// Prompt writes question and reports whether the answer read from in was
// yes. Read errors count as no. When ctx is done first, Prompt returns
// ctx.Err() and leaves the pending read behind.
func (c *Console) Prompt(ctx context.Context, in io.Reader, question string) (bool, error) {
	fmt.Fprint(c.out, c.theme.Yellow.Render(question)+" ")

	answers := make(chan string, 1)
	go func() {
		var answer string
		if _, err := fmt.Fscanln(in, &answer); err != nil {
			answer = ""
		}
		answers <- answer
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case answer := <-answers:
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"golang.org/x/term"
)

const eraseLine = "\r\x1b[2K"

// StatusLine reports copy progress. On a terminal it keeps rewriting a single spinner line;
// elsewhere every update gets its own line.
type StatusLine struct {
	out     io.Writer
	styles  Styles
	frames  []string
	frame   int
	inPlace bool
}

func NewStatusLine(out io.Writer) *StatusLine {
	inPlace := false

	if f, ok := out.(*os.File); ok {
		inPlace = term.IsTerminal(int(f.Fd())) // #nosec G115
	}

	return &StatusLine{
		out:     out,
		styles:  NewStyles(out),
		frames:  spinner.MiniDot.Frames,
		inPlace: inPlace,
	}
}

func (s *StatusLine) next() string {
	f := s.frames[s.frame%len(s.frames)]
	s.frame++

	return s.styles.Info.Render(f)
}

func (s *StatusLine) Start(msg string) {
	if s.inPlace {
		_, _ = fmt.Fprintf(s.out, "%s%s %s", eraseLine, s.next(), msg)

		return
	}

	_, _ = fmt.Fprintln(s.out, msg)
}

func (s *StatusLine) Update(relPath string) {
	line := "Copying: " + relPath

	if s.inPlace {
		_, _ = fmt.Fprintf(s.out, "%s%s %s", eraseLine, s.next(), line)

		return
	}

	_, _ = fmt.Fprintln(s.out, s.styles.Muted.Render("  "+line))
}

func (s *StatusLine) finish(symbol, msg string) {
	if s.inPlace {
		_, _ = io.WriteString(s.out, eraseLine)
	}

	_, _ = fmt.Fprintln(s.out, symbol+" "+msg)
}

func (s *StatusLine) Succeed(msg string) {
	s.finish(s.styles.Success.Render("✔"), msg)
}

func (s *StatusLine) Fail(msg string) {
	s.finish(s.styles.Failure.Render("✖"), msg)
}

package prompt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var noteStyle = lipgloss.NewStyle().Faint(true).Italic(true)

// Console prompts on a terminal using huh input fields. A field with a validation error cannot
// be submitted, so the question is repeated until the answer is valid.
type Console struct {
	in         io.Reader
	lines      *bufio.Reader
	out        io.Writer
	accessible bool
}

func NewConsole(in io.Reader, out io.Writer, accessible bool) *Console {
	return &Console{
		in:         in,
		lines:      bufio.NewReader(in),
		out:        out,
		accessible: accessible,
	}
}

func (c *Console) Ask(title string, validate func(string) error) (string, error) {
	if c.accessible {
		return c.askAccessible(title, validate)
	}

	var value string

	field := huh.NewInput().
		Title(title).
		Value(&value).
		Validate(validate)

	form := huh.NewForm(huh.NewGroup(field)).
		WithShowHelp(false).
		WithInput(c.in).
		WithOutput(c.out)

	if err := form.Run(); err != nil {
		return "", err
	}

	fmt.Fprintf(c.out, "%v %v\n", title, value)

	return value, nil
}

// askAccessible gives each huh form a single line of the shared input. huh's accessible prompt
// scans its reader until EOF, which would otherwise swallow the answers to later questions.
func (c *Console) askAccessible(title string, validate func(string) error) (string, error) {
	for {
		var value string

		in := line{r: c.lines}
		field := huh.NewInput().
			Title(title).
			Value(&value)

		form := huh.NewForm(huh.NewGroup(field)).
			WithAccessible(true).
			WithShowHelp(false).
			WithInput(&in).
			WithOutput(c.out)

		if err := form.Run(); err != nil {
			return "", err
		}

		if in.err != nil {
			return "", in.err
		}

		if err := validate(value); err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}

		return value, nil
	}
}

func (c *Console) Note(text string) {
	fmt.Fprintln(c.out, noteStyle.Render(text))
}

// line reads up to and including the next newline and then reports EOF. A read error before
// anything is read (e.g. CTRL-D) is kept in err.
type line struct {
	r   *bufio.Reader
	n   int
	eol bool
	err error
}

func (l *line) Read(p []byte) (int, error) {
	if l.eol || l.err != nil {
		return 0, io.EOF
	}

	n := 0
	for n < len(p) {
		b, err := l.r.ReadByte()
		if err != nil {
			l.eol = true
			if l.n == 0 {
				l.err = err
			}
			break
		}

		p[n] = b
		n++
		l.n++

		if b == '\n' {
			l.eol = true
			break
		}
	}

	if n == 0 {
		return 0, io.EOF
	}

	return n, nil
}

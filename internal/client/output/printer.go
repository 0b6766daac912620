// Package output renders console output: coloured messages, notifications
// and record tables.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/hustleadmin/internal/client/notify"
	"github.com/fatih/color"
)

// Printer writes formatted output to the terminal.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
	accent    color.Attribute
}

// ColorsEnabled reports whether the environment allows colours.
func ColorsEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

func NewPrinter(out, errOut io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: errOut, useColors: useColors, accent: color.FgBlue}
}

// SetTheme picks the accent colour: "dark" uses bright cyan, anything else blue.
func (p *Printer) SetTheme(theme string) {
	if theme == "dark" {
		p.accent = color.FgHiCyan
		return
	}
	p.accent = color.FgBlue
}

func (p *Printer) Out() io.Writer { return p.out }

func (p *Printer) Info(format string, args ...any) {
	if p.useColors {
		color.New(p.accent).Fprintf(p.out, format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Success(format string, args ...any) {
	if p.useColors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
}

func (p *Printer) Error(format string, args ...any) {
	if p.useColors {
		color.New(color.FgRed).Fprintf(p.err, "✗ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...)
}

// Header prints a section title underlined to its width.
func (p *Printer) Header(title string) {
	line := strings.Repeat("─", len([]rune(title)))
	if p.useColors {
		color.New(p.accent, color.Bold).Fprintf(p.out, "\n%s\n", title)
		fmt.Fprintf(p.out, "%s\n", line)
		return
	}
	fmt.Fprintf(p.out, "\n%s\n%s\n", title, strings.Repeat("-", len([]rune(title))))
}

// Notification prints a dispatched notification.
func (p *Printer) Notification(n notify.Notification) {
	if n.Kind == notify.KindError {
		p.Error("%s", n.Message)
		return
	}
	p.Success("%s", n.Message)
}

// Bold returns text in bold when colours are on.
func (p *Printer) Bold(text string) string {
	if p.useColors {
		return color.New(color.Bold).Sprint(text)
	}
	return text
}

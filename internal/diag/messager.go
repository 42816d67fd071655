// Package diag prints processor notes and warnings.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Messager writes notes to one stream and warnings to another. It is safe
// for concurrent use.
type Messager struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	warn   *color.Color
}

var (
	stdOnce sync.Once
	std     *Messager
)

// Std returns the Messager writing to os.Stdout and os.Stderr.
func Std() *Messager {
	stdOnce.Do(func() {
		std = New(os.Stdout, os.Stderr)
	})
	return std
}

// New returns a Messager writing notes to out and warnings to errOut.
// Warnings are colored only when errOut is a terminal.
func New(out, errOut io.Writer) *Messager {
	m := &Messager{
		out:    out,
		errOut: errOut,
		warn:   color.New(color.FgYellow, color.Bold),
	}
	m.SetColor(!color.NoColor && isTerminal(errOut))
	return m
}

// SetColor forces colored output on or off.
func (m *Messager) SetColor(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if enabled {
		m.warn.EnableColor()
	} else {
		m.warn.DisableColor()
	}
}

// Note prints an informational line.
func (m *Messager) Note(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fmt.Fprintf(m.out, format+"\n", args...)
}

// Warning prints a line prefixed with "warning: ".
func (m *Messager) Warning(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warn.Fprint(m.errOut, "warning: ")
	fmt.Fprintf(m.errOut, format+"\n", args...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

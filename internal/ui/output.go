package ui

import (
	"fmt"
	"io"
)

// Status prefixes scraped by pipeline log parsers. Keep them stable.
const (
	PrefixOK    = "[ok]"
	PrefixWarn  = "[warn]"
	PrefixFail  = "[fail]"
	PrefixInfo  = "[info]"
	PrefixError = "[error]"
	PrefixGate  = "[gate]"
)

// Printer writes one prefixed status line per call.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) OK(format string, args ...any)    { p.line(PrefixOK, format, args...) }
func (p *Printer) Warn(format string, args ...any)  { p.line(PrefixWarn, format, args...) }
func (p *Printer) Fail(format string, args ...any)  { p.line(PrefixFail, format, args...) }
func (p *Printer) Info(format string, args ...any)  { p.line(PrefixInfo, format, args...) }
func (p *Printer) Error(format string, args ...any) { p.line(PrefixError, format, args...) }

// Gate prints the detail line naming the finding that tripped the threshold.
func (p *Printer) Gate(format string, args ...any) { p.line(PrefixGate, format, args...) }

func (p *Printer) line(prefix, format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

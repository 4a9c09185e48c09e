package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newLogger(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    noColor || !isTerminal(w),
		}),
	)
}

// printer writes labelled results.
type printer struct {
	w     io.Writer
	label *color.Color
	ok    *color.Color
	fail  *color.Color
}

func newPrinter(w io.Writer, noColor bool) *printer {
	p := &printer{
		w:     w,
		label: color.New(color.FgCyan, color.Bold),
		ok:    color.New(color.FgGreen),
		fail:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.label, p.ok, p.fail} {
		if noColor || !isTerminal(w) {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return p
}

func (p *printer) field(name string, value any) {
	fmt.Fprintf(p.w, "%v %v\n", p.label.Sprintf("%v:", name), value)
}

func (p *printer) scenario(name string, value string, err error) {
	if err != nil {
		fmt.Fprintf(p.w, "%v %v %v\n", p.label.Sprintf("%v:", name), value, p.fail.Sprintf("FAIL (%v)", err))
		return
	}
	fmt.Fprintf(p.w, "%v %v %v\n", p.label.Sprintf("%v:", name), value, p.ok.Sprint("ok"))
}

func formatFloat(v float64, precision int) string {
	return strconv.FormatFloat(v, 'g', -1, precision)
}

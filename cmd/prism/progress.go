package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang/glog"
	"golang.org/x/term"
	"golang.org/x/time/rate"
)

// progressReporter prints render progress, redrawing a single line when the
// output is a terminal and logging otherwise.  Updates are throttled; the
// final one always goes through.
type progressReporter struct {
	out     io.Writer
	tty     bool
	limiter *rate.Limiter
}

func newProgressReporter(out *os.File) *progressReporter {
	tty := term.IsTerminal(int(out.Fd()))
	every := 5 * time.Second
	if tty {
		every = 100 * time.Millisecond
	}
	return &progressReporter{
		out:     out,
		tty:     tty,
		limiter: rate.NewLimiter(rate.Every(every), 1),
	}
}

func (p *progressReporter) Report(done, total int) {
	last := done == total
	if !last && !p.limiter.Allow() {
		return
	}

	pct := 100
	if total > 0 {
		pct = 100 * done / total
	}

	if !p.tty {
		glog.Infof("Rendered %d/%d pixels (%d%%)", done, total, pct)
		return
	}
	fmt.Fprintf(p.out, "\r%d/%d %d%%", done, total, pct)
	if last {
		fmt.Fprintf(p.out, "\n")
	}
}

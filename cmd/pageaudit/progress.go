package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/nao1215/pageaudit/internal/model"
	"github.com/nao1215/pageaudit/internal/report"
)

// progressPrinter writes one status line per finished page.
// Pages finish concurrently, so writes are serialized.
type progressPrinter struct {
	mu       sync.Mutex
	w        io.Writer
	total    int
	finished int
	failed   int
}

func newProgressPrinter(w io.Writer, total int) *progressPrinter {
	return &progressPrinter{w: w, total: total}
}

// Page matches audit.PageHook.
func (p *progressPrinter) Page(_ int, url string, page *model.PageAudit, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.finished++
	counter := fmt.Sprintf("[%d/%d]", p.finished, p.total)

	if err != nil {
		p.failed++
		color.New(color.FgRed, color.Bold).Fprintf(p.w, "%s FAILED %s: %v\n", counter, url, err)
		return
	}

	fmt.Fprintf(p.w, "%s ", counter)
	statusColor(page.Status).Fprintf(p.w, "%3d %-17s", page.OverallScore, report.StatusLabel(page.Status))
	fmt.Fprintf(p.w, " %s\n", url)
}

// Done prints the closing summary line.
func (p *progressPrinter) Done(elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, "\nAudited %d pages in %s", p.finished-p.failed, elapsed.Round(time.Millisecond))
	if p.failed > 0 {
		color.New(color.FgRed).Fprintf(p.w, " (%d failed)", p.failed)
	}
	fmt.Fprint(p.w, "\n\n")
}

// statusColor maps a status to its console color.
func statusColor(s model.Status) *color.Color {
	switch s {
	case model.StatusExcellent:
		return color.New(color.FgGreen, color.Bold)
	case model.StatusGood:
		return color.New(color.FgGreen)
	case model.StatusNeedsImprovement:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

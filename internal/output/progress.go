package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// ProgressPrinter renders a single in-place progress line for the active
// download. On non-interactive writers it degrades to occasional full lines.
type ProgressPrinter struct {
	dst         io.Writer
	interactive bool

	mu        sync.Mutex
	lastWidth int
	lastPrint time.Time
}

func NewProgressPrinter(dst io.Writer) *ProgressPrinter {
	return &ProgressPrinter{
		dst:         dst,
		interactive: SupportsInPlaceUpdates(dst),
	}
}

func SupportsInPlaceUpdates(dst io.Writer) bool {
	file, ok := dst.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// Update reports download progress. downloaded/total are byte counts; total
// may be zero when the remote size is unknown.
func (p *ProgressPrinter) Update(label string, downloaded, total int64, started time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	if !p.interactive && now.Sub(p.lastPrint) < 2*time.Second {
		return
	}
	p.lastPrint = now

	line := p.formatLine(label, downloaded, total, started, now)
	if p.interactive {
		pad := p.lastWidth - len(line)
		if pad < 0 {
			pad = 0
		}
		fmt.Fprintf(p.dst, "\r%s%s", line, strings.Repeat(" ", pad))
		p.lastWidth = len(line)
		return
	}
	fmt.Fprintln(p.dst, line)
}

// Finish terminates the in-place line so following output starts clean.
func (p *ProgressPrinter) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.interactive && p.lastWidth > 0 {
		fmt.Fprintln(p.dst)
	}
	p.lastWidth = 0
}

func (p *ProgressPrinter) formatLine(label string, downloaded, total int64, started time.Time, now time.Time) string {
	var rate string
	if !started.IsZero() {
		elapsed := now.Sub(started).Seconds()
		if elapsed > 0 && downloaded > 0 {
			rate = humanize.Bytes(uint64(float64(downloaded)/elapsed)) + "/s"
		}
	}

	if total > 0 {
		pct := float64(downloaded) / float64(total) * 100
		line := fmt.Sprintf("%s  %5.1f%% of %s", label, pct, humanize.Bytes(uint64(total)))
		if rate != "" {
			line += "  " + rate
		}
		return line
	}

	line := fmt.Sprintf("%s  %s", label, humanize.Bytes(uint64(downloaded)))
	if rate != "" {
		line += "  " + rate
	}
	return line
}

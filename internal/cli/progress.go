package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/dirrank/internal/dirrank"
)

// isTerminal reports whether stream is an interactive terminal.
func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// painter writes per-folder lines and, on terminals, a live status line.
// Hooks may be called from scanner goroutines, so writes are serialized.
type painter struct {
	mu   sync.Mutex
	w    io.Writer
	live bool
}

func newPainter(w io.Writer, live bool) *painter {
	p := &painter{w: w, live: live}

	if live {
		// Hide cursor for in-place updates; restored by close.
		fmt.Fprint(w, "\033[?25l")
	}

	return p
}

func (p *painter) folder(pr dirrank.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.live {
		fmt.Fprint(p.w, "\r\033[2K")
	}

	fmt.Fprintf(p.w, "  (%d/%d) Calculating size for: %s\n", pr.Index, pr.Total, pr.Path)
}

func (p *painter) tick(files int64, bytes uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	msg := fmt.Sprintf("Scanning… %s files, %s", humanize.Comma(files), humanize.IBytes(bytes))
	fmt.Fprintf(p.w, "\r\033[2K%s\r", msg)
}

// clear removes the status line.
func (p *painter) clear() {
	if !p.live {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprint(p.w, "\r\033[2K\r")
}

func (p *painter) close() {
	if p.live {
		fmt.Fprint(p.w, "\033[?25h")
	}
}

// promptRoot asks for a root specifier on out and reads one line from in.
func promptRoot(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter the local disk letter (e.g., C, D) or a path (e.g., home, /mnt/data): ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading root: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", dirrank.ErrEmptyRoot
	}

	return line, nil
}

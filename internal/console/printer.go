package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"veilchat/internal/domain"
)

// Printer writes peer messages as "<Peer>: <text>" lines. Styling is
// applied only when w is a color-capable terminal.
type Printer struct {
	w      io.Writer
	mu     sync.Mutex
	label  lipgloss.Style
	notice lipgloss.Style
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:      w,
		label:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		notice: r.NewStyle().Faint(true),
	}
}

func (p *Printer) Message(from, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "%s %s\n", p.label.Render(from+":"), text)
}

func (p *Printer) Notice(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, p.notice.Render(fmt.Sprintf(format, args...)))
}

var _ domain.Printer = (*Printer)(nil)

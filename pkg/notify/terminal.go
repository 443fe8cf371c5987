package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/gookit/color"
)

var severityStyles = map[Severity]color.Style{
	SeverityInfo:    {color.FgCyan},
	SeveritySuccess: {color.FgGreen},
	SeverityWarning: {color.FgYellow},
	SeverityDanger:  {color.FgRed, color.OpBold},
}

// TerminalSurface prints notifications as colored lines. A printed line cannot
// be taken back, so Hide only updates the visible set.
type TerminalSurface struct {
	mu      sync.Mutex
	out     io.Writer
	visible map[string]struct{}
}

// NewTerminalSurface writes to out, or stderr when out is nil.
func NewTerminalSurface(out io.Writer) *TerminalSurface {
	if out == nil {
		out = os.Stderr
	}
	return &TerminalSurface{out: out, visible: make(map[string]struct{})}
}

func (t *TerminalSurface) Show(_ context.Context, n Notification) error {
	style, ok := severityStyles[n.Severity]
	if !ok {
		style = severityStyles[SeverityInfo]
	}
	label := style.Sprintf("[%s]", strings.ToUpper(string(n.Severity)))

	t.mu.Lock()
	defer t.mu.Unlock()
	t.visible[n.ID] = struct{}{}
	if _, err := fmt.Fprintf(t.out, "%s %s\n", label, plainText(n.Message)); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	return nil
}

func (t *TerminalSurface) Hide(_ context.Context, id string) error {
	t.mu.Lock()
	delete(t.visible, id)
	t.mu.Unlock()
	return nil
}

// VisibleCount reports how many printed notifications have not expired yet.
func (t *TerminalSurface) VisibleCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.visible)
}

// plainText flattens HTML fragments (messages may carry inline markup) into
// a single line of text.
func plainText(msg string) string {
	if !strings.ContainsAny(msg, "<&") {
		return strings.TrimSpace(msg)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(msg))
	if err != nil {
		return strings.TrimSpace(msg)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

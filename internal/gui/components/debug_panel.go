package components

import (
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// DebugPanel is the development-only view of message traffic.
type DebugPanel struct {
	container *fyne.Container
	text      *widget.Label

	mu    sync.Mutex
	lines []string
}

func NewDebugPanel() *DebugPanel {
	p := &DebugPanel{text: widget.NewLabel("")}
	p.text.TextStyle = fyne.TextStyle{Monospace: true}
	p.text.Wrapping = fyne.TextWrapBreak

	scroll := container.NewVScroll(p.text)
	scroll.SetMinSize(fyne.NewSize(0, 160))

	p.container = container.NewBorder(
		widget.NewLabelWithStyle("Debug", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		scroll,
	)
	return p
}

func (p *DebugPanel) GetContainer() *fyne.Container {
	return p.container
}

// Append may be called from any goroutine.
func (p *DebugPanel) Append(line string) {
	p.mu.Lock()
	p.lines = append(p.lines, line)
	if len(p.lines) > DebugLineLimit {
		p.lines = p.lines[len(p.lines)-DebugLineLimit:]
	}
	text := strings.Join(p.lines, "\n")
	p.mu.Unlock()

	fyne.Do(func() {
		p.text.SetText(text)
	})
}

func (p *DebugPanel) Lines() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.lines...)
}

func (p *DebugPanel) Visible() bool {
	return p.container.Visible()
}

func (p *DebugPanel) SetVisible(visible bool) {
	if visible {
		p.container.Show()
	} else {
		p.container.Hide()
	}
}

func (p *DebugPanel) Toggle() {
	p.SetVisible(!p.Visible())
}

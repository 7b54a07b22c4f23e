// Package tui shows the animation live in a terminal, one panel at a time.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"SWR/internal/render"
	"SWR/internal/swr"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	sidebarWidth  = 32
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle   = lipgloss.NewStyle().Padding(1, 2)
	sidebarStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(sidebarWidth)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	warmupStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	displayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

type tickMsg time.Time

// Model is the bubbletea model. It owns its compositor and advances it one
// tick per frame interval.
type Model struct {
	comp     *swr.Compositor
	interval time.Duration
	yLimit   float64
	frame    swr.Frame
	ticked   bool
	paused   bool
	selected int
	width    int
	height   int
	err      error
}

// New builds a model drawing fps frames per second with a ±yLimit axis.
func New(c *swr.Compositor, fps int, yLimit float64) Model {
	if fps <= 0 {
		fps = 20
	}
	return Model{
		comp:     c,
		interval: time.Second / time.Duration(fps),
		yLimit:   yLimit,
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles keys, resizes and frame ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "tab", "right", "l":
			m.cycle(1)
		case "shift+tab", "left", "h":
			m.cycle(-1)
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tickMsg:
		if !m.paused {
			f, err := m.comp.Tick()
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.frame = f
			m.ticked = true
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) cycle(dir int) {
	n := len(m.comp.Panels())
	if n == 0 {
		return
	}
	m.selected = ((m.selected+dir)%n + n) % n
}

// Err returns the error that stopped the model, if any.
func (m Model) Err() error { return m.err }

// Frame returns the most recent frame.
func (m Model) Frame() swr.Frame { return m.frame }

// Selected returns the index of the panel on screen.
func (m Model) Selected() int { return m.selected }

// View renders the selected panel's graph next to a panel list.
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render("error: "+m.err.Error()) + "\n"
	}
	if !m.ticked {
		return labelStyle.Render("starting…") + "\n"
	}
	pf := m.frame.Panels[m.selected]
	graph := m.graph(pf)

	var s strings.Builder
	s.WriteString(headerStyle.Render("STANDING WAVES") + "\n")
	s.WriteString(m.status() + "\n\n")
	for i, p := range m.frame.Panels {
		line := fmt.Sprintf("%-18s", render.PanelTitle(p))
		if i == m.selected {
			s.WriteString(activeStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}
	s.WriteString(helpStyle.Render("SP:Pause  TAB:Next panel  Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, graphStyle.Render(graph), sidebarStyle.Render(s.String()))
}

func (m Model) status() string {
	t := m.frame.Tick
	var phase string
	if t.Phase == swr.PhaseWarmup {
		phase = warmupStyle.Render(fmt.Sprintf("WARM-UP %d/%d", t.Frame+1, m.comp.WarmupFrames()))
	} else {
		phase = displayStyle.Render(fmt.Sprintf("DISPLAY frame %d", t.Frame))
	}
	if m.paused {
		phase += labelStyle.Render(" (paused)")
	}
	return phase + "\n" + labelStyle.Render(fmt.Sprintf("t = %.3f", t.Time))
}

func (m Model) graph(pf swr.PanelFrame) string {
	series := [][]float64{pf.Total}
	colors := []asciigraph.AnsiColor{asciigraph.White}
	if finite(pf.EnvMax) && finite(pf.EnvMin) {
		series = append(series, pf.EnvMax, pf.EnvMin)
		colors = append(colors, asciigraph.DarkGray, asciigraph.DarkGray)
	}
	series = append(series, pf.Forward, pf.Reflected)
	colors = append(colors, asciigraph.Blue, asciigraph.Red)

	w := m.width - sidebarWidth - 16
	if w < 20 {
		w = 20
	}
	h := m.height - 8
	if h < 5 {
		h = 5
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(h),
		asciigraph.Width(w),
		asciigraph.LowerBound(-m.yLimit),
		asciigraph.UpperBound(m.yLimit),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(render.PanelTitle(pf)),
	)
}

func finite(ys []float64) bool {
	for _, y := range ys {
		if math.IsInf(y, 0) || math.IsNaN(y) {
			return false
		}
	}
	return len(ys) > 0
}

// Run drives the model in the alternate screen until the user quits.
func Run(c *swr.Compositor, fps int, yLimit float64) error {
	final, err := tea.NewProgram(New(c, fps, yLimit), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/tsunami/internal/solver"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

// Snapshot stores one height layer for replay.
type Snapshot struct {
	Height []float64
	Time   float64
	Energy float64
}

type TickMsg time.Time

// Model drives the live wave view: it owns the solver, a bounded
// replay history, and the UI state.
type Model struct {
	s        *solver.Solver
	params   solver.SimParams
	canvas   *Canvas
	yScale   float64
	running  bool
	history  []Snapshot
	playHead int
	selected int
	showHelp bool
	failed   error
}

var tuneKeys = []string{"c", "decay"}

// NewModel validates the parameters and seeds the solver.
func NewModel(p solver.SimParams) (Model, error) {
	s, err := solver.New(p)
	if err != nil {
		return Model{}, err
	}
	amp := p.Amplitude
	if amp == 0 {
		amp = 1.0
	}
	return Model{
		s:        s,
		params:   p,
		canvas:   NewCanvas(width, height),
		yScale:   float64(height*4) * 0.4 / amp,
		running:  true,
		history:  make([]Snapshot, 0, historyCapacity),
		playHead: -1,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the solver.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.failed == nil {
				m.running = !m.running
			}
		case "r":
			m.reset(m.params.Boundary)
		case "b":
			m.toggleBoundary()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "tab":
			m.selected = (m.selected + 1) % len(tuneKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && m.failed == nil {
			if m.playHead == -1 {
				m.step()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	if err := m.s.Step(); err != nil {
		m.failed = err
		m.running = false
		return
	}
	h := make([]float64, m.params.GridSize)
	m.s.CopyHeight(h)
	m.history = append(m.history, Snapshot{Height: h, Time: m.s.Time(), Energy: m.s.Energy()})
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Model) adjustParam(factor float64) {
	key := tuneKeys[m.selected]
	val := m.s.GetParams()[key]
	if val == 0 {
		val = 1e-6
	}
	// SetParam revalidates, so an adjustment past the stability
	// limit is rejected and the old value stays.
	_ = m.s.SetParam(key, val*factor)
	m.params = m.s.Params()
}

func (m *Model) toggleBoundary() {
	b := solver.BoundaryReflective
	if m.params.Boundary == solver.BoundaryReflective {
		b = solver.BoundaryFixed
	}
	m.reset(b)
}

// reset reseeds the solver from the original parameters, keeping any
// live-tuned values.
func (m *Model) reset(b solver.BoundaryPolicy) {
	p := m.params
	p.Boundary = b
	s, err := solver.New(p)
	if err != nil {
		return
	}
	m.s = s
	m.params = p
	m.history = m.history[:0]
	m.playHead = -1
	m.failed = nil
	m.running = true
}

// scrub moves the replay position through recorded history.
func (m *Model) scrub(dir int) {
	if len(m.history) == 0 {
		return
	}
	if m.playHead == -1 {
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

// View renders the wave profile next to a stats panel.
func (m Model) View() string {
	h := m.s.Height()
	t := m.s.Time()
	if m.playHead >= 0 && m.playHead < len(m.history) {
		snap := m.history[m.playHead]
		h, t = snap.Height, snap.Time
	}

	m.canvas.Clear()
	m.canvas.DrawProfile(h, m.yScale)
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("TSUNAMI") + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.history) > 1 {
		energies := make([]float64, len(m.history))
		for i, snap := range m.history {
			energies[i] = snap.Energy
		}
		chart := asciigraph.Plot(energies, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	peak := 0.0
	for _, v := range h {
		if v > peak {
			peak = v
		} else if -v > peak {
			peak = -v
		}
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f", t)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.s.StepCount())) + "\n")
	s.WriteString(labelStyle.Render("Peak") + valueStyle.Render(fmt.Sprintf("%.4f", peak)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4f", m.s.Energy())) + "\n")
	s.WriteString(labelStyle.Render("Courant") + valueStyle.Render(fmt.Sprintf("%.3f", m.params.Courant())) + "\n")
	s.WriteString(labelStyle.Render("Boundary") + valueStyle.Render(m.params.Boundary.String()) + "\n")

	s.WriteString("\nPARAMETERS\n")
	vals := m.s.GetParams()
	for i, k := range tuneKeys {
		line := fmt.Sprintf("%-8s %.4f", k, vals[k])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nB:Boundary ↑↓:Tune Tab:Select\n[ ]:Replay ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

func (m Model) status() string {
	switch {
	case m.failed != nil:
		return errorStyle.Render(fmt.Sprintf("UNSTABLE: %v", m.failed))
	case m.playHead != -1:
		last := m.history[len(m.history)-1].Time
		return fmt.Sprintf("REPLAY (%.1f)", m.history[m.playHead].Time-last)
	case !m.running:
		return "PAUSED"
	}
	return "RUNNING"
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset wave               ║
║  B        - Toggle boundary policy   ║
║  Q        - Quit                     ║
║  Tab      - Select parameter         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  [        - Rewind (replay)          ║
║  ]        - Forward (replay)         ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
`

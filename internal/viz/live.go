package viz

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/boxdrop/internal/config"
	"github.com/san-kum/boxdrop/internal/metrics"
	"github.com/san-kum/boxdrop/internal/physics"
	"github.com/san-kum/boxdrop/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600

	canvasPadX = 2
	canvasPadY = 1
	panelWidth = 45

	minCols = 10
	minRows = 5
)

type TickMsg time.Time

// Model is the terminal playground: a world, the canvas it is drawn on and
// the pointer state of the current press.
type Model struct {
	cfg     *config.Config
	world   *sim.World
	energy  *metrics.KineticEnergy
	canvas  *Canvas
	theme   Theme
	preset  string
	running bool
	pressed bool

	showBoxes bool
	showHelp  bool

	energyHistory []float64
	pairHistory   []float64
	frame         int
}

// NewModel validates cfg and builds an empty world sized to a default
// terminal. The real size arrives with the first tea.WindowSizeMsg.
func NewModel(cfg *config.Config) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}

	world := sim.New(cfg.Tuning())
	world.SetWorkers(cfg.Workers)
	energy := metrics.NewKineticEnergy()
	world.AddMetric(energy)

	return Model{
		cfg:           cfg,
		world:         world,
		energy:        energy,
		canvas:        NewCanvas(width, height, cfg.PixelsPerDot),
		theme:         GetTheme(cfg.Theme),
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		pairHistory:   make([]float64, 0, historyCapacity),
	}, nil
}

// World exposes the simulated world, mainly for tests.
func (m Model) World() *sim.World { return m.world }

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	interval := time.Duration(float64(time.Second) / m.cfg.FPS)
	return tea.Tick(interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cols := max(msg.Width-panelWidth-2*canvasPadX-1, minCols)
		rows := max(msg.Height-2*canvasPadY-1, minRows)
		m.canvas.Resize(cols, rows)
	case tea.MouseMsg:
		m.pointer(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.showBoxes = !m.showBoxes
		case " ", "space":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "p":
			m.cyclePreset()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.frame++
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// pointer maps a mouse event to spawn, drag and release. Coordinates
// outside the canvas are clamped by the boundary pass on the next tick.
func (m *Model) pointer(msg tea.MouseMsg) {
	x, y := m.canvas.CellToWorld(msg.X-canvasPadX, msg.Y-canvasPadY)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		s := m.cfg.Spawn
		if _, err := m.world.SpawnRectangle(x, y, s.Width, s.Height, s.Mass); err != nil {
			log.Printf("spawn at (%.1f, %.1f): %v", x, y, err)
			return
		}
		m.pressed = true
		log.Printf("spawn at (%.1f, %.1f)", x, y)
	case tea.MouseActionMotion:
		if m.pressed {
			m.world.Drag(x, y)
		}
	case tea.MouseActionRelease:
		if !m.pressed {
			return
		}
		m.pressed = false
		if b := m.world.Release(); b != nil {
			log.Printf("release at (%.1f, %.1f), %d bodies", x, y, m.world.Len())
		}
	}
}

func (m *Model) bounds() physics.Bounds {
	return physics.NewBounds(m.canvas.WorldSize())
}

func (m *Model) step() {
	m.world.Tick(m.cfg.Dt(), m.bounds())

	m.energyHistory = appendCapped(m.energyHistory, m.energy.Last())
	m.pairHistory = appendCapped(m.pairHistory, float64(len(m.world.DetectedPairs())))
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) reset() {
	log.Printf("reset: dropped %d bodies at t=%.2fs", m.world.Len(), m.world.Time())
	m.world.Reset()
	m.pressed = false
	m.energyHistory = m.energyHistory[:0]
	m.pairHistory = m.pairHistory[:0]
}

// cyclePreset switches tuning to the next named preset. Bodies already
// falling keep the gravity they were released with.
func (m *Model) cyclePreset() {
	names := config.ListPresets()
	next := names[0]
	for i, name := range names {
		if name == m.preset {
			next = names[(i+1)%len(names)]
			break
		}
	}
	m.preset = next
	m.cfg.Physics = config.Presets[next]
	m.world.SetTuning(m.cfg.Tuning())
	log.Printf("preset %s: %+v", next, m.cfg.Physics)
}

// penSurface is a physics.Surface that can switch to the highlight pen.
type penSurface interface {
	physics.Surface
	SetPen(hot bool)
}

// draw renders bodies onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	m.drawTo(m.canvas)
}

// drawTo renders every body, then the held one. With boxes shown, each gets
// an outline and members of an overlapping pair use the highlight pen.
func (m *Model) drawTo(s penSurface) {
	bodies := m.world.Bodies()
	hot := make([]bool, len(bodies))
	if m.showBoxes {
		for _, p := range m.world.DetectedPairs() {
			hot[p.I], hot[p.J] = true, true
		}
	}

	outline := func(b physics.Body) {
		if m.showBoxes {
			box := physics.BoxOf(b)
			s.StrokeRect(box.Left, box.Top, box.Width(), box.Height())
		}
	}
	for i, b := range bodies {
		s.SetPen(hot[i])
		b.Render(s)
		outline(b)
	}
	s.SetPen(false)
	if h := m.world.Held(); h != nil {
		h.Render(s)
		outline(h)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	st := newStyles(m.theme)
	m.draw()
	canvasView := st.canvas.Render(m.canvas.Render(st.hot))

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.cfg.Title), m.theme.Primary, m.theme.Secondary) + "\n")
	if m.running {
		s.WriteString(st.running.Render(AnimatedSpinner(m.frame)+" RUNNING") + "\n\n")
	} else {
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	w, h := m.canvas.WorldSize()
	pairs := len(m.world.DetectedPairs())
	rows := []struct{ label, value string }{
		{"Time", fmt.Sprintf("%.2fs", m.world.Time())},
		{"Bodies", fmt.Sprintf("%d", m.world.Len())},
		{"Pairs", fmt.Sprintf("%d", pairs)},
		{"Energy", fmt.Sprintf("%.0f", m.energy.Last())},
		{"World", fmt.Sprintf("%.0f x %.0f", w, h)},
		{"Gravity", fmt.Sprintf("%.0f", m.cfg.Physics.Gravity)},
		{"Bounce", fmt.Sprintf("%.2f", m.cfg.Physics.Restitution)},
		{"Friction", fmt.Sprintf("%.2f", m.cfg.Physics.GroundFriction)},
	}
	for _, r := range rows {
		s.WriteString(st.label.Render(r.label) + st.value.Render(r.value) + "\n")
	}
	if m.preset != "" {
		s.WriteString(st.label.Render("Preset") + st.value.Render(m.preset) + "\n")
	}
	if m.showBoxes {
		s.WriteString(st.label.Render("Pairs/tick") + SparklineChart(m.pairHistory, 28, st.hot) + "\n")
	}

	s.WriteString(st.help.Render(Separator(30, st.help) + "\nClick:Spawn  Drag:Move  Esc:Boxes\nSP:Pause R:Reset P:Preset T:Theme\n?:Help  Q:Quit"))
	statsView := st.stats.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Click    - Spawn a box              ║
║  Drag     - Move the held box        ║
║  Release  - Drop it                  ║
║  Esc      - Toggle bounding boxes    ║
║  Space    - Pause/Resume simulation  ║
║  R        - Remove all boxes         ║
║  P        - Cycle physics presets    ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the terminal playground and blocks until the user quits.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return &physics.SystemError{Op: "run terminal", Err: err}
	}
	return nil
}

// Package console holds the terminal frontend and the sweep report.
package console

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"surfacewave/pond"
)

const (
	rowsPerUnit   = 4
	minRows       = 8
	minCols       = 20
	chromeRows    = 3
	cursorStep    = 0.25
	dropHeight    = 4.0
	defaultWidth  = 80
	defaultHeight = 24
)

// Cell glyphs, also used as style classes when rendering.
const (
	glyphAir     = ' '
	glyphSurface = '~'
	glyphWater   = '░'
	glyphBody    = 'o'
	glyphAbove   = 'v'
	glyphCursor  = '▼'
)

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the Bubbletea model for the terminal frontend. It drives the scene
// on the program goroutine at the scene's tick rate.
type Model struct {
	scene    *pond.Scene
	interval time.Duration

	// cursor is the drop target; shown eases towards it on a spring.
	cursor  float64
	shown   float64
	shownV  float64
	spring  harmonica.Spring
	width   int
	height  int
	paused  bool
	stepReq bool

	err      error
	quitting bool
}

// NewModel wraps s with the drop cursor over the middle of the strip.
func NewModel(s *pond.Scene) Model {
	tps := s.Settings().TPS
	cfg := s.Field().Config()
	mid := cfg.Left + cfg.Width/2
	return Model{
		scene:    s,
		interval: time.Second / time.Duration(tps),
		cursor:   mid,
		shown:    mid,
		spring:   harmonica.NewSpring(harmonica.FPS(tps), 8, 0.9),
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// Err reports the error that stopped the scene, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.interval), tea.SetWindowTitle("surfacewave"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if !m.paused || m.stepReq {
			m.stepReq = false
			if err := m.scene.Update(); err != nil {
				m.err = err
				m.quitting = true
				return m, tea.Quit
			}
		}
		m.shown, m.shownV = m.spring.Update(m.shown, m.shownV, m.cursor)
		return m, tickCmd(m.interval)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cfg := m.scene.Field().Config()
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	case "left", "h":
		m.cursor = math.Max(cfg.Left, m.cursor-cursorStep)
	case "right", "l":
		m.cursor = math.Min(cfg.Left+cfg.Width, m.cursor+cursorStep)
	case " ", "enter", "d":
		m.scene.Drop(m.cursor, dropHeight, 0)
	case "p":
		m.paused = !m.paused
	case "n":
		if m.paused {
			m.stepReq = true
		}
	case "r":
		if err := m.scene.Rebuild(cfg); err != nil {
			m.err = err
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	cols := max(m.width, minCols)
	rows := max(m.height-chromeRows, minRows)
	grid := m.grid(cols, rows)

	var b strings.Builder
	b.WriteString(m.cursorLine(cols))
	b.WriteByte('\n')
	for _, row := range grid {
		b.WriteString(renderRow(row))
		b.WriteByte('\n')
	}
	f := m.scene.Field()
	state := "running"
	if m.paused {
		state = "paused"
	}
	status := fmt.Sprintf("tick %d  %s  bodies %d  energy %.4f  max |y| %.4f  x %.2f",
		f.Tick(), state, len(m.scene.Bodies()), f.Energy(), f.MaxDisplacement(), m.cursor)
	if m.err != nil {
		status += "  error: " + m.err.Error()
	}
	b.WriteString(statusLineStyle.Render(status))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("←/→ aim  space drop  p pause  n step  r rebuild  q quit"))
	return b.String()
}

// grid rasterises the strip surface and bodies into rows×cols glyphs. The
// rest line sits two thirds of the way down.
func (m Model) grid(cols, rows int) [][]rune {
	f := m.scene.Field()
	cfg := f.Config()
	rest := rows * 2 / 3
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, cols)
	}
	for c := 0; c < cols; c++ {
		x := cfg.Left + cfg.Width*(float64(c)+0.5)/float64(cols)
		surface := rest - int(math.Round(f.SurfaceAt(x)*rowsPerUnit))
		for r := 0; r < rows; r++ {
			switch {
			case r < surface:
				grid[r][c] = glyphAir
			case r == surface:
				grid[r][c] = glyphSurface
			default:
				grid[r][c] = glyphWater
			}
		}
	}
	for _, body := range m.scene.Bodies() {
		c := int((body.Pos.X - cfg.Left) / cfg.Width * float64(cols))
		if c < 0 || c >= cols {
			continue
		}
		r := rest - int(math.Round(body.Pos.Y*rowsPerUnit))
		switch {
		case r < 0:
			grid[0][c] = glyphAbove
		case r < rows:
			grid[r][c] = glyphBody
		}
	}
	return grid
}

func (m Model) cursorLine(cols int) string {
	cfg := m.scene.Field().Config()
	c := int((m.shown - cfg.Left) / cfg.Width * float64(cols))
	c = max(0, min(cols-1, c))
	return strings.Repeat(" ", c) + bodyStyle.Render(string(glyphCursor))
}

// renderRow styles runs of identical glyphs in one call each.
func renderRow(row []rune) string {
	var b strings.Builder
	for i := 0; i < len(row); {
		j := i
		for j < len(row) && row[j] == row[i] {
			j++
		}
		run := string(row[i:j])
		switch row[i] {
		case glyphSurface:
			b.WriteString(surfaceStyle.Render(run))
		case glyphWater:
			b.WriteString(waterStyle.Render(run))
		case glyphBody, glyphAbove:
			b.WriteString(bodyStyle.Render(run))
		default:
			b.WriteString(run)
		}
		i = j
	}
	return b.String()
}

// RunTUI runs the terminal frontend until the user quits.
func RunTUI(s pond.Settings) error {
	scene, err := pond.NewScene(s)
	if err != nil {
		return err
	}
	p := tea.NewProgram(NewModel(scene), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

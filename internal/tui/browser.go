// Package tui is an interactive analysis browser. It presents the
// available analyses as a menu, runs the selection against the
// configured system and shows the rendered report.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avierra/optray/internal/analysis"
	"github.com/avierra/optray/internal/config"
	"github.com/avierra/optray/internal/psf"
	"github.com/avierra/optray/internal/report"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

type state int

const (
	stateMenu state = iota
	stateRunning
	stateResult
)

type entry struct {
	name string
	info string
	run  func(cfg *config.Config) (string, error)
}

var entries = []entry{
	{"spot", "centroids and spot radii", runSpot},
	{"encircled", "fractional energy vs radius", runEncircled},
	{"fan", "transverse ray aberration fans", runFan},
	{"distortion", "distortion vs field", runDistortion},
	{"grid", "chief ray grid distortion", runGrid},
	{"curvature", "tangential and sagittal focal shift", runCurvature},
	{"yybar", "paraxial marginal and chief heights", runYYbar},
	{"psf", "diffraction point spread function", runPSF},
}

type model struct {
	state  state
	cursor int
	cfg    *config.Config
	result string
	err    error
	width  int
	height int
}

// NewBrowser builds the browser over the given configuration.
func NewBrowser(cfg *config.Config) tea.Model {
	return model{cfg: cfg, width: 80, height: 24}
}

func (m model) Init() tea.Cmd { return nil }

type resultMsg struct {
	text string
	err  error
}

func runEntry(e entry, cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		text, err := e.run(cfg)
		return resultMsg{text: text, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case resultMsg:
		m.state = stateResult
		m.result = msg.text
		m.err = msg.err
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.state == stateResult {
			m.state = stateMenu
			return m, nil
		}
		return m, tea.Quit
	case "esc":
		m.state = stateMenu
		return m, nil
	case "up", "k":
		if m.state == stateMenu && m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.state == stateMenu && m.cursor < len(entries)-1 {
			m.cursor++
		}
	case "enter":
		if m.state == stateMenu {
			m.state = stateRunning
			return m, runEntry(entries[m.cursor], m.cfg)
		}
	}
	return m, nil
}

func (m model) View() string {
	switch m.state {
	case stateRunning:
		return yellow.Render("running "+entries[m.cursor].name+"...") + "\n"
	case stateResult:
		if m.err != nil {
			return report.Warn.Render("error: "+m.err.Error()) + "\n\n" + dim.Render("q/esc back") + "\n"
		}
		return m.result + "\n" + dim.Render("q/esc back") + "\n"
	}

	var b strings.Builder
	b.WriteString(cyan.Render("optray") + dim.Render("  optical analysis browser") + "\n\n")
	for i, e := range entries {
		cursor := "  "
		name := e.name
		if i == m.cursor {
			cursor = green.Render("> ")
			name = green.Render(name)
		}
		b.WriteString(fmt.Sprintf("%s%-12s %s\n", cursor, name, dim.Render(e.info)))
	}
	b.WriteString("\n" + dim.Render("↑/↓ move · enter run · q quit") + "\n")
	return b.String()
}

func runSpot(cfg *config.Config) (string, error) {
	sys, err := cfg.BuildSystem()
	if err != nil {
		return "", err
	}
	dist, err := cfg.Distribution()
	if err != nil {
		return "", err
	}
	sd, err := analysis.NewSpotDiagram(context.Background(), sys, analysis.SpotOptions{
		NumRings:     cfg.Analysis.NumRings,
		Distribution: dist,
	})
	if err != nil {
		return "", err
	}
	return report.Spot(sd), nil
}

func runEncircled(cfg *config.Config) (string, error) {
	sys, err := cfg.BuildSystem()
	if err != nil {
		return "", err
	}
	ee, err := analysis.NewEncircledEnergy(context.Background(), sys, analysis.EncircledOptions{
		NumRays:   cfg.Analysis.EERays,
		NumPoints: cfg.Analysis.NumPoints,
	})
	if err != nil {
		return "", err
	}
	return report.Encircled(ee), nil
}

func runFan(cfg *config.Config) (string, error) {
	sys, err := cfg.BuildSystem()
	if err != nil {
		return "", err
	}
	rf, err := analysis.NewRayFan(context.Background(), sys, analysis.RayFanOptions{
		NumPoints: cfg.Analysis.FanPoints,
	})
	if err != nil {
		return "", err
	}
	return report.RayFan(rf), nil
}

func runDistortion(cfg *config.Config) (string, error) {
	sys, err := cfg.BuildSystem()
	if err != nil {
		return "", err
	}
	dm, err := analysis.ParseDistortionModel(cfg.Analysis.DistortionType)
	if err != nil {
		return "", err
	}
	d, err := analysis.NewDistortion(context.Background(), sys, analysis.DistortionOptions{
		NumPoints: cfg.Analysis.NumPoints,
		Model:     dm,
	})
	if err != nil {
		return "", err
	}
	return report.Distortion(d), nil
}

func runGrid(cfg *config.Config) (string, error) {
	sys, err := cfg.BuildSystem()
	if err != nil {
		return "", err
	}
	dm, err := analysis.ParseDistortionModel(cfg.Analysis.DistortionType)
	if err != nil {
		return "", err
	}
	gd, err := analysis.NewGridDistortion(context.Background(), sys, analysis.GridDistortionOptions{
		NumPoints: cfg.Analysis.GridPoints,
		Model:     dm,
	})
	if err != nil {
		return "", err
	}
	return report.GridDistortion(gd), nil
}

func runCurvature(cfg *config.Config) (string, error) {
	sys, err := cfg.BuildSystem()
	if err != nil {
		return "", err
	}
	fc, err := analysis.NewFieldCurvature(context.Background(), sys, analysis.FieldCurvatureOptions{
		NumPoints: cfg.Analysis.NumPoints,
	})
	if err != nil {
		return "", err
	}
	return report.Curvature(fc), nil
}

func runYYbar(cfg *config.Config) (string, error) {
	sys, err := cfg.BuildSystem()
	if err != nil {
		return "", err
	}
	return report.YYbar(analysis.NewYYbar(sys)), nil
}

func runPSF(cfg *config.Config) (string, error) {
	sys, err := cfg.BuildSystem()
	if err != nil {
		return "", err
	}
	p, err := psf.New(sys, sys.Fields().Coords()[0], nil, psf.Options{
		NumRays:  cfg.Analysis.PSFRays,
		GridSize: cfg.Analysis.PSFGrid,
	})
	if err != nil {
		return "", err
	}
	return report.PSF(p), nil
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unklstewy/flapsim/pkg/airflow"
	"github.com/unklstewy/flapsim/pkg/airfoil"
	"github.com/unklstewy/flapsim/pkg/config"
	"github.com/unklstewy/flapsim/pkg/flap"
)

type model struct {
	session *airflow.Session
	frame   time.Duration
	width   int
	height  int
	err     error
}

type frameMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tick(m.frame)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case frameMsg:
		m.session.Step()
		return m, tick(m.frame)

	case tea.KeyMsg:
		// Clear error on any keypress
		if m.err != nil {
			m.err = nil
			return m, nil
		}

		switch key := msg.String(); key {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "right", "+", "=":
			m.session.IncreaseAirspeed()
		case "left", "-", "_":
			m.session.DecreaseAirspeed()
		case " ":
			m.session.TogglePause()
		case "r":
			m.session.Reset()
		default:
			if v, ok := variantForKey(key); ok {
				m.err = m.session.Select(v)
			}
		}
	}
	return m, nil
}

// variantForKey maps "1".."9" to the first nine devices and "0" to the tenth.
func variantForKey(key string) (flap.Variant, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return 0, false
	}
	idx := int(key[0]-'0') - 1
	if key == "0" {
		idx = 9
	}
	all := flap.All()
	if idx >= len(all) {
		return 0, false
	}
	return all[idx], true
}

func (m model) fieldSize() (int, int) {
	cols := m.width - 2
	if cols < minFieldCols {
		cols = minFieldCols
	}
	rows := m.height - 9 // header, status and help lines
	if rows < minFieldRows {
		rows = minFieldRows
	}
	return cols, rows
}

func (m model) View() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)
	s.WriteString(titleStyle.Render("FLAPSIM AIRFLOW VIEWER"))
	s.WriteString("\n\n")

	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		s.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n\n")
	}

	s.WriteString(m.renderVariants())
	s.WriteString("\n")

	cols, rows := m.fieldSize()
	s.WriteString(renderField(rasterize(m.session, cols, rows)))
	s.WriteString("\n")

	s.WriteString(m.renderStatus())
	s.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	s.WriteString(helpStyle.Render("1-9/0: Device  ←/→ +/-: Airspeed  SPACE: Pause  R: Reset  Q: Quit"))
	s.WriteString("\n")

	return s.String()
}

func (m model) renderVariants() string {
	selected := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("16")).
		Background(lipgloss.Color("86"))
	normal := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	labels := make([]string, 0, len(flap.All()))
	for i, v := range flap.All() {
		label := fmt.Sprintf(" %d %s ", (i+1)%10, v)
		if v == m.session.Variant() {
			labels = append(labels, selected.Render(label))
		} else {
			labels = append(labels, normal.Render(label))
		}
	}
	return strings.Join(labels, "")
}

func (m model) renderStatus() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("226"))

	state := "running"
	if m.session.Paused() {
		state = "paused"
	}

	fields := []struct{ label, value string }{
		{"Device", m.session.Variant().String()},
		{"Airspeed", fmt.Sprintf("%.0f kts", m.session.Airspeed())},
		{"Deployment", fmt.Sprintf("%+.1f°", m.session.Deployment()*airfoil.RadiansToDegrees)},
		{"Phase", fmt.Sprintf("%.0f°", m.session.Phase())},
		{"State", state},
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = labelStyle.Render(f.label+": ") + valueStyle.Render(f.value)
	}
	return strings.Join(parts, "  ")
}

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to configuration file")
	initial := flag.String("device", flap.Plain.Slug(), "Initial device (name or slug)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	v, err := flap.Parse(*initial)
	if err != nil {
		log.Fatalf("Invalid device: %v", err)
	}

	spec, err := cfg.Airfoil.Spec()
	if err != nil {
		log.Fatalf("Invalid airfoil: %v", err)
	}

	session, err := airflow.NewSession(cfg.Viewer.Airflow(), spec, v)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	m := model{
		session: session,
		frame:   time.Second / time.Duration(cfg.Viewer.FPS),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

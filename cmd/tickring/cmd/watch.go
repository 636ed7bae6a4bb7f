package cmd

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/tickring/cmd/tickring/internal/config"
	"github.com/go-drift/tickring/cmd/tickring/internal/term"
	"github.com/go-drift/tickring/pkg/animation"
	tickerrors "github.com/go-drift/tickring/pkg/errors"
	"github.com/go-drift/tickring/pkg/graphics"
	"github.com/go-drift/tickring/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "watch",
		Short: "Play the animation in the terminal",
		Long: `Play the configured animation in the terminal.

Keys:
  space   pause / resume
  c       cancel (freeze in place)
  r       restart toward the other end
  q       quit

Flags:
  --config FILE   Read settings from FILE instead of ./tickring.yaml`,
		Usage: "tickring watch [--config FILE]",
		Run:   runWatch,
	})
}

// Default ring size in cells before the first WindowSizeMsg.
const (
	defaultCols = 41
	defaultRows = 21
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0caf5")).
			MarginTop(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)

// frameMsg drives one scheduler step per display frame.
type frameMsg time.Time

// watchModel hosts one indicator. Completions are counted synchronously
// inside the frame step.
type watchModel struct {
	cfg       *config.Resolved
	scheduler *animation.Scheduler
	ind       *widgets.TickProgressIndicator
	recorder  graphics.PictureRecorder
	list      *graphics.DisplayList

	cols, rows  int
	completions int
	failures    int
}

func newWatchModel(cfg *config.Resolved, clock animation.Clock) *watchModel {
	scheduler := animation.NewScheduler(clock)
	ind := widgets.NewTickProgressIndicator(scheduler)
	ind.Style = cfg.Style
	ind.SetValue(cfg.From)

	m := &watchModel{
		cfg:       cfg,
		scheduler: scheduler,
		ind:       ind,
		cols:      defaultCols,
		rows:      defaultRows,
	}
	m.start(cfg.To)
	m.record()
	return m
}

func (m *watchModel) start(target float64) {
	m.ind.SetProgress(target, m.cfg.Duration, func() { m.completions++ })
}

// record captures the indicator into a display list sized for the current
// terminal grid. View replays it.
func (m *watchModel) record() {
	grid := term.NewCanvas(m.cols, m.rows)
	canvas := m.recorder.BeginRecording(grid.Size())
	m.ind.Paint(canvas, grid.Size())
	m.list = m.recorder.EndRecording()
}

func frameTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *watchModel) Init() tea.Cmd {
	return frameTick(m.cfg.FrameInterval())
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.ind.Dispose()
			return m, tea.Quit
		case " ":
			if !m.ind.PauseProgress() {
				m.ind.ResumeProgress()
			}
		case "c":
			m.ind.CancelProgress()
		case "r":
			m.start(m.otherEnd())
		}
		m.record()
		return m, nil

	case tea.WindowSizeMsg:
		side := max(min(msg.Width, (msg.Height-3)*2), 4)
		m.cols, m.rows = side, side/2
		m.record()
		return m, nil

	case frameMsg:
		stepFrame(m.scheduler, func(any) {
			m.ind.CancelProgress()
			m.failures++
		})
		if m.ind.NeedsPaint() {
			m.record()
		}
		return m, frameTick(m.cfg.FrameInterval())
	}
	return m, nil
}

// otherEnd picks whichever configured endpoint is farther from the
// current value.
func (m *watchModel) otherEnd() float64 {
	v := m.ind.Value()
	if math.Abs(v-m.cfg.From) < math.Abs(v-m.cfg.To) {
		return m.cfg.To
	}
	return m.cfg.From
}

func (m *watchModel) View() string {
	grid := term.NewCanvas(m.cols, m.rows)
	if m.list != nil {
		m.list.Paint(grid)
	}

	var sb strings.Builder
	sb.WriteString(grid.Render())
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(m.statusLine()))
	sb.WriteString("\n")
	sb.WriteString(hintStyle.Render("space pause/resume · c cancel · r restart · q quit"))
	return sb.String()
}

func (m *watchModel) statusLine() string {
	remaining := m.ind.RemainingDuration().Round(10 * time.Millisecond)
	line := fmt.Sprintf("%5.1f%%  %-9s  remaining %-8s  completed %d",
		m.ind.Value()*100, m.ind.Status(), remaining, m.completions)
	if m.failures > 0 {
		line += fmt.Sprintf("  failed %d", m.failures)
	}
	return line
}

func runWatch(args []string) error {
	var configPath string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config":
			v, err := flagValue(args, i)
			if err != nil {
				return err
			}
			configPath = v
			i++
		default:
			return fmt.Errorf("unknown flag %q\n\nUsage: tickring watch [--config FILE]", args[i])
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.LoadResolved(configPath, wd)
	if err != nil {
		return err
	}

	m := newWatchModel(cfg, nil)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		tickerrors.Report(&tickerrors.TickError{
			Op:   "watch.Run",
			Kind: tickerrors.KindRender,
			Err:  err,
		})
		return err
	}
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepwise/pkg/gallery"
	"github.com/matzehuels/stepwise/pkg/player"
	"github.com/matzehuels/stepwise/pkg/pseudocode"
	"github.com/matzehuels/stepwise/pkg/step"
)

// Speed bounds for the interactive player.
const (
	minPaceScale = 0.125
	maxPaceScale = 8.0
	refreshEvery = 50 * time.Millisecond
)

var (
	codeStyle       = lipgloss.NewStyle().Foreground(colorGray)
	codeActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	noteStyle       = lipgloss.NewStyle().Foreground(colorWhite)
	panelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// playCommand creates the interactive step player.
func (c *CLI) playCommand() *cobra.Command {
	var input inputOpts
	speed := player.DefaultPaceScale

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Interactive step player with pseudocode highlighting",
		Long: `Play an algorithm in a full-screen view that highlights the pseudocode
line of every step.

Keys: space/enter replay, +/- change speed, q quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, pace, err := input.request()
			if err != nil {
				return err
			}
			// Validate before the screen takes over the terminal.
			if _, err := gallery.New(req); err != nil {
				return err
			}
			m := newPlayModel(cmd.Context(), req, pace*speed)
			defer m.stop()
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return cmd.Context().Err()
			}
			return err
		},
	}

	bindInputFlags(cmd, &input)
	cmd.Flags().Float64Var(&speed, "pace", speed, "initial pace multiplier")
	return cmd
}

// scaledPacer waits for the step's suggested pace times a scale that can be
// changed while a run animates.
type scaledPacer struct {
	bits atomic.Uint64
}

func newScaledPacer(scale float64) *scaledPacer {
	p := &scaledPacer{}
	p.set(scale)
	return p
}

func (p *scaledPacer) scale() float64 { return math.Float64frombits(p.bits.Load()) }

func (p *scaledPacer) set(scale float64) {
	p.bits.Store(math.Float64bits(min(max(scale, minPaceScale), maxPaceScale)))
}

func (p *scaledPacer) Wait(ctx context.Context, s step.Step) error {
	return player.Suggested(p.scale()).Wait(ctx, s)
}

// playModel is the bubbletea model of the play command. The player runs in
// its own goroutine; the model polls snapshots on every tick.
type playModel struct {
	ctx     context.Context
	cancel  context.CancelFunc
	req     gallery.Request
	listing pseudocode.Listing
	pacer   *scaledPacer
	player  *player.Player
	state   player.State
	notice  string
	err     error
}

type tickMsg time.Time

func newPlayModel(parent context.Context, req gallery.Request, scale float64) *playModel {
	ctx, cancel := context.WithCancel(parent)
	pacer := newScaledPacer(scale)
	listing, _ := pseudocode.Lookup(req.Resolve())
	return &playModel{
		ctx:     ctx,
		cancel:  cancel,
		req:     req,
		listing: listing,
		pacer:   pacer,
		player:  player.New(player.WithPacer(pacer), player.WithLogger(loggerFromContext(parent))),
	}
}

func (m *playModel) Init() tea.Cmd {
	m.start()
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// start begins a new run. Edits and replays are refused while animating.
func (m *playModel) start() {
	gen, err := gallery.New(m.req)
	if err != nil {
		m.err = err
		return
	}
	if _, _, err := m.player.Start(m.ctx, gen, nil); err != nil {
		if errors.Is(err, player.ErrBusy) {
			m.notice = "A run is in progress"
			return
		}
		m.err = err
		return
	}
	m.notice = ""
}

func (m *playModel) stop() { m.cancel() }

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.state = m.player.State()
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		case " ", "enter", "r":
			m.start()
		case "+", "=":
			m.pacer.set(m.pacer.scale() / 2)
		case "-", "_":
			m.pacer.set(m.pacer.scale() * 2)
		}
	}
	return m, nil
}

func (m *playModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.listing.Title))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(renderListing(m.listing, m.state.Line())))
	b.WriteString("\n\n")

	st := m.state
	if st.Current != nil {
		fmt.Fprintf(&b, "%s %s\n", StyleDim.Render(fmt.Sprintf("step %d ·", st.Applied)), StyleHighlight.Render(string(st.Current.Kind)))
		b.WriteString(noteStyle.Render(st.Current.Note))
		b.WriteString("\n")
		if p := payloadLine(st.Current.Payload); p != "" {
			b.WriteString(StyleDim.Render(p))
			b.WriteString("\n")
		}
	}
	switch {
	case m.err != nil:
		b.WriteString("\n" + styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
	case st.Done():
		b.WriteString("\n" + styleIconSuccess.Render(iconSuccess) + " " + st.Summary + "\n")
	case st.Cancelled:
		b.WriteString("\n" + StyleWarning.Render("stopped") + "\n")
	}
	if m.notice != "" {
		b.WriteString(StyleWarning.Render(m.notice) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("space replay  +/- speed (×%.3g)  q quit", m.pacer.scale())))
	return b.String()
}

// renderListing numbers the pseudocode and marks the active line.
func renderListing(l pseudocode.Listing, active int) string {
	lines := make([]string, len(l.Lines))
	for i, text := range l.Lines {
		if i == active {
			lines[i] = codeActiveStyle.Render(fmt.Sprintf("▸ %2d  %s", i, text))
			continue
		}
		lines[i] = codeStyle.Render(fmt.Sprintf("  %2d  %s", i, text))
	}
	return strings.Join(lines, "\n")
}

// payloadLine renders a snapshot compactly, truncated to one line.
func payloadLine(payload any) string {
	if payload == nil {
		return ""
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return truncate(string(data), 160)
}

// truncate shortens s to at most limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit-1]) + "…"
}

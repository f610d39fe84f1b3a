package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/captureGo/internal/match"
	"github.com/pkg/errors"
)

const maxRecentMatches = 10

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Width(16)
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

type tickMsg time.Time

// doneMsg is sent when all matches finished, with the error returned by runMatches.
type doneMsg struct{ err error }

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForUpdate(updates <-chan matchUpdate, done <-chan error) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{err: <-done}
		}
		return update
	}
}

type model struct {
	cancel  func()
	updates <-chan matchUpdate
	done    <-chan error

	tally    match.Tally
	recent   []string
	now      time.Time
	quitting bool
	err      error
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates, m.done), tickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			// Matches in progress are interrupted, the program quits once they return.
			m.quitting = true
			m.cancel()
		}
	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()
	case matchUpdate:
		m.tally = msg.Tally
		var line string
		if msg.Err != nil {
			line = failedStyle.Render(fmt.Sprintf("Match-%05d: failed: %v", msg.MatchIdx, msg.Err))
		} else {
			line = msg.Result.String()
		}
		m.recent = append([]string{line}, m.recent...)
		if len(m.recent) > maxRecentMatches {
			m.recent = m.recent[:maxRecentMatches]
		}
		return m, waitForUpdate(m.updates, m.done)
	case doneMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	t := &m.tally
	elapsed := m.now.Sub(t.Start).Round(time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s vs %s", t.A, t.B)))
	sb.WriteString("\n\n")
	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(value)
		sb.WriteString("\n")
	}
	row("Played:", fmt.Sprintf("%d of %d", t.Played, t.Total))
	for idx, name := range []string{t.A, t.B} {
		row(name+":", fmt.Sprintf("%d wins (Red: %d, Blue: %d)", t.Wins(idx), t.WinsAsRed[idx], t.WinsAsBlue[idx]))
	}
	row("Draws:", fmt.Sprintf("%d", t.Draws))
	row("Score (A):", fmt.Sprintf("%+d", t.ScoreA))
	if t.Failed > 0 || t.Interrupted > 0 {
		row("Failed:", failedStyle.Render(fmt.Sprintf("%d (%d interrupted)", t.Failed, t.Interrupted)))
	}
	row("Illegal/slow:", fmt.Sprintf("%d / %d", t.IllegalActions, t.SlowTurns))
	row("Duration:", elapsed.String())
	if secs := elapsed.Seconds(); secs >= 1 {
		row("Moves/sec:", fmt.Sprintf("%.1f", float64(t.Moves)/secs))
	}
	sb.WriteString("\nRecent matches:\n")
	for _, line := range m.recent {
		sb.WriteString("  " + line + "\n")
	}
	if m.quitting {
		sb.WriteString(helpStyle.Render("\nInterrupting matches in progress...\n"))
	} else {
		sb.WriteString(helpStyle.Render("\nPress q to quit.\n"))
	}
	return sb.String()
}

// runWithTUI runs the matches while displaying the progress with an interactive terminal UI.
func runWithTUI(ctx context.Context, cancel func(), c *comparison) error {
	updates := make(chan matchUpdate, *flagNumMatches)
	done := make(chan error, 1)
	go func() {
		done <- c.runMatches(ctx, func(update matchUpdate) { updates <- update })
		close(updates)
	}()

	c.mu.Lock()
	initial := model{cancel: cancel, updates: updates, done: done, tally: *c.tally, now: time.Now()}
	c.mu.Unlock()
	final, err := tea.NewProgram(initial).Run()
	if err != nil {
		return errors.Wrap(err, "progress display failed")
	}
	m := final.(model)
	fmt.Println(m.tally.String())
	return m.err
}

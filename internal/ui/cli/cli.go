// Package cli implements a command-line UI to watch capture matches.
package cli

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/captureGo/internal/agents"
	"github.com/janpfeifer/captureGo/internal/match"
	. "github.com/janpfeifer/captureGo/internal/state"
	"golang.org/x/term"
)

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len(ansiFilter.ReplaceAllString(s, ""))
}

var (
	teamStyles = [2]lipgloss.Style{
		TeamRed:  lipgloss.NewStyle().Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15")).Bold(true),
		TeamBlue: lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15")).Bold(true),
	}
	scaredStyle  = lipgloss.NewStyle().Background(lipgloss.Color("7")).Foreground(lipgloss.Color("0"))
	wallStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	foodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	capsuleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Italic(true).Bold(true)
	drawStyle    = lipgloss.NewStyle().Background(lipgloss.Color("13")).Foreground(lipgloss.Color("0")).Padding(1, 2)
)

// UI prints boards and match results to a terminal (or any writer).
type UI struct {
	out                io.Writer
	color, clearScreen bool

	// width of the terminal, used to center the board. 0 if unknown.
	width int
}

// New creates a UI that prints to stdout.
func New(color bool, clearScreen bool) *UI {
	ui := NewWithWriter(os.Stdout, color)
	ui.clearScreen = clearScreen
	if term.IsTerminal(int(os.Stdout.Fd())) {
		ui.width, _, _ = term.GetSize(int(os.Stdout.Fd()))
	}
	return ui
}

// NewWithWriter creates a UI that prints to out, without clearing the screen or centering.
func NewWithWriter(out io.Writer, color bool) *UI {
	return &UI{out: out, color: color}
}

func (ui *UI) printCentered(block string) {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((ui.width-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(ui.out)
			continue
		}
		_, _ = fmt.Fprintf(ui.out, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

func (ui *UI) render(style lipgloss.Style, s string) string {
	if !ui.color {
		return s
	}
	return style.Render(s)
}

// Render returns the board as text, top row first, using the layout glyphs. Agents are shown with
// the digit used for their spawn in the layout (agent index + 1).
func (ui *UI) Render(board *Board) string {
	grid := board.Grid()
	agentAt := make(map[Cell]int, board.NumAgents())
	for agent := board.NumAgents() - 1; agent >= 0; agent-- {
		agentAt[board.Agents[agent].Pos.Cell()] = agent
	}
	capsules := append(board.Capsules(TeamRed), board.Capsules(TeamBlue)...)

	var sb strings.Builder
	for y := grid.Height() - 1; y >= 0; y-- {
		for x := range grid.Width() {
			c := Cell{X: x, Y: y}
			if agent, found := agentAt[c]; found {
				glyph := fmt.Sprintf("%d", agent+1)
				style := teamStyles[board.TeamOf(agent)]
				if board.Agents[agent].ScaredTimer > 0 {
					style = scaredStyle
				}
				if board.IsPacman(agent) {
					style = style.Underline(true)
				}
				sb.WriteString(ui.render(style, glyph))
				continue
			}
			switch {
			case grid.IsWall(c):
				sb.WriteString(ui.render(wallStyle, string(GlyphWall)))
			case board.HasFood(c):
				sb.WriteString(ui.render(foodStyle, string(GlyphFood)))
			case slices.Contains(capsules, c):
				sb.WriteString(ui.render(capsuleStyle, string(GlyphCapsule)))
			default:
				sb.WriteRune(GlyphEmpty)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Scoreline returns the score and the food carried by each team.
func (ui *UI) Scoreline(board *Board) string {
	carried := [2]int{}
	for agent, agentState := range board.Agents {
		carried[board.TeamOf(agent)] += len(agentState.Carried)
	}
	return fmt.Sprintf("%s carrying %d, %s carrying %d, score %+d",
		ui.render(teamStyles[TeamRed], " Red "), carried[TeamRed],
		ui.render(teamStyles[TeamBlue], " Blue "), carried[TeamBlue],
		board.Score)
}

// Print the board, and the decision that led to it, if not nil.
func (ui *UI) Print(board *Board, decision *agents.Decision) {
	if ui.clearScreen {
		_, _ = fmt.Fprint(ui.out, "\033c")
	}
	_, _ = fmt.Fprintf(ui.out, "\n%s\n\n", ui.render(headerStyle, fmt.Sprintf("Move #%d", board.MoveNumber)))
	ui.printCentered(ui.Render(board))
	_, _ = fmt.Fprintln(ui.out)
	_, _ = fmt.Fprintln(ui.out, ui.Scoreline(board))
	if decision != nil {
		_, _ = fmt.Fprintf(ui.out, "Last: %s\n", decision)
	}
}

// PrintTurn prints the board after the turn. It can be used as a match.Observer.
func (ui *UI) PrintTurn(turn *match.Turn) {
	ui.Print(turn.After, turn.Decision)
}

// PrintResult prints the outcome of the match.
func (ui *UI) PrintResult(result *match.Result) {
	_, _ = fmt.Fprintln(ui.out)
	switch {
	case result.Interrupted:
		ui.printCentered(fmt.Sprintf("*** %s: interrupted after %d moves ***", result.Name, result.Moves))
	case result.Winner == TeamInvalid:
		ui.printCentered(ui.render(drawStyle, fmt.Sprintf("*** DRAW: %s! ***", result.Reason)))
	default:
		name := result.Red
		if result.Winner == TeamBlue {
			name = result.Blue
		}
		ui.printCentered(fmt.Sprintf("*** %s TEAM (%s) WINS by %d: %s ***",
			ui.render(teamStyles[result.Winner], " "+strings.ToUpper(result.Winner.String())+" "),
			name, abs(result.Score), result.Reason))
	}
	if result.IllegalActions > 0 || result.SlowTurns > 0 {
		_, _ = fmt.Fprintf(ui.out, "%d illegal actions, %d slow turns\n", result.IllegalActions, result.SlowTurns)
	}
	_, _ = fmt.Fprintln(ui.out)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

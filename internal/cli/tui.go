package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/acotour/pkg/aco"
	acoio "github.com/matzehuels/acotour/pkg/io"
	"github.com/matzehuels/acotour/pkg/runstore"
)

var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	listDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// solveProgressModel - Live iteration progress
// =============================================================================

// iterationMsg reports a finished solver iteration.
type iterationMsg aco.IterationStats

// solveDoneMsg reports the end of the pipeline run.
type solveDoneMsg struct {
	err error
}

// solveProgressModel is the bubbletea model that draws solver progress.
type solveProgressModel struct {
	total     int
	iteration int
	best      float64
	improved  int // iterations that improved the best tour
	started   time.Time
	width     int
	done      bool
	quit      bool // user aborted
	err       error
}

func newSolveProgressModel(total int) solveProgressModel {
	return solveProgressModel{total: total, started: time.Now(), width: 40}
}

func (m solveProgressModel) Init() tea.Cmd {
	return nil
}

func (m solveProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		}
	case iterationMsg:
		m.iteration = msg.Iteration
		m.best = msg.Best
		if msg.Improved {
			m.improved++
		}
	case solveDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = min(max(msg.Width-30, 10), 60)
	}
	return m, nil
}

func (m solveProgressModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Solving"))
	b.WriteString("\n\n")

	frac := 0.0
	if m.total > 0 {
		frac = float64(m.iteration) / float64(m.total)
	}
	filled := int(frac * float64(m.width))
	b.WriteString("  ")
	b.WriteString(barFullStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(barEmptyStyle.Render(strings.Repeat("░", m.width-filled)))
	b.WriteString(fmt.Sprintf(" %d/%d\n", m.iteration, m.total))

	best := "-"
	if m.iteration > 0 {
		best = acoio.FormatDistance(m.best)
	}
	b.WriteString("  " + keyValue("Best", StyleNumber.Render(best)) + "\n")
	b.WriteString("  " + keyValue("Improved", fmt.Sprint(m.improved)) + "\n")
	b.WriteString("  " + keyValue("Elapsed", time.Since(m.started).Round(100*time.Millisecond).String()) + "\n")

	if !m.done {
		b.WriteString("\n" + listDimStyle.Render("  q quit") + "\n")
	}
	return b.String()
}

// =============================================================================
// Run table
// =============================================================================

// runsTable renders stored runs as a table, newest first.
func runsTable(runs []*runstore.Run) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			r.Source,
			fmt.Sprint(len(r.Points)),
			acoio.FormatDistance(r.Distance),
			fmt.Sprint(r.Params.Seed),
			formatRelativeTime(r.CreatedAt),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Source", "Nodes", "Distance", "Seed", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 3 {
				return StyleNumber
			}
			if col == 0 || col == 5 {
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

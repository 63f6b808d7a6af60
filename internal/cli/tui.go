package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ringforge/ringforge/pkg/plan"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BoardListModel - Interactive stored plan selection
// =============================================================================

// BoardListModel is the bubbletea model for picking a stored plan.
type BoardListModel struct {
	Plans    []plan.Document
	Cursor   int
	Selected *plan.Document
	Height   int
	Offset   int
}

// NewBoardListModel creates a new plan list model.
func NewBoardListModel(plans []plan.Document) BoardListModel {
	return BoardListModel{
		Plans:  plans,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m BoardListModel) Init() tea.Cmd {
	return nil
}

func (m BoardListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Plans)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			doc := m.Plans[m.Cursor]
			m.Selected = &doc
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BoardListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Board Plan"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Plans) {
		end = len(m.Plans)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		doc := m.Plans[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		topo := fmt.Sprintf("%d-%d-%d", doc.Topology.NInput, doc.Topology.NHidden, doc.Topology.NOutput)
		diameter := fmt.Sprintf("⌀%.0fmm", doc.Board.DiameterMM)
		created := formatRelativeTime(doc.CreatedAt)

		rows = append(rows, []string{cursor, doc.Name, topo, diameter, fmt.Sprintf("%d", len(doc.Rings)), created})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Topology", "Diameter", "Rings", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Plans) {
				return lipgloss.NewStyle()
			}
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 5 {
				base = base.Foreground(colorDim)
			}
			if isCurrent {
				if col == 5 {
					return base.Bold(true)
				}
				return base.Foreground(colorCyan).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Plans))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}

	diff := time.Since(t)

	switch {
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

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/manwithacat/dazzle-sub005/pkg/layout"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// WorkspaceListModel - Interactive workspace selection
// =============================================================================

// WorkspaceListModel is the bubbletea model for picking a workspace whose
// plan should be inspected.
type WorkspaceListModel struct {
	Workspaces []*layout.Workspace
	Plans      map[string]*layout.LayoutPlan
	Cursor     int
	Selected   *layout.Workspace
	Height     int
	Offset     int
}

// NewWorkspaceListModel creates a new workspace list model.
func NewWorkspaceListModel(workspaces []*layout.Workspace, plans map[string]*layout.LayoutPlan) WorkspaceListModel {
	return WorkspaceListModel{
		Workspaces: workspaces,
		Plans:      plans,
		Height:     15,
	}
}

func (m WorkspaceListModel) Init() tea.Cmd {
	return nil
}

func (m WorkspaceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Workspaces)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Workspaces[m.Cursor]
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

func (m WorkspaceListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Workspace"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Workspaces) {
		end = len(m.Workspaces)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		ws := m.Workspaces[i]
		plan := m.Plans[ws.ID]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		label := ws.Label
		if label == "" {
			label = "—"
		}

		overBudget := "—"
		if n := len(plan.OverBudgetSignals); n > 0 {
			overBudget = fmt.Sprintf("%d", n)
		}

		rows = append(rows, []string{
			cursor,
			ws.ID,
			label,
			string(plan.Archetype),
			fmt.Sprintf("%d", plan.Metadata.SignalCount),
			overBudget,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Workspace", "Label", "Archetype", "Signals", "Over").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Workspaces) {
				return lipgloss.NewStyle()
			}
			plan := m.Plans[m.Workspaces[actualIdx].ID]

			base := lipgloss.NewStyle()
			if actualIdx == m.Cursor {
				base = base.Bold(true).Foreground(colorCyan)
			}
			if col == 5 && len(plan.OverBudgetSignals) > 0 {
				return base.Foreground(colorYellow)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Workspaces))))

	return b.String()
}

// =============================================================================
// Plan Table
// =============================================================================

// renderPlanTable renders one plan's surfaces as a bordered table.
func renderPlanTable(plan *layout.LayoutPlan) string {
	rows := [][]string{}
	for _, surface := range plan.Surfaces {
		assigned := strings.Join(surface.AssignedSignals, ", ")
		if assigned == "" {
			assigned = "—"
		}
		rows = append(rows, []string{
			surface.ID,
			fmt.Sprintf("%d", surface.Priority),
			fmt.Sprintf("%.2f", surface.UsedWeight),
			fmt.Sprintf("%.2f", surface.Capacity),
			assigned,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Surface", "Pri", "Used", "Cap", "Signals").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})

	return t.Render()
}

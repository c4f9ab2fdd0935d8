package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BuildingListModel - Interactive building selection
// =============================================================================

// BuildingListModel is the bubbletea model for interactive building selection.
type BuildingListModel struct {
	Buildings []buildingInfo
	Cursor    int
	Selected  *buildingInfo
	Height    int
	Offset    int
}

// NewBuildingListModel creates a new building list model.
func NewBuildingListModel(buildings []buildingInfo) BuildingListModel {
	return BuildingListModel{
		Buildings: buildings,
		Height:    15,
	}
}

func (m BuildingListModel) Init() tea.Cmd {
	return nil
}

func (m BuildingListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Buildings)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Buildings) == 0 {
				return m, tea.Quit
			}
			b := m.Buildings[m.Cursor]
			if b.Labels == 0 {
				return m, nil
			}
			m.Selected = &b
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

func (m BuildingListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Building"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Buildings))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		info := m.Buildings[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, info.Code, info.Name, info.Types, strconv.Itoa(info.Labels)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Code", "Name", "Types", "Labels").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Buildings) {
				return lipgloss.NewStyle()
			}
			empty := m.Buildings[actualIdx].Labels == 0
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			switch {
			case empty:
				base = base.Foreground(colorDim)
			case isCurrent:
				base = base.Foreground(colorGreen)
			}
			if isCurrent {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Buildings))))

	return b.String()
}

// =============================================================================
// browse command
// =============================================================================

// browseCommand creates the interactive building picker. The chosen
// building's labels are generated with the root command's output flags.
func (c *CLI) browseCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick a building interactively and generate its labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model := NewBuildingListModel(buildingInfos(c.Rules))
			final, err := tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithOutput(uiOut),
			).Run()
			if err != nil {
				return fmt.Errorf("building picker: %w", err)
			}

			selected := final.(BuildingListModel).Selected
			if selected == nil {
				printInfo("No building selected")
				return nil
			}

			c.applyConfig(cmd, &opts)
			opts.building = selected.Code
			return c.runGenerate(cmd, opts)
		},
	}

	addOutputFlags(cmd, &opts)

	return cmd
}

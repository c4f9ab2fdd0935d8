package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ThomasStivers/labeller/pkg/enumerate"
	"github.com/ThomasStivers/labeller/pkg/topology"
)

// buildingInfo is one row of the building listing.
type buildingInfo struct {
	Code    string
	Aliases string
	Name    string
	Family  string
	Types   string
	Labels  int
}

// buildingInfos summarizes every building in declaration order.
func buildingInfos(reg *topology.Registry) []buildingInfo {
	e := enumerate.New(reg)
	var infos []buildingInfo
	for _, b := range reg.Buildings() {
		types := make([]string, 0, len(b.Types))
		for _, t := range b.Types {
			if t.Code == "" {
				types = append(types, t.Name)
				continue
			}
			types = append(types, t.Code+" "+t.Name)
		}
		infos = append(infos, buildingInfo{
			Code:    b.Code,
			Aliases: strings.Join(b.Aliases, ", "),
			Name:    b.Name,
			Family:  string(b.Family),
			Types:   strings.Join(types, ", "),
			Labels:  e.Count(b.Code, nil),
		})
	}
	return infos
}

// buildingsCommand creates the command listing the known buildings.
func (c *CLI) buildingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "buildings",
		Aliases: []string{"ls"},
		Short:   "List the known buildings",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := buildingInfos(c.Rules)
			fmt.Fprintln(c.Stdout, renderBuildingTable(infos))
			if len(infos) > 0 {
				printNextStep("Generate labels", "labeller -b "+infos[0].Code)
			}
			return nil
		},
	}
}

// renderBuildingTable lays the building listing out as a bordered table.
func renderBuildingTable(infos []buildingInfo) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(infos))
	for i, info := range infos {
		aliases := info.Aliases
		if aliases == "" {
			aliases = "—"
		}
		types := info.Types
		if types == "" {
			types = "—"
		}
		rows[i] = []string{info.Code, aliases, info.Name, info.Family, types, strconv.Itoa(info.Labels)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Code", "Aliases", "Name", "Template", "Types", "Labels").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 5:
				if infos[row].Labels == 0 {
					return StyleDim
				}
				return StyleNumber
			default:
				return lipgloss.NewStyle()
			}
		})
	return t.Render()
}

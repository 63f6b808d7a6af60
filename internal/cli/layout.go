package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ringforge/ringforge/pkg/board"
	"github.com/ringforge/ringforge/pkg/pipeline"
)

// layoutCommand creates the layout command for inspecting ring allocation.
func (c *CLI) layoutCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout nInput nHidden nOutput",
		Short: "Print the ring allocation table for a topology",
		Long: `Print the ring allocation table for a topology.

Shows every ring the board needs, outermost first, with its assigned
outer radius, width, board layer, and slider counts. Useful for checking
whether a topology fits a given apparatus diameter before cutting.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := topologyFromArgs(&opts, args, ""); err != nil {
				return err
			}
			c.applyBoardDefaults(&opts)
			return c.runLayout(cmd, opts, noCache)
		},
	}

	cmd.Flags().Float64VarP(&opts.DiameterMM, "diameter", "d", 0, "apparatus diameter in mm")
	cmd.Flags().Float64Var(&opts.CenterDiameterMM, "center", 0, "reserved center plate diameter in mm")
	cmd.Flags().Float64Var(&opts.PaddingMM, "padding", 0, "gap between adjacent rings in mm")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "width policy for weight rings: equal (default), weighted")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout allocates the board and prints the placement table.
func (c *CLI) runLayout(cmd *cobra.Command, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(cmd, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	ringSeq, err := runner.BuildRings(cmd.Context(), opts)
	if err != nil {
		return err
	}
	opts.SetLayoutDefaults()

	p, _, err := runner.ComputePlan(cmd.Context(), ringSeq, opts)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Board %d-%d-%d  ·  ⌀%.0fmm", opts.NInput, opts.NHidden, opts.NOutput, p.Config.DiameterMM)))
	fmt.Println(layoutTable(p))
	printDetail("%d rings, %d rotating channels, %d fasteners", len(p.Placements), len(p.Channels), len(p.Fasteners))
	return nil
}

// layoutTable renders the placement table, outermost ring first.
func layoutTable(p board.Plan) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(p.Placements))
	for _, pl := range p.Placements {
		rows = append(rows, []string{
			pl.Ring.Kind(),
			ringName(pl.Ring),
			fmt.Sprintf("%.1f", pl.Ctx.OuterRadius),
			fmt.Sprintf("%.1f", pl.Ctx.Width),
			strconv.Itoa(pl.Ctx.Layer),
			ringSliders(pl.Ring),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Name", "Outer (mm)", "Width (mm)", "Layer", "Sliders").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func ringName(r board.Ring) string {
	if rule, ok := r.(board.Rule); ok && rule.Name != "" {
		return rule.Name
	}
	return "—"
}

func ringSliders(r board.Ring) string {
	switch r := r.(type) {
	case board.Azimuthal:
		return strconv.Itoa(r.Sliders)
	case board.Radial:
		return fmt.Sprintf("%d×%d", r.Groups, r.SlidersPerGroup)
	default:
		return "—"
	}
}
